package record

import "testing"

func TestValidateNormalizedRecord(t *testing.T) {
	rec := Normalize(map[string]any{
		"pH":           "6,7",
		"sample_date":  "15.03.2024",
		"soil_texture": "tınlı",
	})
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateAllNil(t *testing.T) {
	rec := Normalize(map[string]any{})
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() on empty record = %v, want nil", err)
	}
}

func TestValidateRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{"missing key", func() Record {
			r := Normalize(map[string]any{})
			delete(r, "pH")
			return r
		}()},
		{"extra key", func() Record {
			r := Normalize(map[string]any{})
			r["bogus"] = 1
			return r
		}()},
		{"string where number expected", func() Record {
			r := Normalize(map[string]any{})
			r["pH"] = "6.7"
			return r
		}()},
		{"malformed date", func() Record {
			r := Normalize(map[string]any{})
			r["sample_date"] = "15.03.2024"
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rec.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
