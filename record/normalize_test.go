package record

import (
	"reflect"
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"15.03.2024", "2024-03-15"},
		{"15/03/2024", "2024-03-15"},
		{"15-03-2024", "2024-03-15"},
		{"2024.03.15", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"15.03.24", "2024-03-15"},
		{"1.3.2024", "2024-03-01"},
		{"March", ""},
		{"not a date", ""},
		{"", ""},
		{"99.99.2024", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeDate(tt.in); got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"plain", "6.5", 6.5, true},
		{"decimal comma", "6,5", 6.5, true},
		{"thousands separator", "1,250.5", 1250.5, true},
		{"thousands no decimals", "2,500", 2500, true},
		{"percent prefix", "%2.345", 2.345, true},
		{"percent suffix", "2.3%", 2.3, true},
		{"percent spaced", "% 2.3", 2.3, true},
		{"unit mg/kg", "45 mg/kg", 45, true},
		{"unit mg kg-1", "45 mg kg-1", 45, true},
		{"unit dS/m", "1.25 dS/m", 1.25, true},
		{"unit mm", "120 mm", 120, true},
		{"unit meq/100g", "25.5 meq/100g", 25.5, true},
		{"small decimal comma", "0,05", 0.05, true},
		{"float64 passthrough", float64(6.7), 6.7, true},
		{"int passthrough", 30, 30, true},
		{"garbage", "yok", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeNumber(tt.in)
			if ok != tt.ok {
				t.Fatalf("normalizeNumber(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("normalizeNumber(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTexture(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"kum", "kumlu"},
		{"Kumlu", "kumlu"},
		{"sandy", "kumlu"},
		{"sand", "kumlu"},
		{"tin", "tınlı"},
		{"tinli", "tınlı"},
		{"Loam", "tınlı"},
		{"loamy", "tınlı"},
		{"kil", "killi"},
		{"Clay", "killi"},
		{"clayey", "killi"},
		{"siltli", "siltli"}, // unmapped values pass through
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeTexture(tt.in); got != tt.want {
				t.Errorf("normalizeTexture(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dusuk", "düşük"},
		{"Low", "düşük"},
		{"medium", "orta"},
		{"Orta", "orta"},
		{"yuksek", "yüksek"},
		{"HIGH", "yüksek"},
		{"çok yüksek", "çok yüksek"}, // unmapped values pass through
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeLevel(tt.in); got != tt.want {
				t.Errorf("normalizeLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeRecordShape(t *testing.T) {
	got := Normalize(map[string]any{
		"pH":           "6,7",
		"sample_date":  "15.03.2024",
		"soil_texture": "kum",
		"province":     "  Konya ",
		"extra_field":  "dropped",
	})

	if len(got) != len(Fields) {
		t.Fatalf("record has %d keys, want %d", len(got), len(Fields))
	}
	if _, ok := got["extra_field"]; ok {
		t.Error("unknown key survived normalization")
	}

	if v := got["pH"]; v != 6.7 {
		t.Errorf("pH = %v, want 6.7", v)
	}
	if v := got["sample_date"]; v != "2024-03-15" {
		t.Errorf("sample_date = %v, want 2024-03-15", v)
	}
	if v := got["soil_texture"]; v != "kumlu" {
		t.Errorf("soil_texture = %v, want kumlu", v)
	}
	if v := got["province"]; v != "Konya" {
		t.Errorf("province = %v, want Konya", v)
	}
	if v := got["potassium_K"]; v != nil {
		t.Errorf("potassium_K = %v, want nil", v)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(map[string]any{
		"pH":               "6,5",
		"analysis_date":    "20.03.2024",
		"soil_texture":     "Clay",
		"evaluation_level": "medium",
		"phosphorus_P":     "1,250.5",
	})
	second := Normalize(map[string]any(first))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass changed the record:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestNormalizeEmptyStringsBecomeNil(t *testing.T) {
	got := Normalize(map[string]any{
		"sample_code": "   ",
		"pH":          "",
	})
	if got["sample_code"] != nil {
		t.Errorf("sample_code = %v, want nil", got["sample_code"])
	}
	if got["pH"] != nil {
		t.Errorf("pH = %v, want nil", got["pH"])
	}
}

func TestMatchedFields(t *testing.T) {
	rec := Normalize(map[string]any{
		"pH":           6.7,
		"potassium_K":  "35",
		"phosphorus_P": 45,
	})

	got := rec.MatchedFields()
	want := []string{"pH", "phosphorus_P", "potassium_K"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchedFields() = %v, want %v", got, want)
	}
}
