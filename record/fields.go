// Package record defines the canonical soil-report schema and the
// normalization layer that canonicalizes parser output into it. The
// field set is the de facto contract with the downstream recommendation
// step: every key is always present, a missing measurement is nil.
package record

// FieldType is the semantic type a canonical field normalizes to.
type FieldType int

const (
	TypeString  FieldType = iota // trimmed string
	TypeDate                     // strict YYYY-MM-DD
	TypeNumber                   // float64, units and locale stripped
	TypeTexture                  // soil texture vocabulary (kumlu/tınlı/killi)
	TypeLevel                    // evaluation vocabulary (düşük/orta/yüksek)
)

// FieldDef names one canonical field.
type FieldDef struct {
	Name string
	Type FieldType
}

// Fields is the fixed canonical field set, in output order.
var Fields = []FieldDef{
	{"sample_code", TypeString},
	{"sample_date", TypeDate},
	{"analysis_date", TypeDate},
	{"province", TypeString},
	{"district", TypeString},
	{"sample_depth", TypeNumber},
	{"laboratory_name", TypeString},
	{"pH", TypeNumber},
	{"organic_matter", TypeNumber},
	{"phosphorus_P", TypeNumber},
	{"potassium_K", TypeNumber},
	{"ec", TypeNumber},
	{"lime_caCO3", TypeNumber},
	{"soil_texture", TypeTexture},
	{"nitrogen_N", TypeNumber},
	{"evaluation_level", TypeLevel},
	{"fertilization_recommendation", TypeString},
	{"calcium_Ca", TypeNumber},
	{"magnesium_Mg", TypeNumber},
	{"sulfur_S", TypeNumber},
	{"iron_Fe", TypeNumber},
	{"zinc_Zn", TypeNumber},
	{"manganese_Mn", TypeNumber},
	{"copper_Cu", TypeNumber},
	{"boron_B", TypeNumber},
	{"cec", TypeNumber},
	{"total_salt", TypeNumber},
	{"sar", TypeNumber},
	{"esp", TypeNumber},
	{"organic_carbon_C", TypeNumber},
	{"soil_moisture", TypeNumber},
	{"bulk_density", TypeNumber},
}

// Record maps every canonical field to its normalized value: string,
// float64, or nil for unknown.
type Record map[string]any

// MatchedFields returns the canonical fields carrying a value, in
// schema order.
func (r Record) MatchedFields() []string {
	var matched []string
	for _, f := range Fields {
		v, ok := r[f.Name]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		matched = append(matched, f.Name)
	}
	return matched
}
