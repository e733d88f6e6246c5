package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Normalize canonicalizes a recovered field mapping into a Record.
// Every canonical field is present in the result (nil when unknown);
// keys outside the canonical set are dropped. Normalization never
// fabricates a value, it only reshapes what the parser asserted, and
// it is idempotent: normalizing an already-normalized record is a no-op.
func Normalize(data map[string]any) Record {
	out := make(Record, len(Fields))

	for _, f := range Fields {
		v, ok := data[f.Name]
		if !ok || v == nil {
			out[f.Name] = nil
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			out[f.Name] = nil
			continue
		}

		switch f.Type {
		case TypeDate:
			out[f.Name] = nilable(normalizeDate(stringify(v)))
		case TypeNumber:
			if n, ok := normalizeNumber(v); ok {
				out[f.Name] = n
			} else {
				out[f.Name] = nil
			}
		case TypeTexture:
			out[f.Name] = normalizeTexture(stringify(v))
		case TypeLevel:
			out[f.Name] = normalizeLevel(stringify(v))
		default:
			out[f.Name] = strings.TrimSpace(stringify(v))
		}
	}

	return out
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func nilable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// dateLayouts is the ordered calendar-format list: ISO first, then
// day-first with dot/slash/dash separators, year-first variants, and
// two-digit-year forms.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006", "02/01/2006", "02-01-2006",
	"2006.01.02", "2006/01/02",
	"02.01.06", "02/01/06", "02-01-06",
}

// Regex fallback shapes: year-first, day-first with four-digit year,
// day-first with two-digit year (assumed 2000s).
var (
	reDateYMD = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)
	reDateDMY = regexp.MustCompile(`(\d{1,2})[.\-/](\d{1,2})[.\-/](\d{4})`)
	reDateDM2 = regexp.MustCompile(`(\d{1,2})[.\-/](\d{1,2})[.\-/](\d{2})`)
)

// normalizeDate parses a date string into strict YYYY-MM-DD, or returns
// "" when no format matches.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if m := reDateYMD.FindStringSubmatch(s); m != nil {
		return assembleDate(m[1], m[2], m[3])
	}
	if m := reDateDMY.FindStringSubmatch(s); m != nil {
		return assembleDate(m[3], m[2], m[1])
	}
	if m := reDateDM2.FindStringSubmatch(s); m != nil {
		return assembleDate("20"+m[3], m[2], m[1])
	}
	return ""
}

func assembleDate(year, month, day string) string {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ""
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return ""
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}

var (
	reUnits      = regexp.MustCompile(`(?i)\s*(mg/kg|mg kg-1|dS/m|g/cm3|kg/ha|meq/100g|ppm|cm|mm)\s*`)
	reThousands  = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
	reNonNumeric = regexp.MustCompile(`[^\d.]`)
)

// normalizeNumber converts a recovered value to float64: percent sign
// and unit tokens stripped, decimal comma converted, thousands
// separators removed.
func normalizeNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}

	s := strings.TrimSpace(stringify(v))
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(reUnits.ReplaceAllString(s, ""))

	// "1,250.5" is a thousands separator; "6,5" is a decimal comma.
	if reThousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = reNonNumeric.ReplaceAllString(s, "")

	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// textureMap collapses English/Turkish soil-texture variants onto the
// three canonical classes.
var textureMap = map[string]string{
	"kumlu": "kumlu", "kum": "kumlu", "sandy": "kumlu", "sand": "kumlu",
	"tınlı": "tınlı", "tinli": "tınlı", "tin": "tınlı", "loam": "tınlı", "loamy": "tınlı",
	"killi": "killi", "kil": "killi", "clay": "killi", "clayey": "killi",
}

// normalizeTexture maps through the synonym table; unmapped values pass
// through unchanged. The table is a best-effort hint, not a closed
// enumeration.
func normalizeTexture(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := textureMap[s]; ok {
		return canonical
	}
	return s
}

var levelMap = map[string]string{
	"düşük": "düşük", "dusuk": "düşük", "low": "düşük",
	"orta": "orta", "medium": "orta",
	"yüksek": "yüksek", "yuksek": "yüksek", "high": "yüksek",
}

// normalizeLevel maps evaluation levels onto düşük/orta/yüksek, with
// the same unmapped passthrough as textures.
func normalizeLevel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := levelMap[s]; ok {
		return canonical
	}
	return s
}
