package soilscan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/denizerkan/soilscan/llm"
)

// recommendPromptTemplate frames the crop-recommendation call: all
// inputs optional, Turkish output, strict JSON schema. The input map is
// appended as indented JSON so null values read as "not provided".
const recommendPromptTemplate = `
Sen bir ziraat karar-destek asistanısın.
Amaç: Verilen toprak + iklim + kısıt parametrelerine göre en uygun ürünleri öner.

ÖNEMLİ: Tüm parametreler OPSİYONEL'dir. Eğer bir parametre null/None ise, o parametre verilmemiş demektir.

KULLANILAN PARAMETRELER (girdi alanları - hepsi opsiyonel):
A) Toprak: soil_texture, pH, ec, organic_matter, nitrogen_N, phosphorus_P, potassium_K, lime_caCO3, cec
B) İklim: avg_temp_c, min_temp_c, max_temp_c, rainfall_mm, humidity_pct, drought_index
C) Konum/Zaman: country, province, district, lat (enlem), lon (boylam), season (mevsim), month (ay)
   - lat ve lon verilmişse, bu koordinatlara göre bölgenin iklim özelliklerini dikkate al
   - season ve month verilmişse, ekim zamanlaması için kullan
   - Eğer sadece lat/lon verilmişse, o bölgenin tipik iklim verilerini varsay
D) Kısıtlar: irrigation, previous_crop, goal

KURALLAR:
- Cevap Türkçe olacak.
- Çıktı SADECE JSON olacak (başka açıklama yazma).
- JSON şeması:
  {
    "primary_crop": "string",
    "alternatives": ["string", "string", "string"],
    "confidence": 0-100,
    "reasons": ["..."],
    "risks": ["..."],
    "quick_actions": ["..."],
    "missing_inputs": ["..."],
    "assumptions": ["..."]
  }
- Eğer bazı girdiler null/None ise, bunları "missing_inputs" içine yaz.
- Eksik veriler için makul varsayımlar yap ve bunları "assumptions" içine yaz.
- Verilen parametrelere göre en uygun ürün önerisini yap.
- Önerilerde 'goal' ve 'irrigation' alanlarını (varsa) mutlaka dikkate al.
- 'previous_crop' verilmişse münavebe mantığıyla aynı ürün tekrarına temkinli yaklaş.
- Sadece verilen parametrelere göre değerlendirme yap, eksik olanlar için varsayım yap.
- Eğer lat (enlem) ve lon (boylam) verilmişse, bu koordinatlara göre:
  * Bölgenin iklim özelliklerini (sıcaklık, yağış, nem) dikkate al
  * Bölgenin rakım ve topoğrafya özelliklerini değerlendir
  * O bölgeye özgü tarım uygulamalarını öner
  * Mevsim (season) ve ay (month) bilgisi varsa, ekim zamanlaması için kullan

GİRDİ (JSON - null değerler verilmemiş parametreleri gösterir):
%s
`

// Recommend streams a crop recommendation for the given parameter map.
// Chunks are forwarded to emit as they arrive. A model failure is
// translated into one final JSON error chunk so the consumer always
// receives something renderable, then reported to the caller.
func (p *Pipeline) Recommend(ctx context.Context, inputs map[string]any, emit func(string) error) error {
	encoded, err := json.MarshalIndent(inputs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recommendation inputs: %w", err)
	}

	req := llm.Request{
		Model:  p.cfg.RecommendModel,
		Prompt: fmt.Sprintf(recommendPromptTemplate, string(encoded)),
	}

	if err := p.client.GenerateStream(ctx, req, emit); err != nil {
		if emitErr := emit(errorChunk(err)); emitErr != nil {
			return emitErr
		}
		return fmt.Errorf("recommendation stream: %w", err)
	}
	return nil
}

func errorChunk(err error) string {
	var payload map[string]string

	switch llm.Classify(err) {
	case llm.ClassQuota:
		payload = map[string]string{
			"error":   "API quota aşıldı",
			"message": "Gemini API kullanım limitiniz dolmuş. Lütfen planınızı ve faturalama detaylarınızı kontrol edin.",
			"details": "https://ai.google.dev/gemini-api/docs/rate-limits",
		}
	case llm.ClassAuth:
		payload = map[string]string{
			"error":   "API key hatası",
			"message": "Geçersiz veya eksik API key. Lütfen .env dosyanızda GEMINI_API_KEY değişkenini kontrol edin.",
		}
	default:
		msg := err.Error()
		payload = map[string]string{
			"error":   "API hatası",
			"message": "Bir hata oluştu: " + strings.TrimSpace(msg),
		}
	}

	data, merr := json.Marshal(payload)
	if merr != nil {
		return `{"error":"API hatası"}`
	}
	return string(data)
}
