package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/denizerkan/soilscan/llm"
)

// visionPrompt instructs the model to transcribe a soil report photo
// exhaustively: every table, value, date, and unit, with the exact
// field groups the downstream parser will look for.
const visionPrompt = `Bu resim bir toprak analiz raporu içeriyor. Lütfen TÜM metinleri, sayıları, değerleri ve bilgileri çok dikkatli bir şekilde çıkar.

ÖNEMLİ: Hiçbir bilgiyi atlama! Tüm tabloları, değerleri, tarihleri, isimleri oku.

ÇIKARILMASI GEREKEN BİLGİLER:
1. Numune bilgileri: Numune No/Kodu, Numune Alım Tarihi, Analiz Tarihi
2. Konum bilgileri: İl, İlçe, Saha/Parsel bilgisi
3. Laboratuvar: Laboratuvar adı, onay/kaşe/imza bilgisi
4. Toprak analiz değerleri: pH, EC, Organik Madde (%), Azot (N), Fosfor (P), Potasyum (K), Kireç (CaCO3), CEC
5. Mikro elementler: Kalsiyum (Ca), Magnezyum (Mg), Kükürt (S), Demir (Fe), Çinko (Zn), Mangan (Mn), Bakır (Cu), Bor (B)
6. Diğer: Toplam Tuz, SAR, ESP, Organik Karbon, Toprak Nemi, Bulk Density
7. Toprak bünyesi: Kumlu/Tınlı/Killi
8. Değerlendirme seviyesi: Düşük/Orta/Yüksek
9. Gübreleme önerisi: N-P-K formatında veya metin olarak

TÜM metni, sayıları, birimleri, tarihleri eksiksiz çıkar. Tabloları, listeleri, her şeyi oku.`

// VisionProvider transcribes report photos with a vision-capable
// generative model. When the primary model is unavailable (the
// model-not-found error class) one retry runs against the secondary
// general-purpose model before the failure becomes terminal.
type VisionProvider struct {
	client        llm.Client
	model         string
	fallbackModel string
}

func NewVisionProvider(client llm.Client, model, fallbackModel string) *VisionProvider {
	return &VisionProvider{client: client, model: model, fallbackModel: fallbackModel}
}

func (p *VisionProvider) Name() string { return "vision" }

func (p *VisionProvider) Available() bool { return p.client != nil && p.model != "" }

// MinLength is 1: as the last rung of the ladder, any non-empty
// transcription is better than reporting total OCR failure.
func (p *VisionProvider) MinLength() int { return 1 }

func (p *VisionProvider) Extract(ctx context.Context, doc Document) (string, error) {
	req := llm.Request{Model: p.model, Prompt: visionPrompt}

	text, err := p.client.GenerateWithImage(ctx, req, doc.Data, doc.ContentType)
	if err == nil {
		return text, nil
	}

	if p.fallbackModel != "" && llm.Classify(err) == llm.ClassUnavailable {
		slog.Warn("vision model unavailable, retrying with fallback",
			"model", p.model, "fallback", p.fallbackModel, "error", err)

		req.Model = p.fallbackModel
		text, ferr := p.client.GenerateWithImage(ctx, req, doc.Data, doc.ContentType)
		if ferr == nil {
			return text, nil
		}
		return "", fmt.Errorf("image OCR failed: %w", ferr)
	}

	return "", fmt.Errorf("image OCR failed: %w", err)
}
