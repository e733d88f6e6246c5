package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads text-layer PDFs page by page. Each page emits a
// numbered plain-text block plus, when the page contains rows with
// multiple horizontally separated cells, a pipe-delimited table block.
type PDFExtractor struct{}

// cellGap is the minimum horizontal gap (in text-space units) between
// two runs on the same row for them to count as separate table cells.
const cellGap = 12.0

func (e *PDFExtractor) Extract(ctx context.Context, doc Document) (*ExtractedText, error) {
	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	totalPages := reader.NumPage()

	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}

		fmt.Fprintf(&b, "\n--- Sayfa %d ---\n", i)
		b.WriteString(strings.TrimSpace(text))
		b.WriteString("\n")

		if tables := pageTables(page); tables != "" {
			fmt.Fprintf(&b, "\n--- Sayfa %d Tabloları ---\n", i)
			b.WriteString(tables)
		}
	}

	body := strings.TrimSpace(b.String())
	if body == "" {
		return nil, fmt.Errorf("no text content in PDF")
	}

	return &ExtractedText{Body: body, Format: FormatPDF, Engine: "native"}, nil
}

// pageTables serializes multi-cell rows as pipe-delimited lines. Rows
// with a single run are narrative text already covered by the plain
// text block and are skipped.
func pageTables(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, row := range rows {
		cells := splitRowCells(row.Content)
		if len(cells) < 2 {
			continue
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// splitRowCells groups a row's text runs into cells wherever the
// horizontal gap exceeds cellGap. Cell whitespace is trimmed; runs of
// empty glyphs render as empty cells.
func splitRowCells(content pdf.TextHorizontal) []string {
	if len(content) == 0 {
		return nil
	}

	var cells []string
	var cell strings.Builder
	prevEnd := content[0].X

	for i, t := range content {
		if i > 0 && t.X-prevEnd > cellGap {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	cells = append(cells, strings.TrimSpace(cell.String()))

	return cells
}
