package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// TabularExtractor reads CSV and Excel files. CSV decoding walks a
// prioritized encoding ladder (UTF-8, then ISO-8859-1 and the Turkish
// ISO-8859-9); when every CSV attempt fails the bytes are retried as an
// Excel workbook. The output renders the same values twice, as a
// per-row field list and as a full grid, so the semantic parser can
// cross-check them.
type TabularExtractor struct{}

func (e *TabularExtractor) Extract(ctx context.Context, doc Document) (*ExtractedText, error) {
	// Workbooks first for Excel suffixes: a lenient CSV parse can
	// swallow ZIP bytes and produce garbage rows.
	if strings.HasSuffix(strings.ToLower(doc.Filename), ".xlsx") ||
		strings.HasSuffix(strings.ToLower(doc.Filename), ".xls") {
		rows, err := decodeWorkbook(doc.Data)
		if err != nil {
			return nil, fmt.Errorf("reading tabular file: %w", err)
		}
		return &ExtractedText{
			Body:   renderRows("Excel Dosyası İçeriği", rows),
			Format: FormatTabular,
			Engine: "native",
		}, nil
	}

	if rows, err := decodeCSV(doc.Data); err == nil {
		return &ExtractedText{
			Body:   renderRows("CSV/Excel Dosyası İçeriği", rows),
			Format: FormatTabular,
			Engine: "native",
		}, nil
	} else if wbRows, wbErr := decodeWorkbook(doc.Data); wbErr == nil {
		// Misnamed workbook uploaded as .csv.
		return &ExtractedText{
			Body:   renderRows("Excel Dosyası İçeriği", wbRows),
			Format: FormatTabular,
			Engine: "native",
		}, nil
	} else {
		return nil, fmt.Errorf("reading tabular file: %v / %v", err, wbErr)
	}
}

// decodeCSV tries each encoding in priority order and returns the first
// successful parse with at least a header row.
func decodeCSV(data []byte) ([][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	attempts := []struct {
		name   string
		decode func([]byte) ([]byte, error)
	}{
		{"utf-8", func(b []byte) ([]byte, error) {
			if !utf8.Valid(b) {
				return nil, fmt.Errorf("invalid UTF-8")
			}
			return b, nil
		}},
		{"iso-8859-1", charmap.ISO8859_1.NewDecoder().Bytes},
		{"iso-8859-9", charmap.ISO8859_9.NewDecoder().Bytes},
	}

	var lastErr error
	for _, att := range attempts {
		decoded, err := att.decode(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", att.name, err)
			continue
		}

		r := csv.NewReader(bytes.NewReader(decoded))
		r.FieldsPerRecord = -1 // ragged rows are common in exported reports
		rows, err := r.ReadAll()
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", att.name, err)
			continue
		}
		if len(rows) == 0 {
			lastErr = fmt.Errorf("%s: no rows", att.name)
			continue
		}
		return rows, nil
	}
	return nil, lastErr
}

// decodeWorkbook reads the first sheet of an Excel workbook.
func decodeWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in workbook")
	}
	return rows, nil
}

// renderRows linearizes header+data rows. Headers are normalized
// (trimmed, lowercased); each data row lists its non-empty cells as
// "column: value" lines, followed by a pipe-grid rendering of the whole
// table for redundancy.
func renderRows(title string, rows [][]string) string {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	dataRows := rows[1:]

	var b strings.Builder
	b.WriteString(title + ":\n\n")
	fmt.Fprintf(&b, "Sütunlar: %s\n", strings.Join(headers, ", "))
	fmt.Fprintf(&b, "Satır Sayısı: %d\n\n", len(dataRows))

	for i, row := range dataRows {
		fmt.Fprintf(&b, "Satır %d:\n", i+1)
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" || j >= len(headers) {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", headers[j], cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTablo Görünümü:\n")
	b.WriteString(strings.Join(headers, " | "))
	b.WriteString("\n")
	for _, row := range dataRows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
