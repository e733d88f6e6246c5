package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WordExtractor reads DOCX documents: paragraph text in document order,
// then each table as a labeled block of pipe-delimited rows with empty
// cells skipped. Legacy .doc files are not ZIP archives and report
// extraction failure here; deployments with the structured engine
// configured can route them there instead.
type WordExtractor struct{}

func (e *WordExtractor) Extract(ctx context.Context, doc Document) (*ExtractedText, error) {
	r, err := zip.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return nil, fmt.Errorf("opening Word document: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in document")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	body, err := renderDocx(data)
	if err != nil {
		return nil, fmt.Errorf("parsing document XML: %w", err)
	}
	if body == "" {
		return nil, fmt.Errorf("no text content in Word document")
	}

	return &ExtractedText{Body: body, Format: FormatWord, Engine: "native"}, nil
}

// DOCX XML structures (simplified)
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	Paras  []docxPara  `xml:"p"`
	Tables []docxTable `xml:"tbl"`
}

type docxPara struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paras []docxPara `xml:"p"`
}

func renderDocx(data []byte) (string, error) {
	var d docxDocument
	if err := xml.Unmarshal(data, &d); err != nil {
		return "", err
	}

	var b strings.Builder

	for _, para := range d.Body.Paras {
		text := strings.TrimSpace(paraText(para))
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	for i, tbl := range d.Body.Tables {
		fmt.Fprintf(&b, "\n--- Tablo %d ---\n", i+1)
		for _, row := range tbl.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var cellText strings.Builder
				for _, p := range cell.Paras {
					if cellText.Len() > 0 {
						cellText.WriteString(" ")
					}
					cellText.WriteString(paraText(p))
				}
				if t := strings.TrimSpace(cellText.String()); t != "" {
					cells = append(cells, t)
				}
			}
			if len(cells) > 0 {
				b.WriteString(strings.Join(cells, " | "))
				b.WriteString("\n")
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}

func paraText(para docxPara) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}
