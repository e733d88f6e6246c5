package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

const docxXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Toprak Analiz Raporu</w:t></w:r></w:p>
    <w:p><w:r><w:t>Numune No: </w:t></w:r><w:r><w:t>NUM-001</w:t></w:r></w:p>
    <w:p></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>pH</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>6.7</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Fosfor</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>45 mg/kg</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWordExtract(t *testing.T) {
	e := &WordExtractor{}
	got, err := e.Extract(context.Background(), Document{
		Filename: "rapor.docx",
		Data:     buildDocx(t, docxXML),
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if got.Format != FormatWord || got.Engine != "native" {
		t.Errorf("format/engine = %q/%q, want word/native", got.Format, got.Engine)
	}

	for _, want := range []string{
		"Toprak Analiz Raporu",
		"Numune No: NUM-001",
		"--- Tablo 1 ---",
		"pH | 6.7",
		"Fosfor | 45 mg/kg",
	} {
		if !strings.Contains(got.Body, want) {
			t.Errorf("body missing %q:\n%s", want, got.Body)
		}
	}
}

func TestWordExtractNotZip(t *testing.T) {
	e := &WordExtractor{}
	_, err := e.Extract(context.Background(), Document{
		Filename: "eski.doc",
		Data:     []byte("this is not a zip archive"),
	})
	if err == nil {
		t.Error("Extract() on non-ZIP data = nil error, want error")
	}
}

func TestWordExtractMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte("<styles/>"))
	zw.Close()

	e := &WordExtractor{}
	if _, err := e.Extract(context.Background(), Document{Filename: "r.docx", Data: buf.Bytes()}); err == nil {
		t.Error("Extract() without document.xml = nil error, want error")
	}
}

func TestWordExtractEmptyDocument(t *testing.T) {
	empty := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p></w:p></w:body>
</w:document>`

	e := &WordExtractor{}
	if _, err := e.Extract(context.Background(), Document{Filename: "r.docx", Data: buildDocx(t, empty)}); err == nil {
		t.Error("Extract() on empty document = nil error, want error")
	}
}
