package docx

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddParagraph(t *testing.T) {
	doc := New()

	p := doc.AddParagraph("hello")
	if len(p.Runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(p.Runs))
	}

	blank := doc.AddParagraph("")
	if len(blank.Runs) != 0 {
		t.Errorf("Expected blank paragraph to have no runs, got %d", len(blank.Runs))
	}

	bullet := doc.AddBullet("point")
	if !bullet.Bullet {
		t.Error("Expected bullet paragraph to be marked as bullet")
	}

	if len(doc.Paragraphs) != 3 {
		t.Errorf("Expected 3 paragraphs, got %d", len(doc.Paragraphs))
	}
}

func TestParagraphText(t *testing.T) {
	doc := New()
	p := doc.AddParagraph("Languages: ")
	p.AddRun("Go, Python", &RunStyle{Size: 12})

	if p.Text() != "Languages: Go, Python" {
		t.Errorf("Expected joined run text, got '%s'", p.Text())
	}
}

func TestWriteContainsParts(t *testing.T) {
	doc := New()
	doc.AddParagraph("content")

	var buf bytes.Buffer
	err := doc.Write(&buf)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Output is not a zip package: %v", err)
	}

	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/document.xml":            false,
		"word/_rels/document.xml.rels": false,
		"word/styles.xml":              false,
		"word/numbering.xml":           false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("Expected package part %s", name)
		}
	}
}

func TestWriteDeterministic(t *testing.T) {
	build := func() []byte {
		doc := New()
		doc.SetMargins(Margins{Top: 0.437, Right: 0.5, Bottom: 0.287, Left: 0.5})
		p := doc.AddBullet("Shipped X")
		p.SetSpaceAfter(3)
		var buf bytes.Buffer
		err := doc.Write(&buf)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		return buf.Bytes()
	}

	first := build()
	second := build()
	if !bytes.Equal(first, second) {
		t.Error("Expected identical documents to produce identical bytes")
	}
}

func TestDocumentXMLMargins(t *testing.T) {
	doc := New()
	doc.SetMargins(Margins{Top: 0.437, Right: 0.5, Bottom: 0.287, Left: 0.5})

	body := string(doc.documentXML())
	for _, want := range []string{`w:top="629"`, `w:right="720"`, `w:bottom="413"`, `w:left="720"`} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected section properties to contain %s", want)
		}
	}
}

func TestDocumentXMLEscapes(t *testing.T) {
	doc := New()
	doc.AddParagraph("R&D <team>")

	body := string(doc.documentXML())
	if !strings.Contains(body, "R&amp;D &lt;team&gt;") {
		t.Error("Expected run text to be XML escaped")
	}
}

func TestSaveAndReadParagraphs(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "out.docx")

	doc := New()
	heading := doc.AddParagraph("Skills")
	heading.Runs[0].Style = &RunStyle{Bold: true, Font: "Times New Roman", Size: 13}
	heading.Alignment = AlignCenter

	skill := doc.AddParagraph("Languages: ")
	skill.Runs[0].Style = &RunStyle{Bold: true, Font: "Times New Roman", Size: 12}
	skill.AddRun("Go", &RunStyle{Font: "Times New Roman", Size: 12})
	skill.SetSpaceAfter(3)

	bullet := doc.AddBullet("Shipped X")
	bullet.SetSpacing(15, 3)

	doc.AddParagraph("")

	err := doc.Save(path)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	paragraphs, err := ReadParagraphs(path)
	if err != nil {
		t.Fatalf("ReadParagraphs failed: %v", err)
	}

	if len(paragraphs) != 4 {
		t.Fatalf("Expected 4 paragraphs, got %d", len(paragraphs))
	}

	if !paragraphs[0].Centered {
		t.Error("Expected heading to be centered")
	}
	if paragraphs[0].Runs[0].Size != 13 || !paragraphs[0].Runs[0].Bold {
		t.Errorf("Expected 13pt bold heading, got %+v", paragraphs[0].Runs[0])
	}

	if len(paragraphs[1].Runs) != 2 {
		t.Fatalf("Expected 2 runs in skill paragraph, got %d", len(paragraphs[1].Runs))
	}
	if paragraphs[1].Runs[1].Bold {
		t.Error("Expected skill value run to not be bold")
	}
	if paragraphs[1].SpaceAfter == nil || *paragraphs[1].SpaceAfter != 3 {
		t.Error("Expected 3pt spacing after skill paragraph")
	}
	if paragraphs[1].SpaceBefore != nil {
		t.Error("Expected no explicit spacing before skill paragraph")
	}

	if !paragraphs[2].Bullet {
		t.Error("Expected bullet paragraph")
	}
	if paragraphs[2].SpaceBefore == nil || *paragraphs[2].SpaceBefore != 15 {
		t.Error("Expected 15pt spacing before bullet paragraph")
	}

	if paragraphs[3].Text != "" {
		t.Errorf("Expected blank paragraph, got '%s'", paragraphs[3].Text)
	}
}

func TestParseParagraphsNotZip(t *testing.T) {
	_, err := ParseParagraphs([]byte("not a zip"))
	if err == nil {
		t.Error("Expected error parsing non-zip data, got nil")
	}
}

func TestReadParagraphsNonexistent(t *testing.T) {
	_, err := ReadParagraphs("/nonexistent/file.docx")
	if err == nil {
		t.Error("Expected error reading nonexistent file, got nil")
	}
}
