package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// BulletStyleID is the paragraph style used for bulleted paragraphs.
	BulletStyleID = "ListBullet"

	documentPart = "word/document.xml"
)

// Fixed zip timestamp so identical documents produce identical bytes.
//
//nolint:gochecknoglobals // Package constant
var packageTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

type part struct {
	name string
	body []byte
}

// Write serializes the document as an Office Open XML package.
func (d *Document) Write(w io.Writer) (err error) {
	parts := []part{
		{name: "[Content_Types].xml", body: []byte(contentTypesXML)},
		{name: "_rels/.rels", body: []byte(rootRelsXML)},
		{name: documentPart, body: d.documentXML()},
		{name: "word/_rels/document.xml.rels", body: []byte(documentRelsXML)},
		{name: "word/styles.xml", body: []byte(stylesXML)},
		{name: "word/numbering.xml", body: []byte(numberingXML)},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		header := &zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: packageTime,
		}

		var fw io.Writer
		fw, err = zw.CreateHeader(header)
		if err != nil {
			err = errors.Wrapf(err, "failed to create package part: %s", p.name)
			return err
		}

		_, err = fw.Write(p.body)
		if err != nil {
			err = errors.Wrapf(err, "failed to write package part: %s", p.name)
			return err
		}
	}

	err = zw.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to finalize document package")
		return err
	}

	return err
}

func (d *Document) documentXML() (body []byte) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<w:document xmlns:w="` + nsMain + `" xmlns:r="` + nsRel + `"><w:body>`)

	for _, p := range d.Paragraphs {
		writeParagraph(&buf, p)
	}

	buf.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar`)
	writeAttr(&buf, "w:top", twips(d.Margins.Top*72))
	writeAttr(&buf, "w:right", twips(d.Margins.Right*72))
	writeAttr(&buf, "w:bottom", twips(d.Margins.Bottom*72))
	writeAttr(&buf, "w:left", twips(d.Margins.Left*72))
	buf.WriteString(` w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
	buf.WriteString(`</w:body></w:document>`)

	body = buf.Bytes()
	return body
}

func writeParagraph(buf *bytes.Buffer, p *Paragraph) {
	buf.WriteString(`<w:p>`)

	if p.Bullet || p.SpaceBefore != nil || p.SpaceAfter != nil || p.Alignment != AlignDefault {
		// Child order is fixed by the schema: pStyle, spacing, jc.
		buf.WriteString(`<w:pPr>`)
		if p.Bullet {
			buf.WriteString(`<w:pStyle w:val="` + BulletStyleID + `"/>`)
		}
		if p.SpaceBefore != nil || p.SpaceAfter != nil {
			buf.WriteString(`<w:spacing`)
			if p.SpaceBefore != nil {
				writeAttr(buf, "w:before", twips(*p.SpaceBefore))
			}
			if p.SpaceAfter != nil {
				writeAttr(buf, "w:after", twips(*p.SpaceAfter))
			}
			buf.WriteString(`/>`)
		}
		if p.Alignment != AlignDefault {
			buf.WriteString(`<w:jc w:val="` + string(p.Alignment) + `"/>`)
		}
		buf.WriteString(`</w:pPr>`)
	}

	for _, r := range p.Runs {
		writeRun(buf, r)
	}

	buf.WriteString(`</w:p>`)
}

func writeRun(buf *bytes.Buffer, r *Run) {
	buf.WriteString(`<w:r>`)

	if r.Style != nil {
		buf.WriteString(`<w:rPr>`)
		if r.Style.Font != "" {
			buf.WriteString(`<w:rFonts`)
			writeAttr(buf, "w:ascii", r.Style.Font)
			writeAttr(buf, "w:hAnsi", r.Style.Font)
			writeAttr(buf, "w:cs", r.Style.Font)
			buf.WriteString(`/>`)
		}
		if r.Style.Bold {
			buf.WriteString(`<w:b/>`)
		} else {
			buf.WriteString(`<w:b w:val="0"/>`)
		}
		if r.Style.Size > 0 {
			half := strconv.Itoa(int(math.Round(r.Style.Size * 2)))
			buf.WriteString(`<w:sz w:val="` + half + `"/><w:szCs w:val="` + half + `"/>`)
		}
		buf.WriteString(`</w:rPr>`)
	}

	buf.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(buf, []byte(r.Text))
	buf.WriteString(`</w:t></w:r>`)
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(` ` + name + `="`)
	_ = xml.EscapeText(buf, []byte(value))
	buf.WriteString(`"`)
}

// twips converts points to twentieths of a point.
func twips(pt float64) (value string) {
	value = strconv.Itoa(int(math.Round(pt * 20)))
	return value
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + nsMain + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman" w:cs="Times New Roman"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="200" w:line="240" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="` + BulletStyleID + `"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:numPr><w:numId w:val="1"/></w:numPr><w:contextualSpacing/></w:pPr></w:style>` +
	`</w:styles>`

const numberingXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="` + nsMain + `">` +
	`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="` + "•" + `"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr></w:lvl>` +
	`</w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`
