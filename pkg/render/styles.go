package render

import (
	"github.com/nikogura/resume-builder/pkg/docx"
)

// DefaultFont is the typeface used by every preset.
const DefaultFont = "Times New Roman"

// Preset names.
const (
	StyleName           = "Name"
	StyleLinks          = "Links"
	StylePoint          = "Point"
	StylePointHeading   = "PointHeading"
	StyleSectionHeading = "SectionHeading"
)

// TextStyle is direct run formatting. Size is in points.
type TextStyle struct {
	Bold     bool
	FontName string
	Size     float64
}

//nolint:gochecknoglobals // Fixed formatting presets
var Styles = map[string]TextStyle{
	StyleName:           {FontName: DefaultFont, Size: 18},
	StyleLinks:          {FontName: DefaultFont, Size: 14},
	StylePoint:          {FontName: DefaultFont, Size: 12},
	StylePointHeading:   {Bold: true, FontName: DefaultFont, Size: 12},
	StyleSectionHeading: {Bold: true, FontName: DefaultFont, Size: 13},
}

// RunStyle converts the preset to document run formatting.
func (s TextStyle) RunStyle() (rs *docx.RunStyle) {
	rs = &docx.RunStyle{
		Bold: s.Bold,
		Font: s.FontName,
		Size: s.Size,
	}
	return rs
}

// Apply formats a run with this style.
func (s TextStyle) Apply(r *docx.Run) {
	r.Style = s.RunStyle()
}

// styledParagraph appends a paragraph whose single run carries the named preset.
func styledParagraph(doc *docx.Document, text string, style string) (p *docx.Paragraph) {
	p = doc.AddParagraph(text)
	applyFirst(p, style)
	return p
}

// styledBullet is styledParagraph for a bulleted paragraph.
func styledBullet(doc *docx.Document, text string, style string) (p *docx.Paragraph) {
	p = doc.AddBullet(text)
	applyFirst(p, style)
	return p
}

func applyFirst(p *docx.Paragraph, style string) {
	if len(p.Runs) == 0 {
		return
	}
	Styles[style].Apply(p.Runs[0])
}
