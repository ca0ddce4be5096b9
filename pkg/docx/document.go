package docx

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Alignment is a paragraph justification value (w:jc).
type Alignment string

const (
	// AlignDefault leaves justification to the paragraph style.
	AlignDefault Alignment = ""
	// AlignCenter centers the paragraph.
	AlignCenter Alignment = "center"
)

// RunStyle holds direct run formatting. Size is in points.
type RunStyle struct {
	Bold bool
	Font string
	Size float64
}

// Run is a contiguous piece of text sharing one format.
type Run struct {
	Text  string
	Style *RunStyle // nil means no direct formatting
}

// Paragraph is a single w:p element.
type Paragraph struct {
	Runs        []*Run
	Bullet      bool
	Alignment   Alignment
	SpaceBefore *float64 // points, nil inherits from the style
	SpaceAfter  *float64
}

// Margins are page margins in inches.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Document is an in-memory word-processing document.
type Document struct {
	Paragraphs []*Paragraph
	Margins    Margins
}

// New creates an empty document with one-inch margins.
func New() (doc *Document) {
	doc = &Document{
		Paragraphs: make([]*Paragraph, 0),
		Margins: Margins{
			Top:    1,
			Right:  1,
			Bottom: 1,
			Left:   1,
		},
	}
	return doc
}

// SetMargins replaces the page margins.
func (d *Document) SetMargins(m Margins) {
	d.Margins = m
}

// AddParagraph appends a paragraph. Empty text produces a blank paragraph with no runs.
func (d *Document) AddParagraph(text string) (p *Paragraph) {
	p = &Paragraph{}
	if text != "" {
		p.AddRun(text, nil)
	}
	d.Paragraphs = append(d.Paragraphs, p)
	return p
}

// AddBullet appends a paragraph in the bulleted list style.
func (d *Document) AddBullet(text string) (p *Paragraph) {
	p = d.AddParagraph(text)
	p.Bullet = true
	return p
}

// AddRun appends a run to the paragraph.
func (p *Paragraph) AddRun(text string, style *RunStyle) (r *Run) {
	r = &Run{Text: text, Style: style}
	p.Runs = append(p.Runs, r)
	return r
}

// SetSpaceBefore sets spacing before the paragraph in points.
func (p *Paragraph) SetSpaceBefore(pt float64) {
	p.SpaceBefore = &pt
}

// SetSpaceAfter sets spacing after the paragraph in points.
func (p *Paragraph) SetSpaceAfter(pt float64) {
	p.SpaceAfter = &pt
}

// SetSpacing sets spacing before and after the paragraph in points.
func (p *Paragraph) SetSpacing(before, after float64) {
	p.SetSpaceBefore(before)
	p.SetSpaceAfter(after)
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() (text string) {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	text = sb.String()
	return text
}

// Save writes the document package to path, creating parent directories.
func (d *Document) Save(path string) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", dir)
		return err
	}

	var f *os.File
	f, err = os.Create(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to create document file: %s", path)
		return err
	}

	err = d.Write(f)
	if err != nil {
		_ = f.Close()
		err = errors.Wrapf(err, "failed to write document: %s", path)
		return err
	}

	err = f.Close()
	if err != nil {
		err = errors.Wrapf(err, "failed to close document file: %s", path)
		return err
	}

	return err
}
