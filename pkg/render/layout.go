package render

import (
	"fmt"

	"github.com/nikogura/resume-builder/pkg/docx"
	"github.com/nikogura/resume-builder/pkg/resume"
)

// PageMargins are the page margins of a rendered resume, in inches.
//
//nolint:gochecknoglobals // Fixed page geometry
var PageMargins = docx.Margins{
	Top:    0.437,
	Right:  0.5,
	Bottom: 0.287,
	Left:   0.5,
}

// Layout sets the page margins and writes the centered name and contact lines.
// It runs once, before any section.
func Layout(doc *docx.Document, contact resume.ContactInfo) {
	doc.SetMargins(PageMargins)

	name := styledParagraph(doc, contact.Name, StyleName)
	name.Alignment = docx.AlignCenter
	name.SetSpaceAfter(0)

	links := styledParagraph(doc, ContactLine(contact), StyleLinks)
	links.Alignment = docx.AlignCenter
}

// ContactLine is the text of the line under the name.
func ContactLine(contact resume.ContactInfo) (line string) {
	line = fmt.Sprintf("%s | LinkedIn | GitHub", contact.Email)
	return line
}
