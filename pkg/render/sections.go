package render

import (
	"fmt"

	"github.com/nikogura/resume-builder/pkg/docx"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
)

// Section names accepted in resume_sections.
const (
	SectionSummary    = "Professional Summary"
	SectionSkills     = "Skills"
	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionProjects   = "Projects"
)

// PlaceholderProjectName is the project name rendered without spacing before it.
const PlaceholderProjectName = "Project 1 Name"

// ErrUnknownSection is returned when a directive names no known section.
var ErrUnknownSection = errors.New("unknown section")

// Renderer appends one section's content to a document.
type Renderer interface {
	Render(doc *docx.Document, model resume.Model)
}

//nolint:gochecknoglobals // Fixed section table
var renderers = map[string]Renderer{
	SectionSummary:    SummaryRenderer{},
	SectionSkills:     SkillsRenderer{},
	SectionExperience: ExperienceRenderer{},
	SectionEducation:  EducationRenderer{},
	SectionProjects:   ProjectsRenderer{FlushName: PlaceholderProjectName},
}

// Lookup finds the renderer for a section name. Matching is exact.
func Lookup(name string) (r Renderer, err error) {
	r, ok := renderers[name]
	if !ok {
		err = errors.Wrapf(ErrUnknownSection, "%q", name)
		return r, err
	}
	return r, err
}

// Sections writes a heading and the content of each directive, in order.
// All directives are resolved first so an unknown name leaves the document untouched.
func Sections(doc *docx.Document, model resume.Model, sections []resume.SectionDirective) (err error) {
	resolved := make([]Renderer, 0, len(sections))
	for _, s := range sections {
		var r Renderer
		r, err = Lookup(s.Type)
		if err != nil {
			return err
		}
		resolved = append(resolved, r)
	}

	for i, r := range resolved {
		styledParagraph(doc, sections[i].Type, StyleSectionHeading)
		r.Render(doc, model)
	}

	return err
}

// Build renders a complete resume document.
func Build(bundle resume.Bundle) (doc *docx.Document, err error) {
	doc = docx.New()
	Layout(doc, bundle.Contact)

	err = Sections(doc, bundle.Model, bundle.Sections)
	if err != nil {
		err = errors.Wrap(err, "failed to render sections")
		return nil, err
	}

	return doc, err
}

// SummaryRenderer writes the professional summary.
type SummaryRenderer struct{}

// Render implements Renderer.
func (SummaryRenderer) Render(doc *docx.Document, model resume.Model) {
	p := styledParagraph(doc, model.Summary, StylePoint)
	p.SetSpacing(0, 0)
}

// SkillsRenderer writes one "<category>: <skill>" paragraph per skill category.
type SkillsRenderer struct{}

// Render implements Renderer.
func (SkillsRenderer) Render(doc *docx.Document, model resume.Model) {
	for _, s := range model.Skills {
		p := styledParagraph(doc, s.Category+": ", StylePointHeading)
		p.AddRun(s.Skill, Styles[StylePoint].RunStyle())
		p.SetSpaceAfter(3)
	}
	doc.AddParagraph("")
}

// ExperienceRenderer writes each position followed by its bullet points.
type ExperienceRenderer struct{}

// Render implements Renderer.
func (ExperienceRenderer) Render(doc *docx.Document, model resume.Model) {
	for _, w := range model.Work {
		doc.AddParagraph(fmt.Sprintf("%s, %s %s", w.Title, w.Company, w.Date))
		for _, point := range w.Points {
			p := styledBullet(doc, point, StylePoint)
			p.SetSpaceAfter(3)
		}
	}
	doc.AddParagraph("")
}

// EducationRenderer writes institutions and their credentials, then certificates.
type EducationRenderer struct{}

// Render implements Renderer.
func (EducationRenderer) Render(doc *docx.Document, model resume.Model) {
	for _, e := range model.Education {
		styledParagraph(doc, e.Name, StylePointHeading)
		for _, c := range e.Credentials {
			heading := styledParagraph(doc, c.Name, StylePointHeading)
			heading.SetSpaceAfter(0)
			for _, point := range c.Points {
				p := styledBullet(doc, point, StylePoint)
				p.SetSpaceAfter(0)
			}
		}
	}

	doc.AddParagraph("")

	for _, c := range model.Certificates {
		p := styledBullet(doc, fmt.Sprintf("%s: %s", c.Name, c.Issuer), StylePoint)
		p.SetSpaceAfter(2)
	}
}

// ProjectsRenderer writes each project name followed by its bullet points.
// A project named FlushName gets no spacing before its heading; every other
// project gets 9pt.
type ProjectsRenderer struct {
	FlushName string
}

// Render implements Renderer.
func (r ProjectsRenderer) Render(doc *docx.Document, model resume.Model) {
	for _, project := range model.Projects {
		heading := styledParagraph(doc, project.Name, StylePointHeading)
		if project.Name == r.FlushName {
			heading.SetSpaceBefore(0)
		} else {
			heading.SetSpaceBefore(9)
		}

		for _, point := range project.Points {
			p := styledBullet(doc, point, StylePoint)
			p.SetSpacing(15, 3)
		}
	}
}
