package resume

// Model is the validated resume content.
type Model struct {
	Summary      string             `json:"summary"`
	Skills       []SkillEntry       `json:"skills"`
	Education    []EducationEntry   `json:"education"`
	Certificates []CertificateEntry `json:"certificates"`
	Work         []WorkEntry        `json:"work"`
	Projects     []ProjectEntry     `json:"projects"`
}

// SkillEntry is one category of skills.
type SkillEntry struct {
	Category string `json:"category"`
	Skill    string `json:"skill"`
}

// WorkEntry is one position held. Date is free-form text.
type WorkEntry struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Date    string   `json:"date"`
	Points  []string `json:"points"`
}

// ProjectEntry is one project with its bullet points.
type ProjectEntry struct {
	Name   string   `json:"name"`
	Points []string `json:"points"`
}

// CertificateEntry is a certification and who issued it.
type CertificateEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

// CredentialEntry is a degree or diploma with details such as honors or coursework.
type CredentialEntry struct {
	Name   string   `json:"name"`
	Points []string `json:"points"`
}

// EducationEntry is an institution and the credentials earned there.
type EducationEntry struct {
	Name        string            `json:"name"`
	Credentials []CredentialEntry `json:"credentials"`
}

// ContactInfo is the personal details record shown in the document header.
type ContactInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	GitHub   string `json:"github" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin" validate:"omitempty,url"`
}

// SectionDirective names the next section to render.
type SectionDirective struct {
	Type string `json:"type" validate:"required"`
}

// Bundle is everything the renderer needs from one structured-data document.
type Bundle struct {
	Model    Model
	Contact  ContactInfo
	Sections []SectionDirective
}

// Top-level keys of the structured-data document.
const (
	KeyResume          = "resume"
	KeyPersonalDetails = "personal_details"
	KeyResumeSections  = "resume_sections"
)
