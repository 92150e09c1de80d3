// Package types provides type definitions for structured data used throughout the resume-editor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// ResumeDocument is the structured resume record that all edits target.
// Field names and JSON tags match the persisted document format, so documents
// written by earlier versions of the editor load unchanged.
type ResumeDocument struct {
	Name       string          `json:"name"`
	Title      string          `json:"title"`
	Contact    Contact         `json:"contact"`
	Education  []Education     `json:"education"`
	Skills     Skills          `json:"skills"`
	Experience []Experience    `json:"experience"`
	Projects   []ResumeProject `json:"projects"`
}

// Contact holds the candidate's contact details
type Contact struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	GitHub string `json:"github"`
}

// Education represents one education entry
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
	Details     string `json:"details"`
}

// Skills holds the six free-text skill fields.
// Each field is a comma-separated string, not an array; the patch engine
// defines append semantics for these fields (see internal/patch).
type Skills struct {
	Languages        string `json:"languages"`
	Frameworks       string `json:"frameworks"`
	Databases        string `json:"databases"`
	SourceManagement string `json:"sourceManagement"`
	English          string `json:"english"`
	Others           string `json:"others"`
}

// Experience represents one work experience entry
type Experience struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	TechStack        string   `json:"techStack"`
	Responsibilities []string `json:"responsibilities"`
}

// ResumeProject represents one portfolio project entry on the resume.
// Distinct from Project in project.go, which is the editor's workspace concept.
type ResumeProject struct {
	Name             string   `json:"name"`
	TechStack        string   `json:"techStack"`
	IsPersonal       bool     `json:"isPersonal"`
	Responsibilities []string `json:"responsibilities"`
}

// DefaultDocument returns the seed resume used for newly created projects.
func DefaultDocument() ResumeDocument {
	return ResumeDocument{
		Name:  "Your Name",
		Title: "Software Engineer",
		Contact: Contact{
			Email:  "you@example.com",
			Phone:  "000-000-0000",
			GitHub: "github.com/yourname",
		},
		Education: []Education{
			{
				Institution: "Your University",
				Degree:      "B.Sc. Computer Science",
				Duration:    "2016 - 2020",
				Details:     "",
			},
		},
		Skills: Skills{
			Languages:        "Go, Python",
			Frameworks:       "",
			Databases:        "PostgreSQL",
			SourceManagement: "Git",
			English:          "Professional working proficiency",
			Others:           "",
		},
		Experience: []Experience{},
		Projects:   []ResumeProject{},
	}
}

// Canonical returns the document serialized as indented JSON.
// This is the form embedded in LLM prompts and exported to callers.
func (d ResumeDocument) Canonical() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Generic returns the document as a generic JSON object tree
// (map[string]any), the form the patch engine operates on.
func (d ResumeDocument) Generic() (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// DocumentFromGeneric decodes a generic JSON object tree back into a typed document.
func DocumentFromGeneric(m map[string]any) (ResumeDocument, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return ResumeDocument{}, err
	}
	var doc ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ResumeDocument{}, err
	}
	return doc, nil
}
