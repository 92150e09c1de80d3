// Package validation checks resume documents for structural validity.
// Validation is pure and never fails fast: one call returns every violation
// found, in field order, so callers can surface the complete defect list.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/jonathan/resume-editor/internal/types"
)

// requiredFields are the seven top-level fields every document must carry,
// checked in this order.
var requiredFields = []string{"name", "title", "contact", "education", "skills", "experience", "projects"}

// skillFields are the six named sub-fields of "skills"
var skillFields = []string{"languages", "frameworks", "databases", "sourceManagement", "english", "others"}

// emailPattern is a deliberately simple shape check: something@something.tld
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result reports the outcome of validating one document
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks a generic document tree against the required resume shape.
// It returns a Result listing all violations; it never panics on malformed input.
func Validate(doc map[string]any) Result {
	var errs []string

	if doc == nil {
		return Result{IsValid: false, Errors: []string{"document must be an object"}}
	}

	// Presence of the seven required top-level fields. Deep checks below only
	// run for fields that are present, so an empty document reports exactly
	// one error per missing field.
	for _, field := range requiredFields {
		if _, ok := doc[field]; !ok {
			errs = append(errs, fmt.Sprintf("missing required field %q", field))
		}
	}

	if v, ok := doc["name"]; ok {
		if _, isStr := v.(string); !isStr {
			errs = append(errs, `field "name" must be a string`)
		}
	}
	if v, ok := doc["title"]; ok {
		if _, isStr := v.(string); !isStr {
			errs = append(errs, `field "title" must be a string`)
		}
	}

	if v, ok := doc["contact"]; ok {
		errs = append(errs, validateContact(v)...)
	}
	if v, ok := doc["education"]; ok {
		errs = append(errs, validateEntryArray(v, "education", []string{"institution", "degree", "duration", "details"})...)
	}
	if v, ok := doc["skills"]; ok {
		errs = append(errs, validateSkills(v)...)
	}
	if v, ok := doc["experience"]; ok {
		errs = append(errs, validateExperience(v)...)
	}
	if v, ok := doc["projects"]; ok {
		errs = append(errs, validateProjects(v)...)
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateDocument validates a typed document by round-tripping it through
// its generic JSON form.
func ValidateDocument(doc types.ResumeDocument) Result {
	m, err := doc.Generic()
	if err != nil {
		return Result{IsValid: false, Errors: []string{fmt.Sprintf("document is not serializable: %v", err)}}
	}
	return Validate(m)
}

// ValidateBytes validates raw JSON text, e.g. an imported document.
// Non-JSON input yields a single parse error.
func ValidateBytes(data []byte) Result {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Result{IsValid: false, Errors: []string{fmt.Sprintf("document is not valid JSON: %v", err)}}
	}
	return Validate(m)
}

func validateContact(v any) []string {
	contact, ok := v.(map[string]any)
	if !ok {
		return []string{`field "contact" must be an object`}
	}

	var errs []string
	for _, field := range []string{"email", "phone", "github"} {
		fv, present := contact[field]
		if !present {
			errs = append(errs, fmt.Sprintf("contact is missing field %q", field))
			continue
		}
		s, isStr := fv.(string)
		if !isStr {
			errs = append(errs, fmt.Sprintf("contact field %q must be a string", field))
			continue
		}
		switch field {
		case "email":
			if s == "" {
				errs = append(errs, "contact email must not be empty")
			} else if !emailPattern.MatchString(s) {
				errs = append(errs, fmt.Sprintf("contact email %q is not a valid email address", s))
			}
		case "phone":
			if s == "" {
				errs = append(errs, "contact phone must not be empty")
			}
		}
	}
	return errs
}

func validateSkills(v any) []string {
	skills, ok := v.(map[string]any)
	if !ok {
		return []string{`field "skills" must be an object`}
	}

	var errs []string
	for _, field := range skillFields {
		fv, present := skills[field]
		if !present {
			errs = append(errs, fmt.Sprintf("skills is missing field %q", field))
			continue
		}
		if _, isStr := fv.(string); !isStr {
			errs = append(errs, fmt.Sprintf("skills field %q must be a string", field))
		}
	}
	return errs
}

// validateEntryArray checks an array whose elements carry only string fields
func validateEntryArray(v any, name string, fields []string) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{fmt.Sprintf("field %q must be an array", name)}
	}

	var errs []string
	for i, el := range arr {
		entry, isObj := el.(map[string]any)
		if !isObj {
			errs = append(errs, fmt.Sprintf("%s[%d] must be an object", name, i))
			continue
		}
		errs = append(errs, validateStringFields(entry, fmt.Sprintf("%s[%d]", name, i), fields)...)
	}
	return errs
}

func validateExperience(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{`field "experience" must be an array`}
	}

	var errs []string
	for i, el := range arr {
		entry, isObj := el.(map[string]any)
		if !isObj {
			errs = append(errs, fmt.Sprintf("experience[%d] must be an object", i))
			continue
		}
		label := fmt.Sprintf("experience[%d]", i)
		errs = append(errs, validateStringFields(entry, label, []string{"role", "company", "duration", "techStack"})...)
		errs = append(errs, validateStringArray(entry, label, "responsibilities")...)
	}
	return errs
}

func validateProjects(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{`field "projects" must be an array`}
	}

	var errs []string
	for i, el := range arr {
		entry, isObj := el.(map[string]any)
		if !isObj {
			errs = append(errs, fmt.Sprintf("projects[%d] must be an object", i))
			continue
		}
		label := fmt.Sprintf("projects[%d]", i)
		errs = append(errs, validateStringFields(entry, label, []string{"name", "techStack"})...)
		if fv, present := entry["isPersonal"]; !present {
			errs = append(errs, fmt.Sprintf("%s is missing field %q", label, "isPersonal"))
		} else if _, isBool := fv.(bool); !isBool {
			errs = append(errs, fmt.Sprintf("%s field %q must be a boolean", label, "isPersonal"))
		}
		errs = append(errs, validateStringArray(entry, label, "responsibilities")...)
	}
	return errs
}

func validateStringFields(entry map[string]any, label string, fields []string) []string {
	var errs []string
	for _, field := range fields {
		fv, present := entry[field]
		if !present {
			errs = append(errs, fmt.Sprintf("%s is missing field %q", label, field))
			continue
		}
		if _, isStr := fv.(string); !isStr {
			errs = append(errs, fmt.Sprintf("%s field %q must be a string", label, field))
		}
	}
	return errs
}

func validateStringArray(entry map[string]any, label, field string) []string {
	fv, present := entry[field]
	if !present {
		return []string{fmt.Sprintf("%s is missing field %q", label, field)}
	}
	arr, isArr := fv.([]any)
	if !isArr {
		return []string{fmt.Sprintf("%s field %q must be an array of strings", label, field)}
	}
	var errs []string
	for i, el := range arr {
		if _, isStr := el.(string); !isStr {
			errs = append(errs, fmt.Sprintf("%s field %q element %d must be a string", label, field, i))
		}
	}
	return errs
}
