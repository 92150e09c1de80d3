// Package project manages the registry of resume projects: CRUD over the
// projects index, the per-project data namespace, and one-time migration of
// legacy single-project data.
package project

import "fmt"

// NotFoundError indicates a project id that does not exist
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project not found: %s", e.ID)
}

// DuplicateNameError indicates a case-insensitive project name collision
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a project named %q already exists", e.Name)
}

// InvalidNameError indicates a project name that fails the naming rules
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid project name %q: %s", e.Name, e.Reason)
}
