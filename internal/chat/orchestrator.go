// Package chat turns a user's conversational request into patched, validated,
// committed document state. One round trip: build the prompt from the live
// document, call the completion service, apply the returned patches
// atomically, then record both the transcript turn and a history snapshot.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-editor/internal/history"
	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/patch"
	"github.com/jonathan/resume-editor/internal/project"
	"github.com/jonathan/resume-editor/internal/prompts"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/validation"
)

const promptFile = "editing.json"

// ImportMessage is the history message recorded for a document import.
const ImportMessage = "Imported resume document"

// Result is the outcome of one chat turn.
type Result struct {
	// Message is the assistant's reply shown to the user.
	Message string `json:"message"`
	// Patches are the operations the model proposed (possibly empty).
	Patches []types.PatchOperation `json:"patches"`
	// Applied is true when the patches were applied and committed.
	Applied bool `json:"applied"`
	// Document is the project's document after this turn.
	Document types.ResumeDocument `json:"document"`
	// Entry is the history entry created by this turn, if any.
	Entry *types.HistoryEntry `json:"entry,omitempty"`
}

// Orchestrator coordinates the completion service, patch engine, validator,
// and history store for a single editing session.
type Orchestrator struct {
	client   llm.Client
	projects *project.Manager
	history  *history.Store
	busy     atomic.Bool
}

// New creates an orchestrator. The client may be nil; chat operations then
// fail with CredentialMissingError while non-LLM operations keep working.
func New(client llm.Client, projects *project.Manager, hist *history.Store) *Orchestrator {
	return &Orchestrator{
		client:   client,
		projects: projects,
		history:  hist,
	}
}

// SendMessage runs one chat turn against the given project. The user message
// and the assistant's reply (or an error notice) are always appended to the
// project transcript; the document and history change only when the model's
// patches apply cleanly and the result validates.
func (o *Orchestrator) SendMessage(ctx context.Context, projectID, message string) (*Result, error) {
	if o.client == nil {
		return nil, &CredentialMissingError{}
	}
	if !o.busy.CompareAndSwap(false, true) {
		return nil, &BusyError{}
	}
	defer o.busy.Store(false)

	doc, err := o.projects.Document(projectID)
	if err != nil {
		return nil, err
	}

	if err := o.projects.AppendMessages(projectID, userTurn(message)); err != nil {
		return nil, err
	}

	edit, err := o.requestEdit(ctx, doc, message)
	if err != nil {
		o.recordFailure(projectID, err)
		return nil, err
	}

	if len(edit.Patches) == 0 {
		result := &Result{Message: edit.Message, Patches: edit.Patches, Document: doc}
		if err := o.projects.AppendMessages(projectID, assistantTurn(edit.Message)); err != nil {
			return nil, err
		}
		return result, nil
	}

	updated, _, err := patch.Apply(doc, edit.Patches)
	if err != nil {
		o.recordFailedEdit(projectID, edit.Message, err)
		return nil, err
	}

	if report := validation.ValidateDocument(updated); !report.IsValid {
		rejected := &RejectedError{Reasons: report.Errors}
		o.recordFailedEdit(projectID, edit.Message, rejected)
		return nil, rejected
	}

	entry, err := o.history.Commit(projectID, updated, message)
	if err != nil {
		return nil, err
	}

	if err := o.projects.AppendMessages(projectID, assistantTurn(edit.Message)); err != nil {
		return nil, err
	}

	return &Result{
		Message:  edit.Message,
		Patches:  edit.Patches,
		Applied:  true,
		Document: updated,
		Entry:    &entry,
	}, nil
}

// MatchJob compares the project's document against a job description and
// returns the requirements it satisfies and the ones it lacks.
func (o *Orchestrator) MatchJob(ctx context.Context, projectID, jobDescription string) (types.MatchResult, error) {
	if o.client == nil {
		return types.MatchResult{}, &CredentialMissingError{}
	}

	doc, err := o.projects.Document(projectID)
	if err != nil {
		return types.MatchResult{}, err
	}
	canonical, err := doc.Canonical()
	if err != nil {
		return types.MatchResult{}, err
	}

	template := prompts.MustGet(promptFile, "job-match")
	prompt := prompts.Format(template, map[string]string{
		"Document":       string(canonical),
		"JobDescription": jobDescription,
	})

	raw, err := o.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return types.MatchResult{}, &UpstreamError{Model: o.client.Model(), Cause: err}
	}

	var match types.MatchResult
	if err := json.Unmarshal([]byte(llm.ExtractJSONObject(raw)), &match); err != nil {
		return types.MatchResult{}, &MalformedResponseError{Raw: raw, Reason: err.Error()}
	}
	return match, nil
}

// ExtractDocument converts raw resume text into a structured document using
// the completion service. The result is validated before being returned.
func (o *Orchestrator) ExtractDocument(ctx context.Context, text string) (types.ResumeDocument, error) {
	if o.client == nil {
		return types.ResumeDocument{}, &CredentialMissingError{}
	}

	template := prompts.MustGet(promptFile, "extract-resume")
	prompt := prompts.Format(template, map[string]string{"Text": text})

	raw, err := o.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return types.ResumeDocument{}, &UpstreamError{Model: o.client.Model(), Cause: err}
	}

	data := []byte(llm.ExtractJSONObject(raw))
	if report := validation.ValidateBytes(data); !report.IsValid {
		return types.ResumeDocument{}, &RejectedError{Reasons: report.Errors}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, &MalformedResponseError{Raw: raw, Reason: err.Error()}
	}
	return doc, nil
}

// ImportDocument replaces a project's document with externally supplied JSON.
// The payload must pass both shape validation and the document schema; on
// success a new history entry records the import.
func (o *Orchestrator) ImportDocument(projectID string, data []byte) (types.ResumeDocument, error) {
	if report := validation.ValidateBytes(data); !report.IsValid {
		return types.ResumeDocument{}, &RejectedError{Reasons: report.Errors}
	}
	if err := schemas.ValidateResume(data); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("imported document failed schema validation: %w", err)
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to parse imported document: %w", err)
	}

	if _, err := o.projects.Get(projectID); err != nil {
		return types.ResumeDocument{}, err
	}
	if _, err := o.history.Commit(projectID, doc, ImportMessage); err != nil {
		return types.ResumeDocument{}, err
	}
	return doc, nil
}

// requestEdit builds the editing prompt, calls the completion service, and
// parses the structured reply.
func (o *Orchestrator) requestEdit(ctx context.Context, doc types.ResumeDocument, message string) (*types.EditResponse, error) {
	canonical, err := doc.Canonical()
	if err != nil {
		return nil, err
	}

	template := prompts.MustGet(promptFile, "edit-system")
	system := prompts.Format(template, map[string]string{"Document": string(canonical)})
	prompt := system + "\n\nUser request: " + message

	raw, err := o.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &UpstreamError{Model: o.client.Model(), Cause: err}
	}

	var edit types.EditResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSONObject(raw)), &edit); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Reason: err.Error()}
	}
	if edit.Message == "" && len(edit.Patches) == 0 {
		return nil, &MalformedResponseError{Raw: raw, Reason: "response carries neither patches nor a message"}
	}
	return &edit, nil
}

// recordFailure appends a system notice to the transcript so the user can see
// why their request changed nothing. Transcript write errors are swallowed;
// the original failure is what the caller reports.
func (o *Orchestrator) recordFailure(projectID string, cause error) {
	notice := types.ChatMessage{
		Role:      types.RoleSystem,
		Content:   fmt.Sprintf("The requested edit was not applied: %v", cause),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	_ = o.projects.AppendMessages(projectID, notice)
}

// recordFailedEdit records an edit the model proposed but that could not be
// applied. The assistant's stated intention still becomes a transcript turn;
// the system notice after it explains why the document is unchanged.
func (o *Orchestrator) recordFailedEdit(projectID, assistantMessage string, cause error) {
	if assistantMessage != "" {
		_ = o.projects.AppendMessages(projectID, assistantTurn(assistantMessage))
	}
	o.recordFailure(projectID, cause)
}

func userTurn(content string) types.ChatMessage {
	return types.ChatMessage{
		Role:      types.RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func assistantTurn(content string) types.ChatMessage {
	return types.ChatMessage{
		Role:      types.RoleAssistant,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
