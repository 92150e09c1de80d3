package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-editor/internal/chat"
	"github.com/jonathan/resume-editor/internal/history"
	"github.com/jonathan/resume-editor/internal/patch"
	"github.com/jonathan/resume-editor/internal/project"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		projectNotFound *project.NotFoundError
		historyNotFound *history.NotFoundError
		duplicateName   *project.DuplicateNameError
		invalidName     *project.InvalidNameError
		busy            *chat.BusyError
		noCredential    *chat.CredentialMissingError
		upstream        *chat.UpstreamError
		malformed       *chat.MalformedResponseError
		rejected        *chat.RejectedError
		patchErr        *patch.Error
	)

	switch {
	case errors.As(err, &projectNotFound), errors.As(err, &historyNotFound):
		return http.StatusNotFound
	case errors.As(err, &duplicateName):
		return http.StatusConflict
	case errors.As(err, &invalidName):
		return http.StatusBadRequest
	case errors.As(err, &busy):
		return http.StatusTooManyRequests
	case errors.As(err, &noCredential):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream), errors.As(err, &malformed):
		return http.StatusBadGateway
	case errors.As(err, &rejected), errors.As(err, &patchErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
