package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("conflict")
)

// DB related errors
var (
	// ConstraintViolationError is returned when a required relation of the aggregate is missing
	ConstraintViolationError = errors.Wrap(BadParameterError, "constraint violation")
)

// Downstream related errors
var (
	// TransientExternalError wraps every failure of a downstream system. Callers on the request path
	// never see it: the work is retried by the reconciliation jobs.
	TransientExternalError = errors.New("transient external error")

	// EnrichmentFailure is logged at warn level and the enriched value is left empty.
	EnrichmentFailure = errors.New("enrichment failure")
)

// Dialogmote related errors
var (
	ErrMissingArbeidstaker = errors.Wrap(ConstraintViolationError, "dialogmote has no arbeidstaker")
	ErrMissingArbeidsgiver = errors.Wrap(ConstraintViolationError, "dialogmote has no arbeidsgiver")
	ErrMissingTidSted      = errors.Wrap(ConstraintViolationError, "dialogmote has no tid and sted")

	ErrDialogmoteNotOpen      = errors.Wrap(ConflictError, "dialogmote is not open")
	ErrDialogmoteNotFinalized = errors.Wrap(ConflictError, "dialogmote is not finalized")
	ErrDialogmoteNotOutdated  = errors.Wrap(ConflictError, "dialogmote is not outdated")
)

// Varsel related errors
var (
	ErrVarselAlreadyAnswered = errors.Wrap(ConflictError, "varsel already has a svar")
	ErrVarselNotAnswerable   = errors.Wrap(ConflictError, "varsel does not accept a svar")
)

// TransitionError is returned when a status transition is not part of the dialogmote lifecycle.
type TransitionError struct {
	From DialogmoteStatus
	To   DialogmoteStatus
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("illegal dialogmote status transition %s -> %s", e.From, e.To)
}

func (e TransitionError) Unwrap() error {
	return ConflictError
}
