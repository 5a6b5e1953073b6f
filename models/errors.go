package models

// Typed domain errors. Handlers never inspect messages; the helper maps the
// concrete type to an HTTP status code.

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

// ErrorNotFound also covers "exists but not yours": non-admin lookups are
// scoped by owner, so ownership is never distinguishable from absence.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorInvalidState is a lifecycle guard failure, distinct from NotFound.
type ErrorInvalidState struct {
	Message string
}

func (e ErrorInvalidState) Error() string { return e.Message }

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorUpstreamTimeout struct {
	Message string
}

func (e ErrorUpstreamTimeout) Error() string { return e.Message }

type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }
