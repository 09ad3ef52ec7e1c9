package meta

import "fmt"

// ErrAuthentication represents an error asserting that a request could not be
// authenticated-- i.e. no session, or an invalid or expired one.
type ErrAuthentication struct {
	TypeMeta `json:",inline"`
	// Reason is a natural language explanation for the failure, typically
	// echoed from the backend's error payload.
	Reason string `json:"message,omitempty"`
}

func NewErrAuthentication(reason string) *ErrAuthentication {
	return &ErrAuthentication{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       "AuthenticationError",
		},
		Reason: reason,
	}
}

func (e *ErrAuthentication) Error() string {
	if e.Reason == "" {
		return "Could not authenticate the request."
	}
	return fmt.Sprintf("Could not authenticate the request: %s", e.Reason)
}

// ErrAuthorization represents an error asserting that an authenticated
// principal is not permitted to carry out the requested operation.
type ErrAuthorization struct {
	TypeMeta `json:",inline"`
	Reason   string `json:"message,omitempty"`
}

func NewErrAuthorization() *ErrAuthorization {
	return &ErrAuthorization{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       "AuthorizationError",
		},
	}
}

func (e *ErrAuthorization) Error() string {
	if e.Reason == "" {
		return "The request is not authorized."
	}
	return e.Reason
}

// ErrBadRequest represents an error asserting that a request is invalid--
// malformed, missing required fields, or failing validation.
type ErrBadRequest struct {
	TypeMeta `json:",inline"`
	// Reason is a natural language explanation of what was wrong with the
	// request.
	Reason string `json:"message,omitempty"`
	// Details itemizes specific problems, e.g. individual schema validation
	// failures.
	Details []string `json:"details,omitempty"`
}

func NewErrBadRequest(reason string, details ...string) *ErrBadRequest {
	return &ErrBadRequest{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       "BadRequestError",
		},
		Reason:  reason,
		Details: details,
	}
}

func (e *ErrBadRequest) Error() string {
	if e.Reason == "" {
		e.Reason = "The request was invalid."
	}
	if len(e.Details) == 0 {
		return fmt.Sprintf("Bad request: %s", e.Reason)
	}
	msg := fmt.Sprintf("Bad request: %s:", e.Reason)
	for i, detail := range e.Details {
		msg = fmt.Sprintf("%s\n  %d. %s", msg, i, detail)
	}
	return msg
}

// ErrNotFound represents an error asserting that a requested resource does
// not exist.
type ErrNotFound struct {
	TypeMeta `json:",inline"`
	// Type identifies the type of the resource that could not be found.
	Type string `json:"type,omitempty"`
	// ID identifies the specific resource that could not be found.
	ID string `json:"id,omitempty"`
}

func NewErrNotFound(tipe string, id string) *ErrNotFound {
	return &ErrNotFound{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       "NotFoundError",
		},
		Type: tipe,
		ID:   id,
	}
}

func (e *ErrNotFound) Error() string {
	if e.Type == "" && e.ID == "" {
		return "The requested resource was not found."
	}
	return fmt.Sprintf("%s %q not found.", e.Type, e.ID)
}

// ErrConflict represents an error asserting that a request could not be
// completed because it conflicted with existing state-- e.g. a duplicate
// username at registration.
type ErrConflict struct {
	TypeMeta `json:",inline"`
	Reason   string `json:"message,omitempty"`
}

func NewErrConflict(reason string) *ErrConflict {
	return &ErrConflict{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       "ConflictError",
		},
		Reason: reason,
	}
}

func (e *ErrConflict) Error() string {
	if e.Reason == "" {
		return "The request conflicted with the current state of the resource."
	}
	return e.Reason
}

// ErrInternalServer represents a generic, unexpected server-side failure.
// Detail is deliberately withheld from callers.
type ErrInternalServer struct {
	TypeMeta `json:",inline"`
}

func NewErrInternalServer() *ErrInternalServer {
	return &ErrInternalServer{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       "InternalServerError",
		},
	}
}

func (e *ErrInternalServer) Error() string {
	return "An internal server error occurred."
}
