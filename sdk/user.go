package sdk

// User represents an identity known to the backend API. The gateway and CLI
// hold cached, possibly-stale copies; the backend owns the record and nothing
// on this side of the API ever mutates one piecemeal.
type User struct {
	// ID is the user's immutable identifier.
	ID string `json:"id"`
	// Email is the user's email address.
	Email string `json:"email"`
	// Username is the user's display/login name.
	Username string `json:"username"`
	// Role is the user's coarse-grained role, e.g. "admin".
	Role string `json:"role"`
	// Permissions optionally enumerates fine-grained permissions.
	Permissions []string `json:"permissions,omitempty"`
}
