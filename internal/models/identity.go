package models

// SessionIdentity is the user identity reported by the identity provider for
// a verified session. Never persisted; lifetime is one request.
type SessionIdentity struct {
	Email  string   `json:"email"`
	Name   string   `json:"name,omitempty"`
	Groups []string `json:"groups"`
}

// AuthResult is the outcome of a session verification.
type AuthResult struct {
	Authenticated bool             `json:"authenticated"`
	User          *SessionIdentity `json:"user"`
}
