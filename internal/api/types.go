package api

// CredentialsRequest is a username/password JSON body. Pointers let binding
// tell a missing field from an empty one.
type CredentialsRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// AuthenticateRequest is the body of POST /authenticate
type AuthenticateRequest struct {
	Username  *string `json:"username" binding:"required"`
	Password  *string `json:"password" binding:"required"`
	SessionID string  `json:"session_id"`
}

// AuthenticateResponse is returned by both /authenticate variants
type AuthenticateResponse struct {
	Authenticated bool   `json:"authenticated"`
	SessionID     string `json:"session_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// CheckAnswerRequest is the body of POST /check_answer
type CheckAnswerRequest struct {
	Type      *string `json:"type" binding:"required"`
	Value     string  `json:"value"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	SessionID string  `json:"session_id"`
}

// SessionResponse carries a session id
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// ContentResponse wraps an HTML fragment
type ContentResponse struct {
	Content string `json:"content"`
}

// SessionView is the admin view of one session
type SessionView struct {
	SessionID      string `json:"session_id"`
	Authenticated  bool   `json:"authenticated"`
	ChallengeCount int    `json:"challenge_count"`
}
