package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// User represents an account as returned by the auth endpoints.
type User struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is the payload of a successful register or login call.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Workspace represents a workspace the user owns or has joined.
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Logo        string `json:"logo"`
	MemberCount int    `json:"member_count"`
	UserID      string `json:"user_id"`
	Status      string `json:"status,omitempty"`
}
