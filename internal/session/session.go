package session

// Session is the authenticated identity plus optional credential and API
// key. The JSON shape matches the persisted txm_user blob.
type Session struct {
	Email  string `json:"email"`
	Token  string `json:"token,omitempty"`
	APIKey string `json:"apiKey,omitempty"`
}
