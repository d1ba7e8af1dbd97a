package entity

// Identity is the current user as decoded from the bearer token.
// It is passed explicitly into the approval functions and never stored.
type Identity struct {
	SubjectID string   `json:"sub"`
	Roles     []string `json:"roles"`
}

// DevTokenUserTypes lists the user types the platform can mint development tokens for
var DevTokenUserTypes = []string{"admin", "junior", "senior", "executive"}

// DevToken is the platform's development token response
type DevToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserInfo    struct {
		Sub   string   `json:"sub"`
		Name  string   `json:"name"`
		Roles []string `json:"roles"`
	} `json:"user_info"`
	Usage string `json:"usage"`
}
