package auth

// represents the admin login response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Role        string `json:"role"`
}

// represents the caller behind a valid token
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
