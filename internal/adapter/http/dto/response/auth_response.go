package response

import "time"

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AdminResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
