package handler

import (
	"github.com/musitech/crm-api/internal/core/domain"
	"github.com/musitech/crm-api/internal/core/ports"
)

type registerRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin client subuser"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   *string `json:"company"`
	Phone     *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// tokenResponse is the login payload. External tooling decodes access_token
// directly, so its shape and the claim set it carries are part of the contract.
type tokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int                `json:"expires_in"`
	User        *domain.PublicUser `json:"user"`
}

func newTokenResponse(r *ports.LoginResult) tokenResponse {
	return tokenResponse{
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		ExpiresIn:   r.ExpiresIn,
		User:        r.User,
	}
}
