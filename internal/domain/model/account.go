package model

import (
	"strings"
	"unicode/utf8"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

const minPasswordLen = 6

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires both credentials.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return apperrors.Validation("Email dan password wajib diisi")
	}
	return nil
}

// LoginResponse is the body returned by POST /users/login.
type LoginResponse struct {
	Token string         `json:"token"`
	User  *auth.Identity `json:"user,omitempty"`
}

// RegisterRequest is the body of POST /users/register. ConfirmPassword stays local.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// Validate checks the confirmation first, then the minimum length.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Password != r.ConfirmPassword {
		return apperrors.ValidationField("confirmPassword", "Password dan konfirmasi password tidak cocok!")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLen {
		return apperrors.ValidationField("password", "Password minimal 6 karakter!")
	}
	if r.Name == "" || r.Email == "" {
		return apperrors.Validation("Nama dan email wajib diisi")
	}
	return nil
}
