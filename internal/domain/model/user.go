package model

import (
	"strings"
	"time"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

// User is an account as listed by GET /users.
type User struct {
	ID        ident.ID   `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      auth.Role  `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" keys.
func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	return ident.Unmarshal(b, (*alias)(u), &u.ID)
}

// IsAdmin reports whether the account is an administrator. Admin accounts are never deletable.
func (u User) IsAdmin() bool {
	return strings.EqualFold(string(u.Role), string(auth.RoleAdmin))
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// Validate requires every field; the role defaults to user.
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return apperrors.Validation("Lengkapi data user")
	}
	role, ok := auth.ParseRole(string(r.Role))
	if !ok {
		role = auth.RoleUser
	}
	r.Role = role
	return nil
}

// UpdateUserRequest is the body of PATCH /users/:id. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string    `json:"name,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Password *string    `json:"password,omitempty"`
	Role     *auth.Role `json:"role,omitempty"`
}

// UserForm is the raw admin input for a user edit buffer.
type UserForm struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserFormFrom fills an edit buffer from a stored record. The password is never prefilled.
func UserFormFrom(u User) UserForm {
	return UserForm{Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

// UpdateRequest keeps only the non-empty fields.
func (f UserForm) UpdateRequest() (UpdateUserRequest, error) {
	var req UpdateUserRequest
	if v := strings.TrimSpace(f.Name); v != "" {
		req.Name = &v
	}
	if v := strings.TrimSpace(f.Email); v != "" {
		req.Email = &v
	}
	if v := strings.TrimSpace(f.Password); v != "" {
		req.Password = &v
	}
	if role, ok := auth.ParseRole(f.Role); ok {
		req.Role = &role
	}
	if req.Name == nil && req.Email == nil && req.Password == nil && req.Role == nil {
		return req, apperrors.Validation("Tidak ada perubahan untuk disimpan")
	}
	return req, nil
}
