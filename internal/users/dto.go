package users

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kolamtech/tambak-backend/pkg/db/models"
	"github.com/kolamtech/tambak-backend/pkg/enums"
)

// UserDTO is the public representation of a staff account.
type UserDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Role        enums.MemberRole `json:"role"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
}

// FromModel converts a persisted user into its DTO form.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
	}
}

// CreateUserDTO carries the fields needed to insert a staff account.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.MemberRole
}

// ToModel builds a persistence model from the DTO.
func (d CreateUserDTO) ToModel() *models.User {
	role := d.Role
	if role == "" {
		role = enums.MemberRoleEmployee
	}
	return &models.User{
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.ToLower(strings.TrimSpace(d.Email)),
		PasswordHash: d.PasswordHash,
		Role:         role,
	}
}
