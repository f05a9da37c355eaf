package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleClient  = "client"
	RoleSubuser = "subuser"
)

// User is the durable identity record. IDs are UUID strings kept in a
// dedicated "id" field with a unique index, independent of Mongo's _id.
type User struct {
	ID           string     `json:"id" bson:"id"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         string     `json:"role" bson:"role"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
	LastLogin    *time.Time `json:"last_login" bson:"last_login"`

	// Profile fields
	FirstName *string `json:"first_name" bson:"first_name"`
	LastName  *string `json:"last_name" bson:"last_name"`
	Company   *string `json:"company" bson:"company"`
	Phone     *string `json:"phone" bson:"phone"`

	// Client-specific
	ClientSettings map[string]any `json:"client_settings" bson:"client_settings"`

	// Subuser-specific
	ParentClientID *string        `json:"parent_client_id" bson:"parent_client_id"`
	Permissions    map[string]any `json:"permissions" bson:"permissions"`
}

// PublicUser is the outward projection of a User with credential material
// stripped. Optional fields render as JSON null until set.
type PublicUser struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	Role           string         `json:"role"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	LastLogin      *time.Time     `json:"last_login"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	Company        *string        `json:"company"`
	Phone          *string        `json:"phone"`
	ClientSettings map[string]any `json:"client_settings"`
	Permissions    map[string]any `json:"permissions"`
}

// Public returns the external view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		LastLogin:      u.LastLogin,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Company:        u.Company,
		Phone:          u.Phone,
		ClientSettings: u.ClientSettings,
		Permissions:    u.Permissions,
	}
}
