package model

import "time"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the persisted account record. PasswordHash never leaves the server.
type User struct {
	ID              int64     `json:"id"`
	LastName        string    `json:"nom"`
	FirstName       string    `json:"prenom"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	PasswordHash    string    `json:"-"`
	PublicViewToken string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

type RegisterRequest struct {
	LastName  string `json:"nom" binding:"required"`
	FirstName string `json:"prenom" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest accepts either username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type AuthMeResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type UpdateUserRequest struct {
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}

type UserSearchFilter struct {
	Name         string
	Email        string
	CreatedAfter *time.Time
}

type UserSearchResult struct {
	ID        int64     `json:"id"`
	LastName  string    `json:"nom"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
