package server

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

func (Role) EnumValues() []any {
	return []any{RoleAdmin, RoleMember, RoleViewer}
}

func (r Role) valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// User is an account. Team is set when the user belongs to one.
type User struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name" openapi:"minLength=1,maxLength=64"`
	Email   string    `json:"email" openapi:"format=email"`
	Role    Role      `json:"role"`
	Team    *Team     `json:"team,omitempty" openapi:"description=team the user belongs to"`
	Created time.Time `json:"created" openapi:"readOnly"`
}

func (User) OpenAPIExample() any {
	return User{
		ID:      1,
		Name:    "Alice",
		Email:   "alice@example.com",
		Role:    RoleAdmin,
		Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// Team groups users under one owner.
type Team struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" openapi:"minLength=1,maxLength=64"`
	Owner   User   `json:"owner"`
	Members []User `json:"members"`
}

// Project is a unit of work owned by a team.
type Project struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name" openapi:"minLength=1,maxLength=120"`
	TeamID  int64     `json:"teamId"`
	Labels  []string  `json:"labels,omitempty" openapi:"uniqueItems"`
	Meta    Labels    `json:"meta,omitempty"`
	Created time.Time `json:"created" openapi:"readOnly"`
}

// Labels are free-form key/value annotations.
type Labels map[string]string

// CreateUser is the body of the create user operation.
type CreateUser struct {
	Name  string `json:"name" openapi:"minLength=1,maxLength=64"`
	Email string `json:"email" openapi:"format=email"`
	Role  Role   `json:"role,omitempty" openapi:"default=member"`
}

func (c *CreateUser) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Role == "" {
		c.Role = RoleMember
	}
}

func (c CreateUser) valid() bool {
	return c.Name != "" && len(c.Name) <= 64 && strings.Contains(c.Email, "@") && c.Role.valid()
}

// CreateTeam is the body of the create team operation.
type CreateTeam struct {
	Name    string `json:"name" openapi:"minLength=1,maxLength=64"`
	OwnerID int64  `json:"ownerId"`
}

// TeamMember is the body of the add member operation.
type TeamMember struct {
	UserID int64 `json:"userId"`
}

// CreateProject is the body of the create project operation.
type CreateProject struct {
	Name   string   `json:"name" openapi:"minLength=1,maxLength=120"`
	TeamID int64    `json:"teamId"`
	Labels []string `json:"labels,omitempty" openapi:"uniqueItems"`
	Meta   Labels   `json:"meta,omitempty"`
}

func (c CreateProject) valid() bool {
	name := strings.TrimSpace(c.Name)
	return name != "" && len(name) <= 120
}
