package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/videra/data-server/internal/pagination"
)

// Repository defines the user repository API
type Repository interface {
	// List retrieves a page of users matching the given query
	List(ctx context.Context, query pagination.Query) (*pagination.Page[*User], error)

	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id string) (*User, error)

	// Create creates a new user
	Create(ctx context.Context, create *Create) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, id string, update *Update) (*User, error)

	// CountBySignupIP counts the users that signed up from the given IP address
	CountBySignupIP(ctx context.Context, ip string) (int, error)
}

// Create is used to create a new user
type Create struct {
	ID         string
	Email      string
	Name       string
	Plan       Plan
	Status     Status
	CreatedAt  time.Time
	LastLogin  *time.Time
	TotalPosts int
	SignupIP   string
}

// Build validates the create action and builds the resulting user.
// New users default to the free plan and the active status.
func (create *Create) Build() (*User, error) {
	email := strings.TrimSpace(create.Email)
	if email == "" {
		return nil, ErrMissingEmail
	}

	obj := &User{
		ID:         create.ID,
		Email:      email,
		Name:       strings.TrimSpace(create.Name),
		Plan:       create.Plan,
		Status:     create.Status,
		CreatedAt:  create.CreatedAt.UTC(),
		TotalPosts: create.TotalPosts,
		SignupIP:   create.SignupIP,
	}
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	if obj.Plan == "" {
		obj.Plan = PlanFree
	} else if _, err := ParsePlan(string(obj.Plan)); err != nil {
		return nil, err
	}
	if obj.Status == "" {
		obj.Status = StatusActive
	} else if _, err := ParseStatus(string(obj.Status)); err != nil {
		return nil, err
	}
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = time.Now().UTC()
	}
	if create.LastLogin != nil {
		lastLogin := create.LastLogin.UTC()
		obj.LastLogin = &lastLogin
	}
	return obj, nil
}

// Update is used to update an existing user
type Update struct {
	Plan   *Plan
	Status *Status
}

// Apply returns a copy of the given user with the update applied
func (update *Update) Apply(obj *User) *User {
	cpy := *obj
	if update.Plan != nil {
		cpy.Plan = *update.Plan
	}
	if update.Status != nil {
		cpy.Status = *update.Status
	}
	return &cpy
}

// Validate checks whether the update action keeps the user valid
func (update *Update) Validate() error {
	if update.Plan != nil {
		if _, err := ParsePlan(string(*update.Plan)); err != nil {
			return err
		}
	}
	if update.Status != nil {
		if _, err := ParseStatus(string(*update.Status)); err != nil {
			return err
		}
	}
	return nil
}
