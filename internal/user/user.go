package user

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPlan   = errors.New("invalid user plan")
	ErrInvalidStatus = errors.New("invalid user status")
	ErrMissingEmail  = errors.New("an email address is required")
)

// Plan represents the subscription plan of a user
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// ParsePlan validates a raw plan value
func ParsePlan(raw string) (Plan, error) {
	switch Plan(raw) {
	case PlanFree, PlanPro:
		return Plan(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, raw)
	}
}

// Status represents the account status of a user
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// ParseStatus validates a raw status value
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusActive, StatusInactive, StatusSuspended:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// User represents a creator registered to the dashboard
type User struct {
	ID         string     `json:"id" yaml:"id"`
	Email      string     `json:"email" yaml:"email"`
	Name       string     `json:"name" yaml:"name"`
	Plan       Plan       `json:"plan" yaml:"plan"`
	Status     Status     `json:"status" yaml:"status"`
	CreatedAt  time.Time  `json:"createdAt" yaml:"createdAt"`
	LastLogin  *time.Time `json:"lastLogin,omitempty" yaml:"lastLogin,omitempty"`
	TotalPosts int        `json:"totalPosts" yaml:"totalPosts"`
	SignupIP   string     `json:"signupIp,omitempty" yaml:"signupIp,omitempty"`
}
