package signup

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultMaxAccountsPerIP is the amount of free accounts a single network may create
const DefaultMaxAccountsPerIP = 2

// UnknownIP is reported whenever the IP address of a requester could not be determined
const UnknownIP = "unknown"

const (
	messageLimitReached = "The limit of free accounts for this network has been reached."
	messageUnverified   = "The IP limit could not be verified. Proceeding with the signup."
)

// ErrInvalidIP is returned whenever a value is neither a dotted IPv4 quad nor a full IPv6 address
var ErrInvalidIP = errors.New("invalid IP address")

var (
	ipv4Regex = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	ipv6Regex = regexp.MustCompile(`^(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)
)

// ParseIP validates the given value as a dotted IPv4 quad or a full (uncompressed) IPv6 address.
// Surrounding whitespace is ignored. Anything else is reported as ErrInvalidIP.
func ParseIP(raw string) (string, error) {
	ip := strings.TrimSpace(raw)
	if !ipv4Regex.MatchString(ip) && !ipv6Regex.MatchString(ip) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIP, raw)
	}
	return ip, nil
}

// Counter counts the accounts created from a specific IP address
type Counter interface {
	CountBySignupIP(ctx context.Context, ip string) (int, error)
}

// Result represents the outcome of a signup eligibility check
type Result struct {
	Allowed      bool   `json:"allowed" yaml:"allowed"`
	IP           string `json:"ip" yaml:"ip"`
	AccountCount *int   `json:"accountCount,omitempty" yaml:"accountCount,omitempty"`
	Message      string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Checker decides whether a new free account may be created from an IP address
type Checker struct {
	Counter          Counter
	MaxAccountsPerIP int
}

// NewChecker creates a new signup eligibility checker.
// A non-positive maximum falls back to DefaultMaxAccountsPerIP.
func NewChecker(counter Counter, maxAccountsPerIP int) *Checker {
	if maxAccountsPerIP < 1 {
		maxAccountsPerIP = DefaultMaxAccountsPerIP
	}
	return &Checker{
		Counter:          counter,
		MaxAccountsPerIP: maxAccountsPerIP,
	}
}

// Check checks whether the given IP address may create another free account.
// The check fails open: if the IP is invalid or the accounts could not be counted, the signup is allowed.
func (checker *Checker) Check(ctx context.Context, raw string) *Result {
	ip, err := ParseIP(raw)
	if err != nil {
		log.Warn().Err(err).Msg("could not verify the signup IP limit")
		return &Result{
			Allowed: true,
			IP:      UnknownIP,
			Message: messageUnverified,
		}
	}

	count, err := checker.Counter.CountBySignupIP(ctx, ip)
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("could not verify the signup IP limit")
		return &Result{
			Allowed: true,
			IP:      ip,
			Message: messageUnverified,
		}
	}

	result := &Result{
		Allowed:      count < checker.MaxAccountsPerIP,
		IP:           ip,
		AccountCount: &count,
	}
	if !result.Allowed {
		result.Message = messageLimitReached
	}
	return result
}
