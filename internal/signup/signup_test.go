package signup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCounter struct {
	counts map[string]int
	err    error
}

func (counter *staticCounter) CountBySignupIP(_ context.Context, ip string) (int, error) {
	if counter.err != nil {
		return 0, counter.err
	}
	return counter.counts[ip], nil
}

func TestParseIP(t *testing.T) {
	tests := []struct {
		ip   string
		want string
	}{
		{ip: "192.168.1.1", want: "192.168.1.1"},
		{ip: "10.0.0.1", want: "10.0.0.1"},
		{ip: "255.255.255.255", want: "255.255.255.255"},
		{ip: " 10.0.0.1 ", want: "10.0.0.1"},
		{ip: "2001:0db8:85a3:0000:0000:8a2e:0370:7334", want: "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{ip: "256.1.1.1"},
		{ip: "1.2.3"},
		{ip: "2001:db8::1"},
		{ip: "unknown"},
		{ip: ""},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip, err := ParseIP(tt.ip)
			if tt.want == "" {
				assert.ErrorIs(t, err, ErrInvalidIP)
				assert.Empty(t, ip)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ip)
		})
	}
}

func TestChecker_Check(t *testing.T) {
	checker := NewChecker(&staticCounter{counts: map[string]int{
		"192.168.1.1": 2,
		"10.0.0.1":    1,
	}}, 0)
	require.Equal(t, DefaultMaxAccountsPerIP, checker.MaxAccountsPerIP)

	blocked := checker.Check(context.Background(), "192.168.1.1")
	assert.False(t, blocked.Allowed)
	require.NotNil(t, blocked.AccountCount)
	assert.Equal(t, 2, *blocked.AccountCount)
	assert.NotEmpty(t, blocked.Message)

	allowed := checker.Check(context.Background(), "10.0.0.1")
	assert.True(t, allowed.Allowed)
	require.NotNil(t, allowed.AccountCount)
	assert.Equal(t, 1, *allowed.AccountCount)
	assert.Empty(t, allowed.Message)

	fresh := checker.Check(context.Background(), "172.16.0.1")
	assert.True(t, fresh.Allowed)
	assert.Equal(t, 0, *fresh.AccountCount)
}

func TestChecker_FailsOpen(t *testing.T) {
	failing := NewChecker(&staticCounter{err: errors.New("database down")}, 2)
	result := failing.Check(context.Background(), "192.168.1.1")
	assert.True(t, result.Allowed)
	assert.Equal(t, "192.168.1.1", result.IP)
	assert.Nil(t, result.AccountCount)
	assert.NotEmpty(t, result.Message)

	invalid := failing.Check(context.Background(), "not-an-ip")
	assert.True(t, invalid.Allowed)
	assert.Equal(t, UnknownIP, invalid.IP)
}
