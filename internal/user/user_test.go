package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/pagination"
)

func mockUsers(t *testing.T) []*User {
	t.Helper()
	users := make([]*User, 0, 4)
	for _, create := range Mock() {
		obj, err := create.Build()
		require.NoError(t, err)
		users = append(users, obj)
	}
	return users
}

func names(users []*User) []string {
	result := make([]string, 0, len(users))
	for _, obj := range users {
		result = append(result, obj.Name)
	}
	return result
}

func TestCreate_BuildDefaults(t *testing.T) {
	obj, err := (&Create{Email: " new@example.com "}).Build()
	require.NoError(t, err)

	assert.NotEmpty(t, obj.ID)
	assert.Equal(t, "new@example.com", obj.Email)
	assert.Equal(t, PlanFree, obj.Plan)
	assert.Equal(t, StatusActive, obj.Status)
	assert.Nil(t, obj.LastLogin)
	assert.False(t, obj.CreatedAt.IsZero())
}

func TestCreate_BuildRejectsInvalidInput(t *testing.T) {
	_, err := (&Create{}).Build()
	assert.ErrorIs(t, err, ErrMissingEmail)

	_, err = (&Create{Email: "a@b.c", Plan: "enterprise"}).Build()
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = (&Create{Email: "a@b.c", Status: "banned"}).Build()
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdate_Apply(t *testing.T) {
	original := mockUsers(t)[1]
	plan := PlanPro
	updated := (&Update{Plan: &plan}).Apply(original)

	assert.Equal(t, PlanFree, original.Plan)
	assert.Equal(t, PlanPro, updated.Plan)
	assert.Equal(t, original.Status, updated.Status)
}

func TestSchema(t *testing.T) {
	asc := pagination.SortOrderAscending
	tests := []struct {
		name   string
		intent pagination.Intent
		want   []string
	}{
		{
			name:   "newest first by default",
			intent: pagination.Intent{},
			want:   []string{"John Silva", "Maria Santos", "Ana Costa", "Carlos Oliveira"},
		},
		{
			name:   "plan filter",
			intent: pagination.Intent{Filters: map[string]string{FilterPlan: "pro"}},
			want:   []string{"John Silva", "Carlos Oliveira"},
		},
		{
			name:   "status filter",
			intent: pagination.Intent{Filters: map[string]string{FilterStatus: "suspended"}},
			want:   []string{"Ana Costa"},
		},
		{
			name:   "search by email",
			intent: pagination.Intent{Search: ptr("INFLUENCER")},
			want:   []string{"Ana Costa"},
		},
		{
			name:   "never logged in sorts first",
			intent: pagination.Intent{SortBy: ptr("lastLogin"), SortOrder: &asc},
			want:   []string{"Ana Costa", "Carlos Oliveira", "Maria Santos", "John Silva"},
		},
		{
			name:   "most posts",
			intent: pagination.Intent{SortBy: ptr("totalPosts")},
			want:   []string{"Carlos Oliveira", "John Silva", "Maria Santos", "Ana Costa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := pagination.Paginate(mockUsers(t), pagination.Build(tt.intent, Defaults), Schema)
			assert.Equal(t, tt.want, names(page.Items))
		})
	}
}

func ptr[T any](val T) *T {
	return &val
}
