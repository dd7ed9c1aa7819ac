package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/api/dashboard"
	"github.com/videra/data-server/internal/client"
	"github.com/videra/data-server/internal/config"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/signup"
	"github.com/videra/data-server/internal/storage"
	"github.com/videra/data-server/internal/storage/memory"
	"gopkg.in/yaml.v3"
)

func newTestAPI(t *testing.T) string {
	t.Helper()
	driver := memory.New()
	require.NoError(t, driver.Initialize(context.Background()))
	require.NoError(t, storage.SeedMockData(context.Background(), driver))

	service := &dashboard.Service{
		Config: &config.Config{
			APIAllowedOrigins:      []string{"*"},
			APIMaxPageLimit:        100,
			SignupMaxAccountsPerIP: 2,
		},
		Storage: driver,
	}
	server := httptest.NewServer(service.Handler())
	t.Cleanup(func() {
		server.Close()
		_ = service.Shutdown(context.Background())
		driver.Close()
	})
	return server.URL
}

// execute runs the CLI against the given API and returns stdout and stderr
func execute(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCmdWithEnv(func(key string) (string, bool) {
		if key == EnvAPIURL {
			return apiURL, true
		}
		return "", false
	})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func itemIDs(items []*content.Item) []string {
	ids := make([]string, 0, len(items))
	for _, obj := range items {
		ids = append(ids, obj.ID)
	}
	return ids
}

func TestRoot_InvalidOutput(t *testing.T) {
	_, _, err := execute(t, "http://localhost:1", "content", "list", "-o", "xml")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestRoot_APIURLFlagOverridesEnv(t *testing.T) {
	apiURL := newTestAPI(t)
	stdout, _, err := execute(t, "http://localhost:1", "content", "list", "--api-url", apiURL, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "showing 1 to 1 of 6")
}

func TestContentList_Table(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "content", "list", "--limit", "2", "--sort-by", "views")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Title")
	assert.Contains(t, stdout, "The Morning Routine That Changed My Life")
	assert.Contains(t, stdout, "Quick and Healthy Recipes")
	assert.NotContains(t, stdout, "No-Equipment Home Workout")
	assert.Contains(t, stdout, "[1]")
	assert.Contains(t, stdout, "showing 1 to 2 of 6")
}

func TestContentList_AllPages(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "content", "list", "--limit", "4", "--sort-by", "views", "--sort-order", "asc", "--all", "-o", "json")
	require.NoError(t, err)

	var items []*content.Item
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	assert.Equal(t, []string{"5", "3", "2", "4", "6", "1"}, itemIDs(items))
}

func TestContentList_RepeatedSortKeyFlipsOrder(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "content", "list", "--limit", "4", "--sort-by", "views", "--sort-by", "views", "--all", "-o", "json")
	require.NoError(t, err)
	var items []*content.Item
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	assert.Equal(t, []string{"5", "3", "2", "4", "6", "1"}, itemIDs(items))

	stdout, _, err = execute(t, apiURL, "content", "list", "--limit", "4", "--sort-by", "views", "--sort-by", "views", "--sort-by", "views", "--all", "-o", "json")
	require.NoError(t, err)
	items = nil
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	assert.Equal(t, []string{"1", "6", "4", "2", "3", "5"}, itemIDs(items))
}

func TestContentList_AllPagesFromLaterPage(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "content", "list", "--limit", "2", "--page", "2", "--sort-by", "views", "--all", "-o", "json")
	require.NoError(t, err)

	var items []*content.Item
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	assert.Equal(t, []string{"4", "2", "3", "5"}, itemIDs(items))
}

func TestContentList_FilterYAML(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "content", "list", "--filter", "platform=TikTok", "-o", "yaml")
	require.NoError(t, err)

	var response struct {
		Data []struct {
			ID string `yaml:"id"`
		} `yaml:"data"`
		Pagination pagination.Metadata `yaml:"pagination"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, 2, response.Pagination.TotalItems)
	assert.Len(t, response.Data, 2)
}

func TestContentList_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{name: "unknown filter", args: []string{"--filter", "color=red"}, err: ErrUnknownFilter},
		{name: "malformed filter", args: []string{"--filter", "platform"}, err: ErrInvalidFilter},
		{name: "sort order", args: []string{"--sort-order", "up"}, err: pagination.ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"content", "list"}, tt.args...)
			_, _, err := execute(t, "http://localhost:1", args...)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestContentList_RejectedByAPI(t *testing.T) {
	apiURL := newTestAPI(t)

	_, _, err := execute(t, apiURL, "content", "list", "--sort-by", "color")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
}

func TestTrendsList_Empty(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "trends", "list", "--search", "nothing matches this")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No items found.")
	assert.Contains(t, stdout, "showing 0 of 0")
}

func TestUsersList(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "users", "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"pagination"`)
	assert.Contains(t, stdout, `"currentPage": 1`)
}

func TestAnalyticsSummary(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "analytics", "summary", "--period", "7d", "-o", "json")
	require.NoError(t, err)

	var summary analytics.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, int64(459000), summary.TotalViews)
	assert.Equal(t, 86.6, summary.GrowthRate)

	stdout, _, err = execute(t, apiURL, "analytics", "summary", "--period", "7d")
	require.NoError(t, err)
	assert.Contains(t, stdout, "459000")
	assert.Contains(t, stdout, "+86.6%")
}

func TestAnalyticsSummary_InvalidPeriod(t *testing.T) {
	_, _, err := execute(t, "http://localhost:1", "analytics", "summary", "--period", "1y")
	assert.ErrorIs(t, err, analytics.ErrInvalidPeriod)
}

func TestAnalyticsChart(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "analytics", "chart", "--type", "platforms", "--period", "7d")
	require.NoError(t, err)
	assert.Contains(t, stdout, "YouTube")
	assert.Contains(t, stdout, "362000")
}

func TestSignupEligibility(t *testing.T) {
	apiURL := newTestAPI(t)

	stdout, _, err := execute(t, apiURL, "signup", "eligibility", "-o", "json")
	require.NoError(t, err)

	var result signup.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.Allowed)
	assert.Equal(t, "127.0.0.1", result.IP)
}

func TestRenderControls(t *testing.T) {
	meta := pagination.NewMetadata(pagination.Query{Page: 6, Limit: 10}, 200)
	line := renderControls(pagination.NewControls(meta, nil), meta)

	assert.Contains(t, line, "1 … 4 5")
	assert.Contains(t, line, "[6]")
	assert.Contains(t, line, "7 8 … 20")
	assert.Contains(t, line, "showing 51 to 60 of 200")
}

func TestRenderControls_SinglePage(t *testing.T) {
	meta := pagination.NewMetadata(pagination.Query{Page: 1, Limit: 10}, 3)
	assert.Contains(t, renderControls(pagination.NewControls(meta, nil), meta), "showing 3 of 3")
}
