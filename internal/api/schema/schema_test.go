package schema

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/pagination"
)

type testPayload struct {
	Title   *string    `json:"title" required:"true"`
	Views   *int64     `json:"views" min:"0"`
	Status  *string    `json:"status" enum:"draft,published"`
	When    *time.Time `json:"when"`
	Details *struct {
		Score *int `json:"score" min:"0" max:"100"`
	} `json:"details"`
}

func newBodyRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestUnmarshalBody(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		types []string
	}{
		{
			name: "valid",
			body: `{"title":"a","views":3,"status":"draft","when":"2024-01-15T10:00:00Z","details":{"score":5}}`,
		},
		{
			name:  "invalid json",
			body:  `{`,
			types: []string{"validation.requestBody.invalidJSON"},
		},
		{
			name:  "invalid type",
			body:  `{"title":"a","views":"many"}`,
			types: []string{"validation.requestBody.parameter.invalidType"},
		},
		{
			name:  "missing required",
			body:  `{}`,
			types: []string{"validation.requestBody.parameter.missing"},
		},
		{
			name:  "out of range and not allowed",
			body:  `{"title":"a","views":-1,"status":"deleted","details":{"score":101}}`,
			types: []string{"validation.requestBody.parameter.number.outOfRange", "validation.requestBody.parameter.notAllowed", "validation.requestBody.parameter.number.outOfRange"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, errs, err := UnmarshalBody[testPayload](newBodyRequest(tt.body))
			require.NoError(t, err)

			types := make([]string, 0, len(errs))
			for _, e := range errs {
				types = append(types, e.Type)
			}
			if tt.types == nil {
				assert.Empty(t, types)
				require.NotNil(t, payload)
				return
			}
			assert.Equal(t, tt.types, types)
		})
	}
}

func TestUnmarshalBody_NestedFieldName(t *testing.T) {
	_, errs, err := UnmarshalBody[testPayload](newBodyRequest(`{"title":"a","details":{"score":-1}}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "details.score", errs[0].Details["parameter"])
}

func TestWriter_WriteErrors(t *testing.T) {
	writer := &Writer{}
	recorder := httptest.NewRecorder()
	writer.WriteErrors(recorder, http.StatusNotFound, &Error{Type: "x", Message: "y"})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, http.StatusNotFound, response.Status)
	require.Len(t, response.Errors, 1)
	assert.NotNil(t, response.Errors[0].Details)
}

func TestWriter_WriteInternalError(t *testing.T) {
	var hooked error
	writer := &Writer{OnInternalError: func(err error) { hooked = err }}
	recorder := httptest.NewRecorder()
	writer.WriteInternalError(recorder, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.ErrorIs(t, hooked, assert.AnError)
}

func TestBuildListResponse(t *testing.T) {
	query := pagination.Query{Page: 2, Limit: 2, SortBy: "views", SortOrder: pagination.SortOrderDescending}
	page := pagination.NewPage[int](query, nil, 3)

	raw, err := json.Marshal(BuildListResponse(page))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"data": [],
		"pagination": {"currentPage":2,"totalPages":2,"totalItems":3,"itemsPerPage":2,"hasNextPage":false,"hasPreviousPage":true},
		"meta": {"sortBy":"views","sortOrder":"desc"}
	}`, string(raw))
}
