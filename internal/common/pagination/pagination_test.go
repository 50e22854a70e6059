package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summary-service/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	cfg := pagination.DefaultConfig()
	tests := []struct {
		name    string
		query   string
		want    pagination.Params
		wantErr bool
	}{
		{name: "defaults", query: "", want: pagination.Params{Page: 1, Limit: 20}},
		{name: "explicit", query: "?page=3&limit=50", want: pagination.Params{Page: 3, Limit: 50}},
		{name: "page zero", query: "?page=0", wantErr: true},
		{name: "page not a number", query: "?page=abc", wantErr: true},
		{name: "limit above max", query: "?limit=101", wantErr: true},
		{name: "limit negative", query: "?limit=-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/dashboard/summaries"+tt.query, nil)
			got, err := pagination.ParseQueryParams(r, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculations(t *testing.T) {
	assert.Equal(t, 0, pagination.CalculateOffset(1, 20))
	assert.Equal(t, 40, pagination.CalculateOffset(3, 20))

	assert.Equal(t, 1, pagination.CalculateTotalPages(0, 20))
	assert.Equal(t, 1, pagination.CalculateTotalPages(20, 20))
	assert.Equal(t, 2, pagination.CalculateTotalPages(21, 20))

	md := pagination.NewMetadata(pagination.Params{Page: 2, Limit: 10}, 35)
	assert.Equal(t, pagination.Metadata{Total: 35, Page: 2, Limit: 10, TotalPages: 4}, md)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "10")
	t.Setenv("PAGINATION_MAX_LIMIT", "50")
	assert.Equal(t, pagination.Config{DefaultPage: 1, DefaultLimit: 10, MaxLimit: 50}, pagination.LoadFromEnv())

	t.Setenv("PAGINATION_DEFAULT_LIMIT", "500")
	assert.Equal(t, 20, pagination.LoadFromEnv().DefaultLimit)
}

func TestNewResponse_NilDataBecomesEmpty(t *testing.T) {
	resp := pagination.NewResponse[string](nil, pagination.Metadata{Page: 1})
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}
