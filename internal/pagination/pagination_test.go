package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, 0, 1, DefaultPerPage},
		{"negative page clamps to first", -3, 10, 1, 10},
		{"explicit values kept", 4, 25, 4, 25},
		{"per page capped", 1, 1000, 1, MaxPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantPerPage, req.PerPage)
		})
	}
}

func TestRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, NewRequest(1, 10).Offset())
	assert.Equal(t, 20, NewRequest(3, 10).Offset())
	assert.Equal(t, 10, NewRequest(3, 10).Limit())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 34, TotalPages(335, 10))
}

func TestDescribe_BeyondLastPage(t *testing.T) {
	req := NewRequest(7, 10)
	p := req.Describe(25)

	assert.Equal(t, 7, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalItems)
	assert.Equal(t, 10, p.ItemsPerPage)
}

func TestNewPage_NilItemsEncodeAsEmptyArray(t *testing.T) {
	page := NewPage[string](nil, NewRequest(2, 5), 3)

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"pagination":{"current_page":2,"total_pages":1,"total_items":3,"items_per_page":5}}`, string(data))
}
