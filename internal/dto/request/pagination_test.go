package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequest(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", wantOffset: 0, wantLimit: 10},
		{name: "first page", page: 1, perPage: 20, wantOffset: 0, wantLimit: 20},
		{name: "third page", page: 3, perPage: 20, wantOffset: 40, wantLimit: 20},
		{name: "per_page capped", page: 2, perPage: 500, wantOffset: 100, wantLimit: 100},
		{name: "negative page", page: -1, perPage: 10, wantOffset: 0, wantLimit: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := PaginatedRequest{Page: tc.page, PerPage: tc.perPage}
			assert.Equal(t, tc.wantOffset, p.Offset())
			assert.Equal(t, tc.wantLimit, p.Limit())
		})
	}
}
