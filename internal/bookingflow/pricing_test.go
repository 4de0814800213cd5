package bookingflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cleaning-booking/internal/data/entity"
)

var testOptions = []entity.ServiceOption{
	{ID: 1, Title: "Мытьё окон", Price: 500},
	{ID: 2, Title: "Химчистка дивана", Price: 1500},
	{ID: 3, Title: "Глажка белья", Price: 300},
}

func TestComputeTotalBaseOnly(t *testing.T) {
	assert.Equal(t, 2000.0, ComputeTotal(2000, 1, nil, testOptions))
	assert.Equal(t, 4000.0, ComputeTotal(2000, 2, nil, testOptions))
}

func TestComputeTotalWithOptions(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		selected []int64
		want     float64
	}{
		{"one option", 1, []int64{1}, 2500},
		{"two options", 1, []int64{1, 2}, 4000},
		{"order does not matter", 1, []int64{2, 1}, 4000},
		{"options scale with quantity", 2, []int64{1}, 5000},
		{"all options", 1, []int64{1, 2, 3}, 4300},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(2000, tt.quantity, tt.selected, testOptions)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeTotalUnknownOptionIgnored(t *testing.T) {
	// ids with no matching option contribute nothing
	got := ComputeTotal(100, 1, []int64{999}, testOptions)
	assert.Equal(t, 100.0, got)
}

func TestComputeTotalIdempotent(t *testing.T) {
	selected := []int64{1, 3}
	first := ComputeTotal(2000, 1, selected, testOptions)
	second := ComputeTotal(2000, 1, selected, testOptions)
	assert.Equal(t, first, second)
}

func TestResolveOptionsCatalogOrder(t *testing.T) {
	resolved := ResolveOptions([]int64{3, 1}, testOptions)

	assert.Equal(t, []ResolvedOption{
		{ID: 1, Title: "Мытьё окон", Price: 500},
		{ID: 3, Title: "Глажка белья", Price: 300},
	}, resolved)
}

func TestResolveOptionsUnknownDropped(t *testing.T) {
	resolved := ResolveOptions([]int64{999, 2}, testOptions)

	assert.Equal(t, []ResolvedOption{
		{ID: 2, Title: "Химчистка дивана", Price: 1500},
	}, resolved)
}

func TestResolveOptionsEmpty(t *testing.T) {
	assert.Empty(t, ResolveOptions(nil, testOptions))
}
