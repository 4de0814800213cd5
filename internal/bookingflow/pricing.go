package bookingflow

import "cleaning-booking/internal/data/entity"

// ResolvedOption is a priced snapshot of a selected extra, in catalog order.
type ResolvedOption struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// ComputeTotal prices a booking: base price times quantity plus every
// selected option times quantity. Selected ids with no matching option
// contribute nothing. Selection order does not matter and duplicates are
// impossible because selections are kept as a set.
func ComputeTotal(basePrice float64, quantity int, selected []int64, options []entity.ServiceOption) float64 {
	if quantity < 1 {
		quantity = 1
	}

	total := basePrice * float64(quantity)

	chosen := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	for _, opt := range options {
		if _, ok := chosen[opt.ID]; ok {
			total += opt.Price * float64(quantity)
		}
	}

	return total
}

// ResolveOptions maps selected ids to option snapshots, ordered as they
// appear in the catalog list. Unknown ids are dropped.
func ResolveOptions(selected []int64, options []entity.ServiceOption) []ResolvedOption {
	chosen := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	resolved := make([]ResolvedOption, 0, len(selected))
	for _, opt := range options {
		if _, ok := chosen[opt.ID]; ok {
			resolved = append(resolved, ResolvedOption{
				ID:    opt.ID,
				Title: opt.Title,
				Price: opt.Price,
			})
		}
	}

	return resolved
}
