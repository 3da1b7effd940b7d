package reservation

import "tavolo-be/internal/table"

// mergeTables walks the caller's preferred tables in order and
// accumulates capacity until the party fits, returning the allocation
// set. Tables past the threshold are left untouched.
//
// requested carries the original id order; loaded holds the rows found
// for those ids (also in request order). A requested id with no row fails
// the whole request, as does any table that is not AVAILABLE, and a walk
// that exhausts the list below the threshold.
func mergeTables(requested []uint, loaded []*table.Table, numberOfPeople int) ([]*table.Table, error) {
	byID := make(map[uint]*table.Table, len(loaded))
	for _, t := range loaded {
		byID[t.ID] = t
	}

	var allocation []*table.Table
	totalCapacity := 0

	for _, id := range requested {
		t, ok := byID[id]
		if !ok {
			return nil, ErrTableNotFound
		}
		if t.Status != table.StatusAvailable {
			return nil, ErrTableUnavailable
		}

		allocation = append(allocation, t)
		totalCapacity += t.Capacity
		if totalCapacity >= numberOfPeople {
			return allocation, nil
		}
	}

	return nil, ErrInsufficientCapacity
}
