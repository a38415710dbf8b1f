package timeline

// Move returns a copy of ids with the element at from moved to position to;
// the elements in between shift by one. Out-of-range indices return an
// unchanged copy.
func Move(ids []string, from, to int) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) || from == to {
		return out
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// SortChange is one row whose sort order must be rewritten.
type SortChange struct {
	ID        string
	SortOrder int
}

// SortChanges compares a new order against the current sort orders and returns
// the rows whose position no longer matches, with sort orders rewritten 0..n-1.
func SortChanges(ordered []string, current map[string]int) []SortChange {
	var changes []SortChange
	for i, id := range ordered {
		if cur, ok := current[id]; !ok || cur != i {
			changes = append(changes, SortChange{ID: id, SortOrder: i})
		}
	}
	return changes
}
