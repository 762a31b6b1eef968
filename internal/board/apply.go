package board

// Item is the minimal view of a task the in-memory applier needs.
// Clients keep their cached tasks in this shape to reorder
// optimistically before the server confirms.
type Item struct {
	ID       int64
	Bucket   Bucket
	Position int
}

// ApplyShift applies s to every item in place. The ranges produced by
// PlanMove never cover the mover's own slot, so shifting all items is
// equivalent to the server's bulk UPDATE.
func ApplyShift(items []Item, s Shift) {
	for i := range items {
		if items[i].Bucket != s.Bucket {
			continue
		}
		if !s.Contains(items[i].Position) {
			continue
		}
		items[i].Position += s.Delta
	}
}

// ApplyMove applies a move plan to items in place, mirroring exactly
// what the server persists: sibling shifts first, then the mover's
// final placement.
func ApplyMove(items []Item, id int64, plan Plan) {
	for _, s := range plan.Shifts {
		ApplyShift(items, s)
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Bucket = plan.Target
			items[i].Position = plan.Position
			return
		}
	}
}

// ApplyRemove deletes the item with the given id and compacts its
// bucket, returning the shortened slice.
func ApplyRemove(items []Item, id int64) []Item {
	for i := range items {
		if items[i].ID != id {
			continue
		}
		shift := PlanRemove(items[i].Bucket, items[i].Position)
		items = append(items[:i], items[i+1:]...)
		ApplyShift(items, shift)
		return items
	}
	return items
}
