// Package board computes the position shifts that keep every
// (category, status) bucket densely ordered: positions form the
// contiguous sequence 0..n-1, no gaps, no duplicates.
//
// The package is pure — it plans shifts, it never touches storage.
// The server executes plans as SQL range updates inside a transaction
// and clients apply the same plans to their local cache, so both sides
// share one ordering implementation.
package board

// Bucket identifies a kanban column: the tasks sharing one
// (category, status) pair.
type Bucket struct {
	Category string
	Status   string
}

// Shift moves every position in [From, To] of a bucket by Delta.
// To < 0 means the range is unbounded above.
type Shift struct {
	Bucket Bucket
	From   int
	To     int
	Delta  int
}

// Contains reports whether a position in the shift's bucket falls
// inside the shifted range.
func (s Shift) Contains(pos int) bool {
	if pos < s.From {
		return false
	}
	return s.To < 0 || pos <= s.To
}

// Plan is the full effect of a move: the sibling shifts plus the
// mover's final bucket and position.
type Plan struct {
	Shifts   []Shift
	Target   Bucket
	Position int
}

// AppendPos returns the position for a task appended to a bucket that
// currently holds size tasks. With dense ordering this equals
// 1 + max(position), or 0 for an empty bucket.
func AppendPos(size int) int {
	return size
}

// PlanRemove returns the shift that closes the gap left by removing
// the task at pos from bucket b.
func PlanRemove(b Bucket, pos int) Shift {
	return Shift{Bucket: b, From: pos + 1, To: -1, Delta: -1}
}

// PlanMove computes the shifts for moving a task from position oldPos
// in bucket old to position reqPos in bucket target. targetSize is the
// current number of tasks in the target bucket, counting the mover
// itself when old == target.
//
// reqPos is clamped to the end of the target bucket rather than
// letting an oversized index punch a gap into the ordering. A
// same-bucket move to the task's own position yields an empty plan.
func PlanMove(old Bucket, oldPos int, target Bucket, reqPos, targetSize int) Plan {
	same := old == target

	maxPos := targetSize
	if same {
		maxPos = targetSize - 1
	}
	if maxPos < 0 {
		maxPos = 0
	}

	pos := reqPos
	if pos < 0 {
		pos = 0
	}
	if pos > maxPos {
		pos = maxPos
	}

	plan := Plan{Target: target, Position: pos}

	if same {
		switch {
		case oldPos < pos:
			// Moved later: siblings in (oldPos, pos] slide left
			// into the vacated slot.
			plan.Shifts = []Shift{{Bucket: target, From: oldPos + 1, To: pos, Delta: -1}}
		case oldPos > pos:
			// Moved earlier: siblings in [pos, oldPos) slide right
			// to open the slot.
			plan.Shifts = []Shift{{Bucket: target, From: pos, To: oldPos - 1, Delta: +1}}
		}
		return plan
	}

	plan.Shifts = []Shift{
		PlanRemove(old, oldPos),
		{Bucket: target, From: pos, To: -1, Delta: +1},
	}
	return plan
}
