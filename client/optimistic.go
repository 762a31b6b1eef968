package client

import (
	"github.com/taskboard/taskboard/internal/board"
	"github.com/taskboard/taskboard/internal/models"
)

// BoardItems projects tasks into the shape the position planner works
// on.
func BoardItems(tasks []models.Task) []board.Item {
	items := make([]board.Item, len(tasks))
	for i, t := range tasks {
		items[i] = board.Item{
			ID:       t.ID,
			Bucket:   board.Bucket{Category: t.Category, Status: string(t.Status)},
			Position: t.Position,
		}
	}
	return items
}

// MoveLocal applies a move to a cached board in place and returns the
// position the task ends up at, which is the request position clamped
// the same way the server clamps it. Callers apply this before
// MoveTask and refetch if the server rejects the move.
func MoveLocal(items []board.Item, taskID int64, target board.Bucket, newPosition int) (int, bool) {
	var mover *board.Item
	targetSize := 0
	for i := range items {
		if items[i].ID == taskID {
			mover = &items[i]
		}
		if items[i].Bucket == target {
			targetSize++
		}
	}
	if mover == nil {
		return 0, false
	}

	plan := board.PlanMove(mover.Bucket, mover.Position, target, newPosition, targetSize)
	board.ApplyMove(items, taskID, plan)
	return plan.Position, true
}
