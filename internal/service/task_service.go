package service

import (
	"database/sql"
	"strings"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/board"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/policy"
	"github.com/taskboard/taskboard/internal/repository"
)

// TaskService is the position manager: every mutation that touches a
// (category, status) bucket runs inside one transaction so the dense
// ordering survives concurrent moves, creates, and deletes.
type TaskService struct {
	db    *sql.DB
	tasks *repository.TaskRepository
}

func NewTaskService(db *sql.DB, tasks *repository.TaskRepository) *TaskService {
	return &TaskService{db: db, tasks: tasks}
}

func bucketOf(t *models.Task) board.Bucket {
	return board.Bucket{Category: t.Category, Status: string(t.Status)}
}

// List returns the caller's tasks, or every task for managers and
// admins.
func (s *TaskService) List(caller policy.Caller) ([]models.Task, error) {
	return s.tasks.List(caller.ID, policy.IsPrivileged(caller))
}

// Get returns one task. Readers only see their own tasks; anyone
// else's task is reported as missing, not forbidden.
func (s *TaskService) Get(caller policy.Caller, id int64) (*models.Task, error) {
	task, err := s.tasks.Get(s.db, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsPrivileged(caller) && task.UserID != caller.ID {
		return nil, apperr.New(apperr.ErrNotFound, "task not found")
	}
	return task, nil
}

type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	Status      models.Status
	UserID      int64 // 0 means the caller
}

// Create appends a task to the end of its bucket.
func (s *TaskService) Create(caller policy.Caller, in CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.New(apperr.ErrValidation, "title is required")
	}

	status := in.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !status.Valid() {
		return nil, apperr.New(apperr.ErrValidation, "invalid status %q", in.Status)
	}

	category := in.Category
	if category == "" {
		category = models.DefaultCategory
	}

	ownerID := in.UserID
	if ownerID == 0 {
		ownerID = caller.ID
	}
	if !policy.CanManageTasks(caller, ownerID) {
		return nil, apperr.New(apperr.ErrPermissionDenied, "you can only manage your own tasks")
	}

	var id int64
	err := repository.WithTx(s.db, func(tx *sql.Tx) error {
		b := board.Bucket{Category: category, Status: string(status)}
		size, err := s.tasks.BucketSize(tx, b)
		if err != nil {
			return err
		}

		task := &models.Task{
			Title:       in.Title,
			Description: in.Description,
			Completed:   status == models.StatusDone,
			UserID:      ownerID,
			Category:    category,
			Status:      status,
			Position:    board.AppendPos(size),
		}
		id, err = s.tasks.Insert(tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.tasks.Get(s.db, id)
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Category    *string
	Status      *string
	UserID      *int64
}

func (in UpdateTaskInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Completed == nil &&
		in.Category == nil && in.Status == nil && in.UserID == nil
}

// Update mutates task fields, keeping completed and status in sync in
// both directions. A status or category change relocates the task to
// the end of its new bucket so both buckets stay contiguous.
func (s *TaskService) Update(caller policy.Caller, id int64, in UpdateTaskInput) (*models.Task, error) {
	if in.empty() {
		return nil, apperr.New(apperr.ErrValidation, "no fields to update")
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.New(apperr.ErrValidation, "title is required")
	}

	err := repository.WithTx(s.db, func(tx *sql.Tx) error {
		task, err := s.tasks.Get(tx, id)
		if err != nil {
			return err
		}
		if !policy.CanManageTasks(caller, task.UserID) {
			return apperr.New(apperr.ErrPermissionDenied, "permission denied")
		}

		targetStatus := task.Status
		switch {
		case in.Status != nil:
			st := models.Status(*in.Status)
			if !st.Valid() {
				return apperr.New(apperr.ErrValidation, "invalid status %q", *in.Status)
			}
			targetStatus = st
		case in.Completed != nil:
			// Completed toggled without an explicit status: done when
			// set, back to todo when a done task is reopened.
			if *in.Completed {
				targetStatus = models.StatusDone
			} else if task.Status == models.StatusDone {
				targetStatus = models.StatusTodo
			}
		}

		targetCategory := task.Category
		if in.Category != nil && *in.Category != "" {
			targetCategory = *in.Category
		}

		completed := targetStatus == models.StatusDone
		upd := repository.TaskUpdate{
			Title:       in.Title,
			Description: in.Description,
			Completed:   &completed,
		}
		// Only privileged callers may reassign ownership.
		if in.UserID != nil && policy.IsPrivileged(caller) {
			upd.UserID = in.UserID
		}
		if err := s.tasks.Update(tx, id, upd); err != nil {
			return err
		}

		old := bucketOf(task)
		target := board.Bucket{Category: targetCategory, Status: string(targetStatus)}
		if target == old {
			return nil
		}

		size, err := s.tasks.BucketSize(tx, target)
		if err != nil {
			return err
		}
		plan := board.PlanMove(old, task.Position, target, size, size)
		for _, shift := range plan.Shifts {
			if err := s.tasks.ApplyShift(tx, shift); err != nil {
				return err
			}
		}
		return s.tasks.Place(tx, id, target, plan.Position, completed)
	})
	if err != nil {
		return nil, err
	}

	return s.tasks.Get(s.db, id)
}

// Delete removes a task and compacts the positions it leaves behind.
func (s *TaskService) Delete(caller policy.Caller, id int64) error {
	return repository.WithTx(s.db, func(tx *sql.Tx) error {
		task, err := s.tasks.Get(tx, id)
		if err != nil {
			return err
		}
		if !policy.CanManageTasks(caller, task.UserID) {
			return apperr.New(apperr.ErrPermissionDenied, "permission denied")
		}

		shift := board.PlanRemove(bucketOf(task), task.Position)
		if err := s.tasks.ApplyShift(tx, shift); err != nil {
			return err
		}
		return s.tasks.Delete(tx, id)
	})
}

type MoveInput struct {
	TaskID      int64
	NewStatus   *string
	NewPosition *int
	NewCategory *string
}

// Move relocates a task to a new bucket and/or position. The read,
// the sibling shifts, and the final placement commit atomically; a
// denied or missing task aborts with zero position changes.
func (s *TaskService) Move(caller policy.Caller, in MoveInput) error {
	if in.NewPosition == nil {
		return apperr.New(apperr.ErrValidation, "newPosition is required")
	}
	if *in.NewPosition < 0 {
		return apperr.New(apperr.ErrValidation, "newPosition must be >= 0")
	}

	return repository.WithTx(s.db, func(tx *sql.Tx) error {
		task, err := s.tasks.Get(tx, in.TaskID)
		if err != nil {
			return err
		}
		if !policy.CanManageTasks(caller, task.UserID) {
			return apperr.New(apperr.ErrPermissionDenied, "permission denied")
		}

		targetStatus := task.Status
		if in.NewStatus != nil && *in.NewStatus != "" {
			st := models.Status(*in.NewStatus)
			if !st.Valid() {
				return apperr.New(apperr.ErrValidation, "invalid status %q", *in.NewStatus)
			}
			targetStatus = st
		}

		targetCategory := task.Category
		if in.NewCategory != nil && *in.NewCategory != "" {
			targetCategory = *in.NewCategory
		}

		old := bucketOf(task)
		target := board.Bucket{Category: targetCategory, Status: string(targetStatus)}

		size, err := s.tasks.BucketSize(tx, target)
		if err != nil {
			return err
		}

		plan := board.PlanMove(old, task.Position, target, *in.NewPosition, size)
		for _, shift := range plan.Shifts {
			if err := s.tasks.ApplyShift(tx, shift); err != nil {
				return err
			}
		}
		return s.tasks.Place(tx, task.ID, target, plan.Position, targetStatus == models.StatusDone)
	})
}
