package cli

import (
	"context"
	"fmt"

	"github.com/s1natex/todos-cli-GO/internal/tasks"
)

// Dispatch runs exactly one repository call for cmd and renders the result.
func Dispatch(ctx context.Context, repo tasks.Repository, cmd Command, r *Renderer) error {
	switch cmd.Kind {
	case KindNoOp:
		return nil

	case KindAdd:
		t, err := repo.Add(ctx, cmd.Description)
		if err != nil {
			return fmt.Errorf("failed to add todo: %w", err)
		}
		r.Added(t)

	case KindList:
		todos, err := repo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}
		r.List(todos)

	case KindComplete:
		t, err := repo.Update(ctx, cmd.ID, true)
		if err != nil {
			return fmt.Errorf("failed to complete todo: %w", err)
		}
		r.Completed(t)

	case KindReopen:
		t, err := repo.Update(ctx, cmd.ID, false)
		if err != nil {
			return fmt.Errorf("failed to reopen todo: %w", err)
		}
		r.Reopened(t)

	case KindDelete:
		if err := repo.Delete(ctx, cmd.ID); err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}
		r.Deleted(cmd.ID)

	default:
		return fmt.Errorf("unknown command %s", cmd.Kind)
	}
	return nil
}
