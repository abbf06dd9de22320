// Package middleware wraps a tasks.Repository the way HTTP middleware wraps a
// handler: each decorator observes an operation and delegates to the next.
package middleware

import (
	"errors"

	"github.com/s1natex/todos-cli-GO/internal/tasks"
)

type Middleware func(tasks.Repository) tasks.Repository

// Chain applies mws so that the first one is the outermost.
func Chain(repo tasks.Repository, mws ...Middleware) tasks.Repository {
	for i := len(mws) - 1; i >= 0; i-- {
		repo = mws[i](repo)
	}
	return repo
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, tasks.ErrNotFound):
		return "not_found"
	case errors.Is(err, tasks.ErrDescriptionRequired):
		return "invalid"
	default:
		return "error"
	}
}
