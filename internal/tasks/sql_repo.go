package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLRepo persists todos in a relational database through database/sql.
type SQLRepo struct {
	db      *sqlx.DB
	dialect dialect
}

// Open connects to the store and makes sure the todos table exists. It is
// safe to call on every process start.
func Open(ctx context.Context, driver, dsn string) (*SQLRepo, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	dsn, err = d.normalize(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	db, err := sqlx.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrConnection, d.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrConnection, d.driver, err)
	}

	r := &SQLRepo{db: db, dialect: d}
	if err := r.ApplyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create schema: %w", ErrConnection, err)
	}
	return r, nil
}

func (r *SQLRepo) Close() error { return r.db.Close() }

// ApplyMigrations ensures schema exists
func (r *SQLRepo) ApplyMigrations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, r.dialect.createTable)
	return err
}

// Add implements Repository.Add with basic validation
func (r *SQLRepo) Add(ctx context.Context, description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, ErrDescriptionRequired
	}
	t := Task{Description: description, Status: false}

	if r.dialect.returning {
		q := r.db.Rebind(`INSERT INTO todos (description, status) VALUES (?, ?) RETURNING id`)
		if err := r.db.GetContext(ctx, &t.ID, q, description, false); err != nil {
			return Task{}, fmt.Errorf("%w: insert todo: %w", ErrWrite, err)
		}
		return t, nil
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO todos (description, status) VALUES (?, ?)`), description, false)
	if err != nil {
		return Task{}, fmt.Errorf("%w: insert todo: %w", ErrWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Task{}, fmt.Errorf("%w: insert todo: %w", ErrWrite, err)
	}
	t.ID = id
	return t, nil
}

// List implements Repository.List
func (r *SQLRepo) List(ctx context.Context) ([]Task, error) {
	out := make([]Task, 0)
	if err := r.db.SelectContext(ctx, &out, `
		SELECT id, description, status
		FROM todos
		ORDER BY id ASC
	`); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return out, nil
}

// Update sets the status of an existing todo. A missing id is ErrNotFound.
func (r *SQLRepo) Update(ctx context.Context, id int64, status bool) (Task, error) {
	var t Task
	if r.dialect.returning {
		q := r.db.Rebind(`UPDATE todos SET status = ? WHERE id = ? RETURNING id, description, status`)
		err := r.db.GetContext(ctx, &t, q, status, id)
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		if err != nil {
			return Task{}, fmt.Errorf("%w: update todo %d: %w", ErrWrite, id, err)
		}
		return t, nil
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE todos SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return Task{}, fmt.Errorf("%w: update todo %d: %w", ErrWrite, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Task{}, fmt.Errorf("%w: update todo %d: %w", ErrWrite, id, err)
	}
	if n == 0 {
		return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	q := r.db.Rebind(`SELECT id, description, status FROM todos WHERE id = ?`)
	if err := r.db.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return Task{}, fmt.Errorf("read todo %d: %w", id, err)
	}
	return t, nil
}

// Delete removes the todo if present. Deleting a missing id is not an error.
func (r *SQLRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM todos WHERE id = ?`), id); err != nil {
		return fmt.Errorf("%w: delete todo %d: %w", ErrWrite, id, err)
	}
	return nil
}
