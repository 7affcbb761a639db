package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// credentialRepo keeps the login in a single-row table.
type credentialRepo struct {
	db *sql.DB
}

func (r *credentialRepo) Save(ctx context.Context, c Credentials) error {
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now()
	}
	query, args := builder().
		Insert("credentials").
		Columns("id", "email", "token", "saved_at").
		Values(1, c.Email, c.Token, toMillis(c.SavedAt)).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (r *credentialRepo) Load(ctx context.Context) (Credentials, error) {
	query, args := builder().
		Select("email", "token", "saved_at").
		From(entsql.Table("credentials")).
		Where(entsql.EQ("id", 1)).
		Query()

	var c Credentials
	var savedAt int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.Email, &c.Token, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, ErrNoCredentials
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	c.SavedAt = fromMillis(savedAt)
	return c, nil
}

func (r *credentialRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete("credentials").Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
