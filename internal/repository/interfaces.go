// Package repository persists the catalog and its audit trail in Postgres.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ycetindil/attrio/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Querier is the subset of pgxpool.Pool the repositories need. pgxmock
// satisfies it in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AttributeRepository stores attribute definitions.
type AttributeRepository interface {
	Create(ctx context.Context, attr domain.Attribute) (domain.Attribute, error)
	Update(ctx context.Context, attr domain.Attribute) (domain.Attribute, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Attribute, error)
	GetByKey(ctx context.Context, key string) (domain.Attribute, error)
	List(ctx context.Context) ([]domain.Attribute, error)
}

// AttributeGroupRepository stores attribute groups.
type AttributeGroupRepository interface {
	Create(ctx context.Context, group domain.AttributeGroup) (domain.AttributeGroup, error)
	Update(ctx context.Context, group domain.AttributeGroup) (domain.AttributeGroup, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.AttributeGroup, error)
	List(ctx context.Context) ([]domain.AttributeGroup, error)
}

// ItemRepository stores catalog items.
type ItemRepository interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
}

// HistoryRepository stores and queries immutable audit entries. List returns
// one page plus the total matching count before pagination.
type HistoryRepository interface {
	Insert(ctx context.Context, entry domain.HistoryEntry) error
	List(ctx context.Context, query domain.HistoryQuery) ([]domain.HistoryEntry, int, error)
}
