package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ycetindil/attrio/internal/domain"
)

type itemRepository struct {
	db Querier
}

// NewItemRepository creates the Postgres-backed item repository.
func NewItemRepository(db Querier) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, "values", tags, created_at, updated_at`

func (r *itemRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	values, tags, err := itemJSONB(item)
	if err != nil {
		return domain.Item{}, err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO items (id, name, "values", tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		item.ID, item.Name, values, tags, item.CreatedAt, item.UpdatedAt,
	)
	created, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("create item: %w", err)
	}
	return created, nil
}

func (r *itemRepository) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	values, tags, err := itemJSONB(item)
	if err != nil {
		return domain.Item{}, err
	}
	row := r.db.QueryRow(ctx, `
		UPDATE items
		SET name = $2, "values" = $3, tags = $4, updated_at = $5
		WHERE id = $1
		RETURNING `+itemColumns,
		item.ID, item.Name, values, tags, time.Now(),
	)
	updated, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Item{}, ErrNotFound
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("update item: %w", err)
	}
	return updated, nil
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Item{}, ErrNotFound
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func itemJSONB(item domain.Item) (values, tags []byte, err error) {
	if item.Values == nil {
		values = []byte("{}")
	} else if values, err = json.Marshal(item.Values); err != nil {
		return nil, nil, fmt.Errorf("marshal values: %w", err)
	}
	if tags, err = json.Marshal(item.Tags); err != nil {
		return nil, nil, fmt.Errorf("marshal tags: %w", err)
	}
	return values, tags, nil
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var (
		item   domain.Item
		values []byte
		tags   []byte
	)
	if err := row.Scan(&item.ID, &item.Name, &values, &tags, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return domain.Item{}, err
	}
	if len(values) > 0 {
		if err := json.Unmarshal(values, &item.Values); err != nil {
			return domain.Item{}, fmt.Errorf("decode values: %w", err)
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return domain.Item{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	return item, nil
}
