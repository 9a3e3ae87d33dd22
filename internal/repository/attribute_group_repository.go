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

type attributeGroupRepository struct {
	db Querier
}

// NewAttributeGroupRepository creates the Postgres-backed group repository.
func NewAttributeGroupRepository(db Querier) AttributeGroupRepository {
	return &attributeGroupRepository{db: db}
}

const groupColumns = `id, name, description, tags, created_at, updated_at`

func (r *attributeGroupRepository) Create(ctx context.Context, group domain.AttributeGroup) (domain.AttributeGroup, error) {
	tags, err := json.Marshal(group.Tags)
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("marshal tags: %w", err)
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO attribute_groups (id, name, description, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+groupColumns,
		group.ID, group.Name, group.Description, tags, group.CreatedAt, group.UpdatedAt,
	)
	created, err := scanGroup(row)
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("create attribute group: %w", err)
	}
	return created, nil
}

func (r *attributeGroupRepository) Update(ctx context.Context, group domain.AttributeGroup) (domain.AttributeGroup, error) {
	tags, err := json.Marshal(group.Tags)
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("marshal tags: %w", err)
	}
	row := r.db.QueryRow(ctx, `
		UPDATE attribute_groups
		SET name = $2, description = $3, tags = $4, updated_at = $5
		WHERE id = $1
		RETURNING `+groupColumns,
		group.ID, group.Name, group.Description, tags, time.Now(),
	)
	updated, err := scanGroup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AttributeGroup{}, ErrNotFound
	}
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("update attribute group: %w", err)
	}
	return updated, nil
}

func (r *attributeGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM attribute_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attribute group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *attributeGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.AttributeGroup, error) {
	row := r.db.QueryRow(ctx, `SELECT `+groupColumns+` FROM attribute_groups WHERE id = $1`, id)
	group, err := scanGroup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AttributeGroup{}, ErrNotFound
	}
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("get attribute group: %w", err)
	}
	return group, nil
}

func (r *attributeGroupRepository) List(ctx context.Context) ([]domain.AttributeGroup, error) {
	rows, err := r.db.Query(ctx, `SELECT `+groupColumns+` FROM attribute_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list attribute groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.AttributeGroup
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attribute group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attribute groups: %w", err)
	}
	return groups, nil
}

func scanGroup(row pgx.Row) (domain.AttributeGroup, error) {
	var (
		group domain.AttributeGroup
		tags  []byte
	)
	if err := row.Scan(&group.ID, &group.Name, &group.Description, &tags, &group.CreatedAt, &group.UpdatedAt); err != nil {
		return domain.AttributeGroup{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &group.Tags); err != nil {
			return domain.AttributeGroup{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	return group, nil
}
