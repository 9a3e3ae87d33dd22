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

type attributeRepository struct {
	db Querier
}

// NewAttributeRepository creates the Postgres-backed attribute repository.
func NewAttributeRepository(db Querier) AttributeRepository {
	return &attributeRepository{db: db}
}

const attributeColumns = `id, group_id, key, name, type, required, is_unique, options, default_value, validation, tags, created_at, updated_at`

func (r *attributeRepository) Create(ctx context.Context, attr domain.Attribute) (domain.Attribute, error) {
	options, defaultValue, validation, tags, err := attributeJSONB(attr)
	if err != nil {
		return domain.Attribute{}, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO attributes (id, group_id, key, name, type, required, is_unique, options, default_value, validation, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+attributeColumns,
		attr.ID, attr.GroupID, attr.Key, attr.Name, string(attr.Type), attr.Required, attr.Unique,
		options, defaultValue, validation, tags, attr.CreatedAt, attr.UpdatedAt,
	)
	created, err := scanAttribute(row)
	if err != nil {
		return domain.Attribute{}, fmt.Errorf("create attribute: %w", err)
	}
	return created, nil
}

func (r *attributeRepository) Update(ctx context.Context, attr domain.Attribute) (domain.Attribute, error) {
	options, defaultValue, validation, tags, err := attributeJSONB(attr)
	if err != nil {
		return domain.Attribute{}, err
	}

	row := r.db.QueryRow(ctx, `
		UPDATE attributes
		SET group_id = $2, name = $3, type = $4, required = $5, is_unique = $6,
		    options = $7, default_value = $8, validation = $9, tags = $10, updated_at = $11
		WHERE id = $1
		RETURNING `+attributeColumns,
		attr.ID, attr.GroupID, attr.Name, string(attr.Type), attr.Required, attr.Unique,
		options, defaultValue, validation, tags, time.Now(),
	)
	updated, err := scanAttribute(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Attribute{}, ErrNotFound
	}
	if err != nil {
		return domain.Attribute{}, fmt.Errorf("update attribute: %w", err)
	}
	return updated, nil
}

func (r *attributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM attributes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attribute: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *attributeRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Attribute, error) {
	row := r.db.QueryRow(ctx, `SELECT `+attributeColumns+` FROM attributes WHERE id = $1`, id)
	attr, err := scanAttribute(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Attribute{}, ErrNotFound
	}
	if err != nil {
		return domain.Attribute{}, fmt.Errorf("get attribute: %w", err)
	}
	return attr, nil
}

func (r *attributeRepository) GetByKey(ctx context.Context, key string) (domain.Attribute, error) {
	row := r.db.QueryRow(ctx, `SELECT `+attributeColumns+` FROM attributes WHERE key = $1`, key)
	attr, err := scanAttribute(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Attribute{}, ErrNotFound
	}
	if err != nil {
		return domain.Attribute{}, fmt.Errorf("get attribute by key: %w", err)
	}
	return attr, nil
}

func (r *attributeRepository) List(ctx context.Context) ([]domain.Attribute, error) {
	rows, err := r.db.Query(ctx, `SELECT `+attributeColumns+` FROM attributes ORDER BY created_at, key`)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	defer rows.Close()

	var attrs []domain.Attribute
	for rows.Next() {
		attr, err := scanAttribute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		attrs = append(attrs, attr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	return attrs, nil
}

func attributeJSONB(attr domain.Attribute) (options, defaultValue, validation, tags []byte, err error) {
	if options, err = json.Marshal(attr.Options); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal options: %w", err)
	}
	if attr.DefaultValue != nil {
		if defaultValue, err = json.Marshal(attr.DefaultValue); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal default value: %w", err)
		}
	}
	if validation, err = json.Marshal(attr.Validation); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal validation: %w", err)
	}
	if tags, err = json.Marshal(attr.Tags); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal tags: %w", err)
	}
	return options, defaultValue, validation, tags, nil
}

func scanAttribute(row pgx.Row) (domain.Attribute, error) {
	var (
		attr         domain.Attribute
		attrType     string
		options      []byte
		defaultValue []byte
		validation   []byte
		tags         []byte
	)
	err := row.Scan(
		&attr.ID, &attr.GroupID, &attr.Key, &attr.Name, &attrType, &attr.Required, &attr.Unique,
		&options, &defaultValue, &validation, &tags, &attr.CreatedAt, &attr.UpdatedAt,
	)
	if err != nil {
		return domain.Attribute{}, err
	}
	attr.Type = domain.AttributeType(attrType)

	if len(options) > 0 {
		if err := json.Unmarshal(options, &attr.Options); err != nil {
			return domain.Attribute{}, fmt.Errorf("decode options: %w", err)
		}
	}
	if len(defaultValue) > 0 {
		if err := json.Unmarshal(defaultValue, &attr.DefaultValue); err != nil {
			return domain.Attribute{}, fmt.Errorf("decode default value: %w", err)
		}
	}
	if len(validation) > 0 {
		if err := json.Unmarshal(validation, &attr.Validation); err != nil {
			return domain.Attribute{}, fmt.Errorf("decode validation: %w", err)
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &attr.Tags); err != nil {
			return domain.Attribute{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	return attr, nil
}
