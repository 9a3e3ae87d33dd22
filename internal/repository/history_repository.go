package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ycetindil/attrio/internal/domain"
)

type historyRepository struct {
	db Querier
}

// NewHistoryRepository creates the Postgres-backed history repository.
func NewHistoryRepository(db Querier) HistoryRepository {
	return &historyRepository{db: db}
}

const historyColumns = `id, tenant_id, entity_type, entity_id, action, ts, actor, summary, changes, tags, metadata, comment`

func (r *historyRepository) Insert(ctx context.Context, entry domain.HistoryEntry) error {
	actor, changes, tags, metadata, err := historyJSONB(entry)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO history_entries (id, tenant_id, entity_type, entity_id, action, ts, actor, summary, changes, tags, metadata, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		entry.ID, entry.TenantID, entry.EntityType, entry.EntityID, string(entry.Action), entry.Timestamp,
		actor, entry.Summary, changes, tags, metadata, entry.Comment,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// List applies the server-side filters: entity coordinates, action, an actor
// substring over the actor document, and a search substring over the comment
// and changes documents. Pagination happens in SQL; the total counts the
// filtered set before LIMIT/OFFSET.
func (r *historyRepository) List(ctx context.Context, query domain.HistoryQuery) ([]domain.HistoryEntry, int, error) {
	query = query.Normalized()

	where := []string{"entity_type = $1", "entity_id = $2"}
	args := []any{query.EntityType, query.EntityID}

	if query.Action != "" {
		args = append(args, string(query.Action))
		where = append(where, fmt.Sprintf("action = $%d", len(args)))
	}
	if query.Actor != "" {
		args = append(args, "%"+query.Actor+"%")
		where = append(where, fmt.Sprintf("actor::text ILIKE $%d", len(args)))
	}
	if query.Search != "" {
		args = append(args, "%"+query.Search+"%")
		where = append(where, fmt.Sprintf("(comment ILIKE $%d OR changes::text ILIKE $%d)", len(args), len(args)))
	}
	condition := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM history_entries WHERE `+condition, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history entries: %w", err)
	}

	limitArgs := append(args, query.PageSize, (query.Page-1)*query.PageSize)
	sql := fmt.Sprintf(`SELECT %s FROM history_entries WHERE %s ORDER BY ts DESC, id LIMIT $%d OFFSET $%d`,
		historyColumns, condition, len(limitArgs)-1, len(limitArgs))

	rows, err := r.db.Query(ctx, sql, limitArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list history entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list history entries: %w", err)
	}
	return entries, total, nil
}

func historyJSONB(entry domain.HistoryEntry) (actor, changes, tags, metadata []byte, err error) {
	if entry.Actor != nil {
		if actor, err = json.Marshal(entry.Actor); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal actor: %w", err)
		}
	}
	if changes, err = json.Marshal(entry.Changes); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal changes: %w", err)
	}
	if tags, err = json.Marshal(entry.Tags); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal tags: %w", err)
	}
	if metadata, err = json.Marshal(entry.Metadata); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return actor, changes, tags, metadata, nil
}

func scanHistoryEntry(row pgx.Row) (domain.HistoryEntry, error) {
	var (
		entry    domain.HistoryEntry
		action   string
		actor    []byte
		changes  []byte
		tags     []byte
		metadata []byte
	)
	err := row.Scan(
		&entry.ID, &entry.TenantID, &entry.EntityType, &entry.EntityID, &action, &entry.Timestamp,
		&actor, &entry.Summary, &changes, &tags, &metadata, &entry.Comment,
	)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry.Action = domain.HistoryAction(action)

	if len(actor) > 0 {
		entry.Actor = &domain.Actor{}
		if err := json.Unmarshal(actor, entry.Actor); err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("decode actor: %w", err)
		}
	}
	if len(changes) > 0 {
		if err := json.Unmarshal(changes, &entry.Changes); err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("decode changes: %w", err)
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &entry.Tags); err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return entry, nil
}
