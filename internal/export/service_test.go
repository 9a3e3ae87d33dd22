package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/codec"
	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/history"
	"github.com/ycetindil/attrio/internal/repository"
)

type staticAttrRepo struct{ attrs []domain.Attribute }

func (r staticAttrRepo) Create(_ context.Context, a domain.Attribute) (domain.Attribute, error) {
	return a, nil
}
func (r staticAttrRepo) Update(_ context.Context, a domain.Attribute) (domain.Attribute, error) {
	return a, nil
}
func (r staticAttrRepo) Delete(_ context.Context, _ uuid.UUID) error { return repository.ErrNotFound }
func (r staticAttrRepo) GetByID(_ context.Context, _ uuid.UUID) (domain.Attribute, error) {
	return domain.Attribute{}, repository.ErrNotFound
}
func (r staticAttrRepo) GetByKey(_ context.Context, _ string) (domain.Attribute, error) {
	return domain.Attribute{}, repository.ErrNotFound
}
func (r staticAttrRepo) List(_ context.Context) ([]domain.Attribute, error) { return r.attrs, nil }

type staticGroupRepo struct{ groups []domain.AttributeGroup }

func (r staticGroupRepo) Create(_ context.Context, g domain.AttributeGroup) (domain.AttributeGroup, error) {
	return g, nil
}
func (r staticGroupRepo) Update(_ context.Context, g domain.AttributeGroup) (domain.AttributeGroup, error) {
	return g, nil
}
func (r staticGroupRepo) Delete(_ context.Context, _ uuid.UUID) error { return repository.ErrNotFound }
func (r staticGroupRepo) GetByID(_ context.Context, _ uuid.UUID) (domain.AttributeGroup, error) {
	return domain.AttributeGroup{}, repository.ErrNotFound
}
func (r staticGroupRepo) List(_ context.Context) ([]domain.AttributeGroup, error) {
	return r.groups, nil
}

type staticItemRepo struct{ items []domain.Item }

func (r staticItemRepo) Create(_ context.Context, i domain.Item) (domain.Item, error) { return i, nil }
func (r staticItemRepo) Update(_ context.Context, i domain.Item) (domain.Item, error) { return i, nil }
func (r staticItemRepo) Delete(_ context.Context, _ uuid.UUID) error                  { return repository.ErrNotFound }
func (r staticItemRepo) GetByID(_ context.Context, _ uuid.UUID) (domain.Item, error) {
	return domain.Item{}, repository.ErrNotFound
}
func (r staticItemRepo) List(_ context.Context) ([]domain.Item, error) { return r.items, nil }

type recordingHistRepo struct {
	entries  []domain.HistoryEntry
	inserted []domain.HistoryEntry
}

func (r *recordingHistRepo) Insert(_ context.Context, entry domain.HistoryEntry) error {
	r.inserted = append(r.inserted, entry)
	return nil
}

func (r *recordingHistRepo) List(_ context.Context, _ domain.HistoryQuery) ([]domain.HistoryEntry, int, error) {
	return r.entries, len(r.entries), nil
}

func newExportService(histRepo *recordingHistRepo, attrs []domain.Attribute, items []domain.Item) *Service {
	logger := zap.NewNop()
	histSvc := history.NewService(histRepo, history.CacheConfig{}, logger)
	cdc := codec.New(codec.DefaultConfig())
	catalogSvc := catalog.NewService(
		staticAttrRepo{attrs: attrs}, staticGroupRepo{}, staticItemRepo{items: items},
		histSvc, cdc, logger,
	)
	return NewService(catalogSvc, histSvc, logger)
}

func TestHistoryCSVOneLinePerChange(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	histRepo := &recordingHistRepo{entries: []domain.HistoryEntry{
		{
			ID:         uuid.New(),
			EntityType: "item",
			EntityID:   "1",
			Action:     domain.ActionUpdated,
			Timestamp:  ts,
			Actor:      &domain.Actor{Email: "jane@example.com"},
			Changes: []domain.Change{
				{Field: "price", OldValue: float64(10), NewValue: float64(12)},
				{Field: "color", OldValue: nil, NewValue: "Red"},
			},
			Comment: "bulk correction",
		},
	}}
	svc := newExportService(histRepo, nil, nil)

	var buf bytes.Buffer
	err := svc.HistoryCSV(context.Background(), domain.HistoryQuery{EntityType: "item", EntityID: "1"}, &buf, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"timestamp", "action", "actor", "field", "old", "new", "comment"}, records[0])
	require.Equal(t, []string{"2024-03-15T10:00:00Z", "updated", "jane", "price", "10", "12", "bulk correction"}, records[1])
	require.Equal(t, []string{"2024-03-15T10:00:00Z", "updated", "jane", "color", "—", "Red", "bulk correction"}, records[2])

	// The export itself is audited.
	require.Len(t, histRepo.inserted, 1)
	require.Equal(t, domain.ActionExported, histRepo.inserted[0].Action)
}

func TestCatalogWorkbookSheets(t *testing.T) {
	attrs := []domain.Attribute{
		{ID: uuid.New(), Key: "price", Name: "Price", Type: domain.AttributeTypeMoney},
	}
	items := []domain.Item{
		{ID: uuid.New(), Name: "Widget", Values: map[string]any{"price": map[string]any{"amount": 12.5, "currency": "USD"}}},
	}
	histRepo := &recordingHistRepo{}
	svc := newExportService(histRepo, attrs, items)

	book, err := svc.CatalogWorkbook(context.Background(), nil)
	require.NoError(t, err)
	defer book.Close()

	sheets := book.GetSheetList()
	for _, sheet := range []string{"Attributes", "Groups", "Items"} {
		require.Contains(t, sheets, sheet)
	}
	require.NotContains(t, sheets, "Sheet1")

	cell, err := book.GetCellValue("Items", "A2")
	require.NoError(t, err)
	require.Equal(t, "Widget", cell)

	cell, err = book.GetCellValue("Items", "B2")
	require.NoError(t, err)
	require.Equal(t, "USD 12.5", cell)
}
