package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/history"
)

func newImportFixture(t *testing.T) (*Importer, *fixture) {
	t.Helper()
	f := newFixture()
	hist := history.NewService(f.histRepo, history.CacheConfig{}, zap.NewNop())
	return NewImporter(f.svc, hist, zap.NewNop()), f
}

func seedTextAttribute(t *testing.T, f *fixture, key string, required bool) {
	t.Helper()
	draft := domain.NewAttributeDraft().
		WithBasicInfo(key, key, nil).
		WithType(domain.AttributeTypeText, nil).
		WithValidationRules(nil, required, false).
		WithDefault("").
		Reviewed()
	if _, err := f.svc.CreateAttribute(context.Background(), draft, nil); err != nil {
		t.Fatalf("seed attribute %q: %v", key, err)
	}
}

func TestImportCreatesItemsFromCSV(t *testing.T) {
	imp, f := newImportFixture(t)
	seedTextAttribute(t, f, "sku", false)
	seedTextAttribute(t, f, "color", false)

	data := "name,sku,color\nWidget,SKU-1,Red\nGadget,SKU-2,\n"
	summary, err := imp.Import(context.Background(), "items.csv", strings.NewReader(data), nil)
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}

	if summary.Created != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	items, err := f.svc.ListItems(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestImportCollectsRowErrorsWithoutAborting(t *testing.T) {
	imp, f := newImportFixture(t)
	seedTextAttribute(t, f, "sku", true)

	data := "name,sku\nGood,SKU-1\nBad,\nAlso Good,SKU-2\n"
	summary, err := imp.Import(context.Background(), "items.csv", strings.NewReader(data), nil)
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}

	if summary.Created != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.RowErrors) != 1 || summary.RowErrors[0].Row != 3 {
		t.Fatalf("row error should name the 1-based file row: %+v", summary.RowErrors)
	}
}

func TestImportRequiresNameHeader(t *testing.T) {
	imp, _ := newImportFixture(t)

	_, err := imp.Import(context.Background(), "items.csv", strings.NewReader("sku,color\nA,B\n"), nil)
	if err == nil {
		t.Fatalf("expected error for missing name header")
	}
}

func TestImportRejectsUnknownExtension(t *testing.T) {
	imp, _ := newImportFixture(t)

	_, err := imp.Import(context.Background(), "items.pdf", strings.NewReader("x"), nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestImportRecordsBatchEntry(t *testing.T) {
	imp, f := newImportFixture(t)
	seedTextAttribute(t, f, "sku", false)

	summary, err := imp.Import(context.Background(), "items.csv", strings.NewReader("name,sku\nWidget,SKU-1\n"), nil)
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}

	var batch *domain.HistoryEntry
	for i := range f.histRepo.entries {
		if f.histRepo.entries[i].Action == domain.ActionImported {
			batch = &f.histRepo.entries[i]
		}
	}
	if batch == nil {
		t.Fatalf("no imported audit entry recorded")
	}
	if batch.EntityID != summary.BatchID.String() {
		t.Fatalf("batch entry should use the batch id, got %q", batch.EntityID)
	}
	if batch.Metadata["created"] != 1 {
		t.Fatalf("unexpected metadata: %+v", batch.Metadata)
	}
}
