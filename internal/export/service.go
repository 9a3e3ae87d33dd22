// Package export renders the catalog and its audit trail as CSV and XLSX
// downloads.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/history"
)

// Service builds catalog and history exports.
type Service struct {
	catalog *catalog.Service
	hist    *history.Service
	logger  *zap.Logger
}

// NewService wires the export service.
func NewService(catalogSvc *catalog.Service, hist *history.Service, logger *zap.Logger) *Service {
	return &Service{catalog: catalogSvc, hist: hist, logger: logger}
}

// HistoryCSV streams every page of the filtered history as CSV. Values are
// rendered with the history presentation rules, one line per change.
func (s *Service) HistoryCSV(ctx context.Context, query domain.HistoryQuery, w io.Writer, actor *domain.Actor) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"timestamp", "action", "actor", "field", "old", "new", "comment"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	query = query.Normalized()
	query.Page = 1
	for {
		page, err := s.hist.List(ctx, query)
		if err != nil {
			return err
		}
		for _, entry := range page.Items {
			actorName := ""
			if resolved := history.ResolveActor(entry); resolved != nil {
				actorName = history.DisplayName(*resolved)
			}
			if len(entry.Changes) == 0 {
				record := []string{
					entry.Timestamp.Format(time.RFC3339), string(entry.Action), actorName,
					"", "", "", entry.Comment,
				}
				if err := writer.Write(record); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
				continue
			}
			for _, change := range entry.Changes {
				record := []string{
					entry.Timestamp.Format(time.RFC3339), string(entry.Action), actorName,
					change.Field,
					history.FormatChangeValue(change.OldValue),
					history.FormatChangeValue(change.NewValue),
					entry.Comment,
				}
				if err := writer.Write(record); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
			}
		}
		if query.Page >= page.Pagination.TotalPages {
			break
		}
		query.Page++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.recordExport(ctx, query.EntityType, query.EntityID, "csv", actor)
	return nil
}

// CatalogWorkbook builds an XLSX workbook with one sheet each for
// attributes, attribute groups and items. The sheets are assembled
// concurrently, then merged into the workbook in a fixed order.
func (s *Service) CatalogWorkbook(ctx context.Context, actor *domain.Actor) (*excelize.File, error) {
	var (
		attrs  []domain.Attribute
		groups []domain.AttributeGroup
		items  []domain.Item
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		attrs, err = s.catalog.ListAttributes(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		groups, err = s.catalog.ListGroups(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		items, err = s.catalog.ListItems(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog for export: %w", err)
	}

	book := excelize.NewFile()
	if err := writeAttributeSheet(book, attrs); err != nil {
		return nil, err
	}
	if err := writeGroupSheet(book, groups); err != nil {
		return nil, err
	}
	if err := s.writeItemSheet(book, attrs, items); err != nil {
		return nil, err
	}
	_ = book.DeleteSheet("Sheet1")

	s.recordExport(ctx, "catalog", "all", "xlsx", actor)
	return book, nil
}

func writeAttributeSheet(book *excelize.File, attrs []domain.Attribute) error {
	const sheet = "Attributes"
	if _, err := book.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	header := []any{"key", "name", "type", "required", "unique", "options", "tags"}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}
	for i, attr := range attrs {
		row := []any{
			attr.Key, attr.Name, string(attr.Type), attr.Required, attr.Unique,
			strings.Join(attr.Options, ", "), strings.Join(attr.Tags, ", "),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func writeGroupSheet(book *excelize.File, groups []domain.AttributeGroup) error {
	const sheet = "Groups"
	if _, err := book.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	header := []any{"name", "description", "tags"}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}
	for i, group := range groups {
		row := []any{group.Name, group.Description, strings.Join(group.Tags, ", ")}
		cell := fmt.Sprintf("A%d", i+2)
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}
	return nil
}

// writeItemSheet renders item values through the codec so cells show the
// same canonical strings the console displays.
func (s *Service) writeItemSheet(book *excelize.File, attrs []domain.Attribute, items []domain.Item) error {
	const sheet = "Items"
	if _, err := book.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	header := []any{"name"}
	for _, attr := range attrs {
		header = append(header, attr.Key)
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}

	cdc := s.catalog.Codec()
	for i, item := range items {
		row := []any{item.Name}
		for _, attr := range attrs {
			row = append(row, cdc.Format(cdc.Parse(attr.Type, item.Values[attr.Key])))
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func (s *Service) recordExport(ctx context.Context, entityType, entityID, format string, actor *domain.Actor) {
	entry := domain.HistoryEntry{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     domain.ActionExported,
		Timestamp:  time.Now(),
		Actor:      actor,
		Summary:    fmt.Sprintf("%s exported as %s", entityType, format),
		Metadata:   map[string]any{"format": format},
	}
	if err := s.hist.Record(ctx, entry); err != nil {
		s.logger.Warn("export audit record failed", zap.Error(err))
	}
}
