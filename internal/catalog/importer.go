package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/history"
)

// ErrUnsupportedFormat is returned when an uploaded file is not CSV or XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Importer bulk-creates items from tabular uploads. The first column must be
// the item name; remaining headers are attribute keys.
type Importer struct {
	svc    *Service
	hist   *history.Service
	logger *zap.Logger
}

// NewImporter wires the item importer.
func NewImporter(svc *Service, hist *history.Service, logger *zap.Logger) *Importer {
	return &Importer{svc: svc, hist: hist, logger: logger}
}

// RowError reports why one upload row was rejected.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary reports the outcome of one upload.
type ImportSummary struct {
	BatchID   uuid.UUID  `json:"batchId"`
	FileName  string     `json:"fileName"`
	Created   int        `json:"created"`
	Failed    int        `json:"failed"`
	RowErrors []RowError `json:"rowErrors,omitempty"`
}

// Import reads the upload, creates one item per data row and records a
// single batch-level audit entry with the imported action. Row failures do
// not abort the batch.
func (imp *Importer) Import(ctx context.Context, fileName string, data io.Reader, actor *domain.Actor) (ImportSummary, error) {
	rows, err := readRows(fileName, data)
	if err != nil {
		return ImportSummary{}, err
	}
	if len(rows) < 2 {
		return ImportSummary{}, fmt.Errorf("file %q has no data rows", fileName)
	}

	header := rows[0]
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "name") {
		return ImportSummary{}, fmt.Errorf("first column must be the item name, got %q", strings.Join(header, ","))
	}

	summary := ImportSummary{BatchID: uuid.New(), FileName: fileName}
	for rowIdx, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		name := strings.TrimSpace(row[0])
		values := make(map[string]any, len(header)-1)
		for col := 1; col < len(header) && col < len(row); col++ {
			key := strings.TrimSpace(header[col])
			if key == "" {
				continue
			}
			if cell := strings.TrimSpace(row[col]); cell != "" {
				values[key] = cell
			}
		}

		if _, err := imp.svc.CreateItem(ctx, name, values, actor); err != nil {
			summary.Failed++
			summary.RowErrors = append(summary.RowErrors, RowError{Row: rowIdx + 2, Message: err.Error()})
			continue
		}
		summary.Created++
	}

	imp.recordBatch(ctx, summary, actor)
	imp.logger.Info("item import finished",
		zap.String("file", fileName),
		zap.Int("created", summary.Created),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (imp *Importer) recordBatch(ctx context.Context, summary ImportSummary, actor *domain.Actor) {
	entry := domain.HistoryEntry{
		ID:         uuid.New(),
		EntityType: EntityTypeItem,
		EntityID:   summary.BatchID.String(),
		Action:     domain.ActionImported,
		Timestamp:  time.Now(),
		Actor:      actor,
		Summary:    fmt.Sprintf("imported %d item(s) from %s", summary.Created, summary.FileName),
		Metadata: map[string]any{
			"fileName": summary.FileName,
			"created":  summary.Created,
			"failed":   summary.Failed,
		},
	}
	if err := imp.hist.Record(ctx, entry); err != nil {
		imp.logger.Warn("import audit record failed", zap.Error(err))
	}
}

func readRows(fileName string, data io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		raw, err := io.ReadAll(data)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		raw = bytes.TrimPrefix(raw, byteOrderMark)
		reader := csv.NewReader(bytes.NewReader(raw))
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		return rows, nil
	case ".xlsx":
		book, err := excelize.OpenReader(data)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		defer book.Close()
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		rows, err := book.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
