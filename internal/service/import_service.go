package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"event-notifier/internal/dataset"
	"event-notifier/internal/logging"
	"event-notifier/internal/model"
)

// Placeholders for records that carry dates but lack a title or location.
const (
	placeholderTitle    = "제목 없음"
	placeholderLocation = "위치 미상"
)

// ImportService turns generic dataset records into event rows using a
// per-dataset field mapping. It works on the store handle directly because
// a batch spans many rows and must commit as one unit.
type ImportService struct {
	db *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

// Load inserts one event per usable record into the given category,
// resolving source keys through fields. Records without a parseable
// YYYY-MM-DD date range are skipped; a record that fails to insert is
// logged and skipped as well, never aborting the batch. The whole batch
// commits at once and the returned count is exactly the number of rows
// written.
func (s *ImportService) Load(ctx context.Context, records []dataset.Record, categoryID uint, fields dataset.FieldMap) (int, error) {
	if err := fields.Validate(); err != nil {
		return 0, err
	}

	logger := logging.FromContext(ctx)
	var inserted int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted = stageRecords(tx, logger, records, categoryID, fields)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}
	return inserted, nil
}

// Imported reports whether a dataset was already loaded by a previous run.
func (s *ImportService) Imported(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ImportRecord{}).
		Where("dataset = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check import ledger: %w", err)
	}
	return count > 0, nil
}

// loadDataset stages one dataset's records and its ledger row inside a
// single transaction, so rows can never become visible without the dataset
// being marked as done.
func (s *ImportService) loadDataset(ctx context.Context, ds dataset.Dataset, records []dataset.Record, categoryID uint, runID string) (int, error) {
	if err := ds.Fields.Validate(); err != nil {
		return 0, fmt.Errorf("dataset %s: %w", ds.Name, err)
	}

	logger := logging.WithFields(ctx, "dataset", ds.Name)
	var inserted int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted = stageRecords(tx, logger, records, categoryID, ds.Fields)
		ledger := model.ImportRecord{Dataset: ds.Name, RunID: runID, Inserted: inserted}
		if err := tx.Create(&ledger).Error; err != nil {
			return fmt.Errorf("record import: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import dataset %s: %w", ds.Name, err)
	}
	return inserted, nil
}

// stageRecords maps and inserts records within an open transaction and
// returns how many rows it wrote. Per-record failures only ever drop that
// record.
func stageRecords(tx *gorm.DB, logger *slog.Logger, records []dataset.Record, categoryID uint, fields dataset.FieldMap) int {
	inserted := 0
	for _, record := range records {
		title := stringField(record, fields.Title, placeholderTitle)

		startRaw := stringField(record, fields.StartDate, "")
		endRaw := stringField(record, fields.EndDate, "")
		if startRaw == "" || endRaw == "" {
			logger.Debug("skipping record without date range", "title", title)
			continue
		}
		start, err := model.ParseDate(startRaw)
		if err != nil {
			logger.Debug("skipping record with bad start date", "title", title, "value", startRaw)
			continue
		}
		end, err := model.ParseDate(endRaw)
		if err != nil {
			logger.Debug("skipping record with bad end date", "title", title, "value", endRaw)
			continue
		}

		event := model.Event{
			Title:       title,
			Description: stringField(record, fields.Description, ""),
			Location:    stringField(record, fields.Location, placeholderLocation),
			StartDate:   start,
			EndDate:     end,
			CategoryID:  categoryID,
		}
		if err := tx.Create(&event).Error; err != nil {
			logger.Warn("skipping record that failed to insert", "title", title, "error", err)
			continue
		}
		inserted++
	}
	return inserted
}

// stringField resolves one logical field from a record, coercing scalar
// values to text. An unmapped key, missing value, or blank string yields
// the fallback.
func stringField(record dataset.Record, key, fallback string) string {
	if key == "" {
		return fallback
	}
	value, ok := record[key]
	if !ok || value == nil {
		return fallback
	}
	text, ok := value.(string)
	if !ok {
		text = fmt.Sprint(value)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}
