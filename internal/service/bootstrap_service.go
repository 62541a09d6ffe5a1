package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"event-notifier/internal/dataset"
	"event-notifier/internal/logging"
	"event-notifier/internal/model"
	"event-notifier/internal/repository"
)

// seedCategories is the fixed catalog of event categories, created on first
// start and kept in sync afterwards.
var seedCategories = []string{"축제", "팝업 스토어", "할인 행사", "전시/공연"}

// BootstrapService prepares the store before the server accepts requests:
// seed categories, staleness detection, and one-time dataset imports.
type BootstrapService struct {
	db           *gorm.DB
	categoryRepo *repository.CategoryRepository
	metaRepo     *repository.MetaRepository
	importSvc    *ImportService
	datasets     []dataset.Dataset
	dataDir      string
}

func NewBootstrapService(
	db *gorm.DB,
	categoryRepo *repository.CategoryRepository,
	metaRepo *repository.MetaRepository,
	importSvc *ImportService,
	datasets []dataset.Dataset,
	dataDir string,
) *BootstrapService {
	return &BootstrapService{
		db:           db,
		categoryRepo: categoryRepo,
		metaRepo:     metaRepo,
		importSvc:    importSvc,
		datasets:     datasets,
		dataDir:      dataDir,
	}
}

// Run validates the dataset catalog, reconciles seed categories when the
// stored seed no longer matches, and imports any datasets the ledger has
// not seen. A store that already matches is left untouched. Errors here are
// fatal to startup; only unreadable dataset files are tolerated.
func (s *BootstrapService) Run(ctx context.Context) error {
	if err := s.validateCatalog(); err != nil {
		return err
	}

	stale, reason, err := s.stale(ctx)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)
	if !stale {
		logger.Info("event store up to date", "categories", len(seedCategories))
		return nil
	}

	logger.Info("bootstrapping event store", "reason", reason)
	if err := s.reconcileSeed(ctx); err != nil {
		return err
	}
	if err := s.importDatasets(ctx); err != nil {
		return err
	}

	// The version marker goes last. A crash anywhere above leaves the old
	// marker in place and the next start picks up where this one stopped.
	return s.metaRepo.Set(ctx, repository.MetaKeySeedVersion, s.seedVersion())
}

// validateCatalog fails fast on a misconfigured dataset catalog instead of
// surfacing mapping gaps record by record at import time.
func (s *BootstrapService) validateCatalog() error {
	seeded := make(map[string]bool, len(seedCategories))
	for _, name := range seedCategories {
		seeded[name] = true
	}
	for _, ds := range s.datasets {
		if ds.File == "" {
			return fmt.Errorf("dataset %s: no file configured", ds.Name)
		}
		if !seeded[ds.Category] {
			return fmt.Errorf("dataset %s: unknown category %q", ds.Name, ds.Category)
		}
		if err := ds.Fields.Validate(); err != nil {
			return fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
	}
	return nil
}

// stale decides whether the persisted seed needs reconciling and names the
// trigger for the log.
func (s *BootstrapService) stale(ctx context.Context) (bool, string, error) {
	count, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return false, "", err
	}
	if count == 0 {
		return true, "no categories", nil
	}

	version, err := s.metaRepo.Get(ctx, repository.MetaKeySeedVersion)
	if err != nil {
		return false, "", err
	}
	if version != s.seedVersion() {
		return true, "seed version changed", nil
	}
	if count != int64(len(seedCategories)) {
		return true, "category count mismatch", nil
	}
	return false, "", nil
}

// seedVersion fingerprints the seed configuration. Renaming a category or
// adding a dataset yields a new version and triggers a reconcile on the
// next start.
func (s *BootstrapService) seedVersion() string {
	h := sha256.New()
	for _, name := range seedCategories {
		io.WriteString(h, name)
		io.WriteString(h, "\x00")
	}
	for _, ds := range s.datasets {
		io.WriteString(h, ds.Name)
		io.WriteString(h, "\x00")
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// reconcileSeed brings the category table in line with the seed list
// without touching events under categories that survive. Categories no
// longer in the list are removed together with their events so the
// referential constraint holds throughout.
func (s *BootstrapService) reconcileSeed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range seedCategories {
			var category model.Category
			err := tx.Where("name = ?", name).First(&category).Error
			switch {
			case err == nil:
			case errors.Is(err, gorm.ErrRecordNotFound):
				category = model.Category{Name: name}
				if err := tx.Create(&category).Error; err != nil {
					return fmt.Errorf("seed category %q: %w", name, err)
				}
			default:
				return fmt.Errorf("find category %q: %w", name, err)
			}
		}

		var extras []model.Category
		if err := tx.Where("name NOT IN ?", seedCategories).Find(&extras).Error; err != nil {
			return fmt.Errorf("list removed categories: %w", err)
		}
		if len(extras) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(extras))
		for _, category := range extras {
			ids = append(ids, category.ID)
		}
		if err := tx.Where("category_id IN ?", ids).Delete(&model.Event{}).Error; err != nil {
			return fmt.Errorf("delete events of removed categories: %w", err)
		}
		if err := tx.Delete(&model.Category{}, ids).Error; err != nil {
			return fmt.Errorf("delete removed categories: %w", err)
		}
		return nil
	})
}

// importDatasets loads every dataset the ledger has not recorded yet. An
// unreadable or malformed file skips that dataset only; everything else is
// a real fault and stops the bootstrap.
func (s *BootstrapService) importDatasets(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	runID := uuid.NewString()

	for _, ds := range s.datasets {
		done, err := s.importSvc.Imported(ctx, ds.Name)
		if err != nil {
			return err
		}
		if done {
			logger.Debug("dataset already imported", "dataset", ds.Name)
			continue
		}

		category, err := s.categoryRepo.GetByName(ctx, ds.Category)
		if err != nil {
			return fmt.Errorf("dataset %s: resolve category %q: %w", ds.Name, ds.Category, err)
		}

		records, err := dataset.ReadFile(filepath.Join(s.dataDir, ds.File))
		if err != nil {
			logger.Warn("skipping unreadable dataset", "dataset", ds.Name, "error", err)
			continue
		}

		inserted, err := s.importSvc.loadDataset(ctx, ds, records, category.ID, runID)
		if err != nil {
			return err
		}
		logger.Info("dataset imported", "dataset", ds.Name, "rows", inserted, "run_id", runID)
	}
	return nil
}
