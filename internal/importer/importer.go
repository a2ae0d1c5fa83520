package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/suteetoe/storecatalog/internal/model"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"github.com/suteetoe/storecatalog/pkg/validation"
	"go.uber.org/zap"
)

// ErrFileMissing is returned when the import file does not exist
var ErrFileMissing = errors.New("import file not found")

// StoreCreator creates one store per call, each in its own commit
type StoreCreator interface {
	CreateStore(ctx context.Context, in repository.StoreInput) (*model.Store, error)
}

// Observer is notified of every processed record
type Observer interface {
	ObserveImport(err error)
}

type storeRecord struct {
	Name *string `json:"name" validate:"required"`
}

// Result summarizes a finished import
type Result struct {
	Imported int
}

// Importer loads stores from a JSON array of {"name": ...} objects.
// Records are created one by one and earlier records stay committed when a
// later one fails.
type Importer struct {
	path      string
	creator   StoreCreator
	validator *validation.Validator
	observer  Observer
}

// New creates an importer reading path. observer may be nil.
func New(path string, creator StoreCreator, observer Observer) *Importer {
	return &Importer{
		path:      path,
		creator:   creator,
		validator: validation.New(),
		observer:  observer,
	}
}

// FileName returns the base name of the import file
func (i *Importer) FileName() string {
	return filepath.Base(i.path)
}

func (i *Importer) Import(ctx context.Context) (Result, error) {
	var result Result
	log := logger.FromContext(ctx).With(zap.String("file", i.path))

	f, err := os.Open(i.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrFileMissing, i.path)
		}
		return result, fmt.Errorf("open %s: %w", i.path, err)
	}
	defer f.Close()

	var records []storeRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return result, fmt.Errorf("decode %s: %w", i.path, err)
	}
	log.Info("Importing stores", zap.Int("records", len(records)))

	for idx, rec := range records {
		if err := i.validator.Validate(rec); err != nil {
			i.observe(err)
			return result, fmt.Errorf("record %d: %w", idx, err)
		}
		store, err := i.creator.CreateStore(ctx, repository.StoreInput{Name: *rec.Name})
		i.observe(err)
		if err != nil {
			log.Warn("Import stopped",
				zap.Int("record", idx),
				zap.Int("imported", result.Imported),
				zap.Error(err))
			return result, fmt.Errorf("record %d: %w", idx, err)
		}
		result.Imported++
		log.Debug("Store imported", zap.Uint("store_id", store.ID), zap.String("name", store.Name))
	}

	log.Info("Stores imported", zap.Int("imported", result.Imported))
	return result, nil
}

func (i *Importer) observe(err error) {
	if i.observer != nil {
		i.observer.ObserveImport(err)
	}
}
