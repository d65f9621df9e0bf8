// Package store owns the ordered, in-memory collection of applications and
// mediates every mutation of it.
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/common/logger"
	"jobhunt-tracker/internal/common/metrics"
	"jobhunt-tracker/internal/common/validation"
	"jobhunt-tracker/internal/models"
	"jobhunt-tracker/internal/tracker/blob"
)

// Store is the canonical application collection. The zero value is not
// usable; construct with New.
type Store struct {
	mu       sync.RWMutex
	instance string
	blob     blob.Blob
	apps     []models.Application
	dirty    bool
	version  uint64
	logger   logger.Logger
}

func New(b blob.Blob, log logger.Logger) *Store {
	s := &Store{
		instance: uuid.NewString(),
		blob:     b,
		apps:     []models.Application{},
		logger:   log.WithFields(map[string]interface{}{"component": "record-store", "backend": b.Backend()}),
	}
	s.observe()
	return s
}

// Load replaces the collection with the persisted blob. A missing blob
// yields an empty collection. A malformed blob also yields an empty
// collection and a MALFORMED_PERSISTED_DATA error; records are never
// partially loaded. On a read failure the collection is left untouched.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.blob.Read(ctx)
	switch {
	case stderrors.Is(err, blob.ErrNotFound):
		s.reset([]models.Application{})
		s.logger.Info("no persisted applications, starting empty", nil)
		return nil
	case err != nil:
		s.logger.Error("failed to read persisted applications", map[string]interface{}{"error": err})
		return errors.NewStorageReadFailedError(s.blob.Backend(), err)
	case len(data) == 0:
		s.reset([]models.Application{})
		return nil
	}

	if result := validation.ValidateBlob(data); !result.Valid {
		s.reset([]models.Application{})
		s.logger.Warn("discarding malformed persisted applications", map[string]interface{}{
			"errors": result.GetErrorMessages(),
		})
		return errors.NewMalformedPersistedDataError(result.Summary(), nil)
	}

	var apps []models.Application
	if err := json.Unmarshal(data, &apps); err != nil {
		s.reset([]models.Application{})
		return errors.NewMalformedPersistedDataError(err.Error(), err)
	}

	s.reset(apps)
	s.logger.Info("loaded applications", map[string]interface{}{"count": len(apps)})
	return nil
}

// Create inserts app at the front of the collection. An empty ID is
// assigned; an ID already present is rejected.
func (s *Store) Create(ctx context.Context, app models.Application) (models.Application, error) {
	if err := ctx.Err(); err != nil {
		return models.Application{}, err
	}
	if app.ID == "" {
		app.ID = models.NewApplicationID()
	}
	if result := validation.ValidateApplication(app); !result.Valid {
		return models.Application{}, errors.NewApplicationValidationFailedError(result.Summary())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(app.ID) >= 0 {
		return models.Application{}, errors.NewDuplicateApplicationError(app.ID)
	}

	apps := make([]models.Application, 0, len(s.apps)+1)
	apps = append(apps, app)
	s.apps = append(apps, s.apps...)
	s.mutated("create")

	return app, nil
}

// Update replaces the record with the given id in place. The id is
// immutable: an empty app.ID takes the existing id, a different one is
// rejected.
func (s *Store) Update(ctx context.Context, id string, app models.Application) (models.Application, error) {
	if err := ctx.Err(); err != nil {
		return models.Application{}, err
	}
	if app.ID == "" {
		app.ID = id
	}
	if app.ID != id {
		return models.Application{}, errors.NewApplicationIDImmutableError(id, app.ID)
	}
	if result := validation.ValidateApplication(app); !result.Valid {
		return models.Application{}, errors.NewApplicationValidationFailedError(result.Summary())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Application{}, errors.NewApplicationNotFoundError(id)
	}
	s.apps[i] = app
	s.mutated("update")

	return app, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewApplicationNotFoundError(id)
	}
	s.apps = append(s.apps[:i:i], s.apps[i+1:]...)
	s.mutated("delete")

	return nil
}

// Persist writes the whole collection, in collection order, over the blob.
// The dirty flag is cleared only when the write succeeds.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.apps)
	if err != nil {
		metrics.StorePersists.WithLabelValues("failure").Inc()
		return errors.NewPersistFailedError(err)
	}

	if err := s.blob.Write(ctx, data); err != nil {
		metrics.StorePersists.WithLabelValues("failure").Inc()
		s.logger.Error("failed to persist applications", map[string]interface{}{
			"error": err,
			"count": len(s.apps),
		})
		return errors.NewPersistFailedError(err)
	}

	s.dirty = false
	metrics.StorePersists.WithLabelValues("success").Inc()
	s.observe()
	s.logger.Info("persisted applications", map[string]interface{}{"count": len(s.apps), "bytes": len(data)})
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.Application, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.apps[i], true
	}
	return models.Application{}, false
}

// Snapshot returns a copy of the collection in collection order.
func (s *Store) Snapshot() []models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Application, len(s.apps))
	copy(out, s.apps)
	return out
}

// View returns a snapshot together with the generation it was taken at and
// the dirty flag of that same state. A generation names one state of one
// Store instance, so it is safe to use as a cache key across process restarts.
func (s *Store) View() ([]models.Application, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Application, len(s.apps))
	copy(out, s.apps)
	return out, fmt.Sprintf("%s:%d", s.instance, s.version), s.dirty
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.apps)
}

// Dirty reports whether there are changes not yet persisted.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Version increases on every load and successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Callers must hold mu.
func (s *Store) indexOf(id string) int {
	for i := range s.apps {
		if s.apps[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) reset(apps []models.Application) {
	s.apps = apps
	s.dirty = false
	s.version++
	s.observe()
}

func (s *Store) mutated(op string) {
	s.dirty = true
	s.version++
	metrics.StoreMutations.WithLabelValues(op).Inc()
	s.observe()
}

func (s *Store) observe() {
	metrics.StoreRecords.Set(float64(len(s.apps)))
	metrics.StoreDirty.Set(metrics.BoolGauge(s.dirty))
}
