package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/models"
)

const analysesFile = "analyses.json"

// FileStore is a MemoryStore that snapshots every change to a JSON file
// in the data directory. A change that cannot be written is undone in
// memory as well.
type FileStore struct {
	*MemoryStore
	path    string
	writeMu sync.Mutex
	logger  logging.Logger
}

// NewFileStore loads dataDir/analyses.json when present
func NewFileStore(dataDir string, logger logging.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        filepath.Join(dataDir, analysesFile),
		logger:      logger,
	}

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read analyses: %w", err)
	}

	var list []models.Analysis
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode analyses: %w", err)
	}
	for _, a := range list {
		s.analyses[a.ID] = a
	}
	logger.Info("analyses loaded", logging.String("path", s.path), logging.Int("count", len(list)))
	return s, nil
}

func (s *FileStore) Save(ctx context.Context, a models.Analysis) (models.Analysis, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev, existed := s.lookup(a.ID)
	saved, err := s.MemoryStore.Save(ctx, a)
	if err != nil {
		return models.Analysis{}, err
	}
	if err := s.persist(ctx); err != nil {
		if existed {
			s.put(prev)
		} else {
			s.remove(saved.ID)
		}
		return models.Analysis{}, err
	}
	return saved, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev, _ := s.lookup(id)
	if err := s.MemoryStore.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		s.put(prev)
		return err
	}
	return nil
}

// persist writes to a temp file and renames it over the snapshot. Callers
// hold writeMu.
func (s *FileStore) persist(ctx context.Context) error {
	list, err := s.MemoryStore.GetAll(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal analyses: %w", err)
	}

	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	s.logger.Debug("analyses persisted", logging.String("path", s.path), logging.Int("count", len(list)))
	return nil
}
