package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/logger"
)

// Cache maps a ticker to its descriptive metadata.
type Cache map[string]models.TickerMetadata

// Store loads and saves the cache between runs.
type Store interface {
	Load() Cache
	Save(Cache) error
}

// FileStore keeps the cache as a single JSON object on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the cache file. A missing or unreadable file yields an empty
// cache; the run then fetches every ticker again.
func (s *FileStore) Load() Cache {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.L().Warn().Str("path", s.Path).Err(err).Msg("metadata cache unreadable, starting empty")
		}
		return Cache{}
	}

	cache := Cache{}
	if err := json.Unmarshal(b, &cache); err != nil {
		logger.L().Warn().Str("path", s.Path).Err(err).Msg("metadata cache corrupt, starting empty")
		return Cache{}
	}
	logger.L().Info().Str("path", s.Path).Int("entries", len(cache)).Msg("metadata cache loaded")
	return cache
}

// Save writes the cache through a temp file and rename, so an interrupted
// write never leaves a truncated cache behind.
func (s *FileStore) Save(cache Cache) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	b, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".ticker-*.json")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}

	logger.L().Info().Str("path", s.Path).Int("entries", len(cache)).Msg("metadata cache saved")
	return nil
}
