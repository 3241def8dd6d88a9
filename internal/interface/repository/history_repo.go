// internal/interface/repository/history_repo.go
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/internal/domain/repository"
	"flightreport-ingestor/pkg/logger"
)

// FileHistoryRepository implements HistoryRepository on a plain append-only
// text file, one processed filename per line. The file is never rewritten
// or compacted; the in-memory set deduplicates at load time.
type FileHistoryRepository struct {
	path   string
	logger logger.Logger
}

// NewFileHistoryRepository creates a new file-backed history repository
func NewFileHistoryRepository(path string, log logger.Logger) repository.HistoryRepository {
	return &FileHistoryRepository{path: path, logger: log}
}

// Load reads the history file. A missing file is an empty history.
func (r *FileHistoryRepository) Load() (entity.HistorySet, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Info("No history file yet, starting with empty history", "path", r.path)
			return entity.NewHistorySet(), nil
		}
		return nil, fmt.Errorf("read history %s: %w", r.path, err)
	}

	history := entity.NewHistorySet()
	for _, line := range strings.Split(string(data), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		history.Add(name)
	}
	return history, nil
}

// Append writes the base names of the given files to the history file.
func (r *FileHistoryRepository) Append(filenames []string) error {
	if len(filenames) == 0 {
		return nil
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history %s: %w", r.path, err)
	}
	for _, name := range filenames {
		if _, err := fmt.Fprintln(f, filepath.Base(name)); err != nil {
			f.Close()
			return fmt.Errorf("append history %s: %w", r.path, err)
		}
	}
	return f.Close()
}
