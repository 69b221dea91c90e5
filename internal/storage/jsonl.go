package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ignitionPayout/internal/model"
)

// JsonlStorage appends reports to a JSONL file, one line per run.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// Path returns the file reports are appended to.
func (s *JsonlStorage) Path() string {
	return s.path
}

// PutReports appends reports as JSON lines. The file and its directory are
// created on first use.
func (s *JsonlStorage) PutReports(reports []model.Report) (err error) {
	if len(reports) == 0 {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", cerr)
		}
	}()

	enc := json.NewEncoder(file)
	for _, report := range reports {
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("append report %s: %w", report.RunID, err)
		}
	}
	return nil
}
