package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/mkr1/internal/domain"
	"github.com/aalvaropc/mkr1/internal/ports"
)

const defaultRunsDir = "runs"

// JSONStore writes one indented JSON file per run under <root>/mkr1/<dir>.
type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: <dir>/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.History.Dir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		writeIndex:  false,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.RunStore = (*JSONStore)(nil)

func (s *JSONStore) Dir() string {
	return filepath.Join(s.rootDir, domain.ProjectFolder, s.runsDirName)
}

func (s *JSONStore) SaveRun(run domain.RunRecord) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = s.now()
	}
	toSave.StartedAt = toSave.StartedAt.UTC()
	if !toSave.EndedAt.IsZero() {
		toSave.EndedAt = toSave.EndedAt.UTC()
	}

	id := uniqueID(dir, toSave.StartedAt.Format("20060102T150405Z")+"_derangement")
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

// uniqueID appends _2, _3, ... when a run with the same second already exists.
func uniqueID(dir, base string) string {
	id := base
	for i := 2; fileExists(filepath.Join(dir, id+".json")); i++ {
		id = fmt.Sprintf("%s_%d", base, i)
	}
	return id
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, run domain.RunRecord) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Input     int       `json:"input"`
		Result    int64     `json:"result"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Input:     run.Input,
		Result:    run.Result,
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}
