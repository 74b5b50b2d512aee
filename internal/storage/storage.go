// Package storage persists the test report where TDD Guard reads it.
package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/tddguard/cargo-reporter/internal/errors"
	"github.com/tddguard/cargo-reporter/internal/report"
	"github.com/tddguard/cargo-reporter/internal/schema"
)

// ReportFileName is the report file inside the data directory.
const ReportFileName = "test.json"

const (
	maxLockRetries = 50
	lockRetryDelay = 10 * time.Millisecond
)

// ErrNoReport is returned by Load when no report has been saved yet.
var ErrNoReport = stderrors.New("no test report found")

// ErrLocked is returned when another process holds the report lock.
var ErrLocked = stderrors.New("test report is locked by another process")

// Store reads and writes the report of one project.
type Store struct {
	dir string
}

// New returns a Store for dataDir, resolved against projectRoot when relative.
func New(projectRoot, dataDir string) *Store {
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(projectRoot, dataDir)
	}
	return &Store{dir: dataDir}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the report file path.
func (s *Store) Path() string { return filepath.Join(s.dir, ReportFileName) }

func (s *Store) lockPath() string { return s.Path() + ".lock" }

// Save validates the report against the schema and replaces the stored one.
func (s *Store) Save(r *report.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Storage("save", fmt.Errorf("marshal report: %w", err))
	}
	if err := schema.ValidateReport(data); err != nil {
		return errors.Validation("refusing to save invalid report", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Storage("save", err)
	}

	err = s.withLock(func() error {
		return writeFileAtomic(s.Path(), data, 0o644)
	})
	if err != nil {
		return errors.Storage("save", err)
	}
	return nil
}

// Load reads the stored report. It returns ErrNoReport when none exists.
func (s *Store) Load() (*report.Report, error) {
	data, err := os.ReadFile(s.Path())
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, errors.Storage("load", err)
	}

	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Storage("load", fmt.Errorf("decode %s: %w", s.Path(), err))
	}
	return &r, nil
}

// withLock executes fn while holding an exclusive lock on the report.
// The lock lives in a sibling file so the atomic rename cannot drop it.
func (s *Store) withLock(fn func() error) error {
	lock := flock.New(s.lockPath())

	var locked bool
	var err error
	for i := 0; i < maxLockRetries; i++ {
		locked, err = lock.TryLock()
		if err != nil {
			return stderrors.Join(ErrLocked, err)
		}
		if locked {
			break
		}
		time.Sleep(lockRetryDelay)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}
