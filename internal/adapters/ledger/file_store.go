package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

const indent = "    "

// FileStore keeps the deployment ledger in a single JSON file.
//
// Every Write reads the whole file, updates one slot and rewrites it. There
// is no locking, so only one process may write a given ledger at a time.
type FileStore struct {
	path string
	log  *slog.Logger
}

// Open returns a store backed by the file at path. The file is not touched
// until the first Read or Write.
func Open(path string, log *slog.Logger) *FileStore {
	return &FileStore{
		path: path,
		log:  log.With(slog.String("ledger", path)),
	}
}

// NewFileStore creates the store configured for the current project
func NewFileStore(cfg *config.RuntimeConfig, log *slog.Logger) *FileStore {
	path := cfg.LedgerPath
	if path == "" {
		path = config.DefaultLedgerFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	return Open(path, log)
}

// Path returns the ledger file location
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the entry for (contractName, networkName). Absence and
// unreadable files both yield (nil, false).
func (s *FileStore) Read(ctx context.Context, contractName, networkName string) (*models.LedgerEntry, bool) {
	ledger, err := s.load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info(contractName+" not found", slog.String("network", networkName), slog.String("reason", "no ledger file"))
		} else {
			s.log.Error("failed to read ledger", slog.String("contract", contractName), slog.String("error", err.Error()))
		}
		return nil, false
	}

	entry, ok := ledger.Get(contractName, networkName)
	if !ok {
		s.log.Info(contractName+" not found", slog.String("network", networkName))
		return nil, false
	}
	return &entry, true
}

// Load returns the whole ledger. A missing file is an empty ledger.
func (s *FileStore) Load(ctx context.Context) (models.Ledger, error) {
	ledger, err := s.load()
	if errors.Is(err, fs.ErrNotExist) {
		return models.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return ledger, nil
}

// Write sets the entry for (contractName, networkName), replacing any
// previous one, and rewrites the file.
func (s *FileStore) Write(ctx context.Context, contractName, networkName string, entry models.LedgerEntry) error {
	if err := s.ensureExists(); err != nil {
		return err
	}

	ledger, err := s.load()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if prev, existed := ledger.Set(contractName, networkName, entry); existed && prev.Address != entry.Address {
		s.log.Warn("overwriting ledger entry",
			slog.String("contract", contractName),
			slog.String("network", networkName),
			slog.String("previous", prev.Address),
			slog.String("address", entry.Address),
		)
	}

	if err := s.save(ledger); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	s.log.Info("contract information updated",
		slog.String("contract", contractName),
		slog.String("network", networkName),
		slog.String("address", entry.Address),
	)
	return nil
}

func (s *FileStore) ensureExists() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	s.log.Info("ledger file does not exist, creating")
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) load() (models.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	ledger := models.Ledger{}
	if len(bytes.TrimSpace(data)) == 0 {
		return ledger, nil
	}
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("invalid ledger json: %w", err)
	}
	// a literal null decodes to a nil map
	if ledger == nil {
		ledger = models.Ledger{}
	}
	return ledger, nil
}

// save writes to a temp file in the same directory and renames it over the ledger
func (s *FileStore) save(ledger models.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", indent)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, s.path)
}
