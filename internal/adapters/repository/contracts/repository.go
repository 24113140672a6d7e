package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// Repository discovers compiled artifacts under the Foundry and Hardhat
// output directories
type Repository struct {
	projectRoot string
	dirs        []string
	byName      map[string][]*models.Artifact // key: contract name
	byFQN       map[string]*models.Artifact   // key: "source:Name"
	log         *slog.Logger
	mu          sync.RWMutex
	indexed     bool
}

// NewRepository creates a new artifact repository. dirs are relative to projectRoot.
func NewRepository(projectRoot string, dirs []string, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot: projectRoot,
		dirs:        dirs,
		log:         log,
		byName:      make(map[string][]*models.Artifact),
		byFQN:       make(map[string]*models.Artifact),
	}
}

// NewRepositoryFromConfig creates a repository over the configured artifact directories
func NewRepositoryFromConfig(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	var dirs []string
	if cfg.Project != nil {
		dirs = cfg.Project.Artifacts
	}
	if len(dirs) == 0 {
		dirs = []string{"out", "artifacts"}
	}
	return NewRepository(cfg.ProjectRoot, dirs, log)
}

// Index walks every artifact directory once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.byName = make(map[string][]*models.Artifact)
	r.byFQN = make(map[string]*models.Artifact)

	for _, dir := range r.dirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.projectRoot, dir)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			r.log.Debug("artifact directory not found", "dir", root)
			continue
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}
			return r.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", root, err)
		}
	}

	r.indexed = true
	return nil
}

func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every json file under out/ is an artifact
		r.log.Debug("skipping non-artifact file", "path", path, "error", err)
		return nil
	}

	if artifact.ContractName == "" {
		artifact.ContractName = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if len(artifact.ABI) == 0 {
		return nil
	}

	rel, _ := filepath.Rel(r.projectRoot, path)
	artifact.Path = rel

	r.log.Debug("indexed artifact", "contract", artifact.ContractName, "source", artifact.SourceName, "path", rel)

	a := &artifact
	r.byName[a.ContractName] = append(r.byName[a.ContractName], a)
	if a.SourceName != "" {
		r.byFQN[a.FullyQualifiedName()] = a
	}
	return nil
}

// GetArtifact returns the deployable artifact for a contract name or "source:Name"
func (r *Repository) GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.byFQN[contractName]; ok {
		return a, nil
	}

	var deployable []*models.Artifact
	seen := make(map[string]bool)
	for _, a := range r.byName[contractName] {
		// Foundry and Hardhat may both have compiled the same source
		if !a.IsDeployable() || seen[a.FullyQualifiedName()] {
			continue
		}
		seen[a.FullyQualifiedName()] = true
		deployable = append(deployable, a)
	}

	switch len(deployable) {
	case 1:
		return deployable[0], nil
	case 0:
		if len(r.byName[contractName]) > 0 {
			return nil, &domain.ConfigurationError{
				Contract: contractName,
				Reason:   "artifact has no creation bytecode (abstract contract or interface?)",
				Err:      domain.ErrArtifactNotFound,
			}
		}
		reason := "no compiled artifact found; compile the project first"
		if suggestions := r.suggest(contractName); len(suggestions) > 0 {
			reason = fmt.Sprintf("no compiled artifact found, did you mean %s?", strings.Join(suggestions, ", "))
		}
		return nil, &domain.ConfigurationError{Contract: contractName, Reason: reason, Err: domain.ErrArtifactNotFound}
	default:
		names := make([]string, len(deployable))
		for i, a := range deployable {
			names[i] = a.FullyQualifiedName()
		}
		sort.Strings(names)
		return nil, &domain.ConfigurationError{
			Contract: contractName,
			Reason:   fmt.Sprintf("ambiguous contract name, use one of: %s", strings.Join(names, ", ")),
		}
	}
}

// ListContracts returns every deployable contract name, sorted
func (r *Repository) ListContracts(ctx context.Context) ([]string, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.deployableNames(), nil
}

func (r *Repository) deployableNames() []string {
	var names []string
	for name, artifacts := range r.byName {
		for _, a := range artifacts {
			if a.IsDeployable() {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

func (r *Repository) suggest(name string) []string {
	matches := fuzzy.Find(name, r.deployableNames())
	var out []string
	for i, m := range matches {
		if i == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
