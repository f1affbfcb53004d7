package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 3

// Loader discovers and parses Hardhat and Foundry artifacts under one directory
type Loader struct {
	projectRoot  string
	artifactsDir string
	log          *slog.Logger

	once    sync.Once
	err     error
	entries []*models.ContractInfo            // sorted by name, then source
	byName  map[string][]*models.ContractInfo // contract name -> all sources declaring it
	byFQN   map[string]*models.ContractInfo   // Source.sol:Name -> artifact
}

// NewLoader creates a loader for artifactsDir. Paths in the index are kept
// relative to projectRoot.
func NewLoader(projectRoot, artifactsDir string, log *slog.Logger) *Loader {
	return &Loader{
		projectRoot:  projectRoot,
		artifactsDir: artifactsDir,
		log:          log.With("component", "artifacts"),
	}
}

// ProvideLoader creates a Loader for Wire dependency injection
func ProvideLoader(cfg *config.RuntimeConfig, log *slog.Logger) *Loader {
	return NewLoader(cfg.ProjectRoot, cfg.ArtifactsDir, log)
}

// List returns every deployable artifact, sorted by name
func (l *Loader) List(ctx context.Context) ([]*models.ContractInfo, error) {
	if err := l.index(); err != nil {
		return nil, err
	}
	out := make([]*models.ContractInfo, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

// Load resolves ref and parses the artifact. ref is a bare contract name,
// Source.sol:Name or a path to the artifact JSON.
func (l *Loader) Load(ctx context.Context, ref string) (*models.Contract, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty contract reference", domain.ErrContractNotFound)
	}

	if strings.HasSuffix(ref, ".json") {
		return l.parseFile(l.absPath(ref))
	}

	if err := l.index(); err != nil {
		return nil, err
	}

	info, err := l.lookup(ref)
	if err != nil {
		return nil, err
	}
	return l.parseFile(l.absPath(info.ArtifactPath))
}

func (l *Loader) lookup(ref string) (*models.ContractInfo, error) {
	if strings.Contains(ref, ":") {
		source, name, _ := strings.Cut(ref, ":")
		if info, ok := l.byFQN[filepath.Base(source)+":"+name]; ok {
			return info, nil
		}
		return nil, domain.ContractNotFoundErr{Query: ref, Suggestions: l.suggest(name)}
	}

	matches := l.byName[ref]
	switch len(matches) {
	case 0:
		return nil, domain.ContractNotFoundErr{Query: ref, Suggestions: l.suggest(ref)}
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousContractErr{
			Query: ref,
			Matches: lo.Map(matches, func(info *models.ContractInfo, _ int) string {
				return info.Source + ":" + info.Name
			}),
		}
	}
}

func (l *Loader) suggest(query string) []string {
	names := lo.Keys(l.byName)
	sort.Strings(names)

	found := fuzzy.Find(query, names)
	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range found {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	if len(suggestions) > 0 {
		return suggestions
	}

	// fuzzy needs the query characters in order; fall back to case folding
	for _, name := range names {
		if strings.EqualFold(name, query) {
			return []string{name}
		}
	}
	return nil
}

func (l *Loader) index() error {
	l.once.Do(func() {
		l.err = l.scan()
	})
	return l.err
}

// artifactHeader is the subset of an artifact needed for indexing
type artifactHeader struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     models.Bytecode `json:"bytecode"`
	Metadata     json.RawMessage `json:"metadata"`
}

// compilationTarget reads Foundry's metadata.settings.compilationTarget,
// which holds the single source -> contract pair the artifact was built for
func (h *artifactHeader) compilationTarget() (source, name string) {
	var metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	}
	if len(h.Metadata) == 0 || json.Unmarshal(h.Metadata, &metadata) != nil {
		return "", ""
	}
	for src, contract := range metadata.Settings.CompilationTarget {
		return src, contract
	}
	return "", ""
}

func (l *Loader) scan() error {
	if _, err := os.Stat(l.artifactsDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("artifacts directory %s not found, compile the contracts first", l.relPath(l.artifactsDir))
		}
		return err
	}

	l.byName = make(map[string][]*models.ContractInfo)
	l.byFQN = make(map[string]*models.ContractInfo)

	err := filepath.WalkDir(l.artifactsDir, func(path string, d os.DirEntry, err error) error {
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

		info, deployable, ok := l.readHeader(path)
		if !ok {
			return nil
		}
		key := info.Source + ":" + info.Name
		if _, dup := l.byFQN[key]; dup {
			return nil
		}
		l.byFQN[key] = info
		l.byName[info.Name] = append(l.byName[info.Name], info)
		if deployable {
			l.entries = append(l.entries, info)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	sort.SliceStable(l.entries, func(i, j int) bool {
		if l.entries[i].Name != l.entries[j].Name {
			return l.entries[i].Name < l.entries[j].Name
		}
		return l.entries[i].Source < l.entries[j].Source
	})
	l.log.Debug("indexed artifacts", "dir", l.artifactsDir, "count", len(l.entries))
	return nil
}

// readHeader extracts the contract name and source file. Files that are not
// artifacts are skipped.
func (l *Loader) readHeader(path string) (info *models.ContractInfo, deployable, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return nil, false, false
	}

	var header artifactHeader
	if err := json.Unmarshal(data, &header); err != nil || len(header.ABI) == 0 {
		return nil, false, false
	}

	name, source := header.ContractName, header.SourceName
	if name == "" {
		source, name = header.compilationTarget()
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".json")
		source = filepath.Base(filepath.Dir(path))
	}
	if !strings.HasSuffix(source, ".sol") {
		source = filepath.Base(filepath.Dir(path))
	}

	info = &models.ContractInfo{
		Name:         name,
		Source:       filepath.Base(source),
		ArtifactPath: l.relPath(path),
	}
	return info, !header.Bytecode.IsEmpty(), true
}

func (l *Loader) parseFile(path string) (*models.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ContractNotFoundErr{Query: l.relPath(path)}
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	contract, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.relPath(path), err)
	}
	contract.ArtifactPath = l.relPath(path)
	if contract.Name == "" {
		contract.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if contract.Source == "" {
		contract.Source = filepath.Base(filepath.Dir(path))
	}
	return contract, nil
}

// Parse decodes a Hardhat or Foundry artifact and checks it can be deployed
func Parse(data []byte) (*models.Contract, error) {
	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("invalid artifact JSON: %w", err)
	}

	contract := &models.Contract{
		Name: artifact.ContractName,
	}
	if artifact.SourceName != "" {
		contract.Source = filepath.Base(artifact.SourceName)
	}
	if contract.Name == "" {
		var header artifactHeader
		if json.Unmarshal(data, &header) == nil {
			if src, name := header.compilationTarget(); name != "" {
				contract.Name, contract.Source = name, filepath.Base(src)
			}
		}
	}

	if len(bytes.TrimSpace(artifact.ABI)) == 0 {
		return nil, fmt.Errorf("artifact has no ABI")
	}
	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI: %w", err)
	}
	contract.ABI = parsed

	if artifact.Bytecode.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", contract.Name, domain.ErrNotDeployable)
	}
	if artifact.Bytecode.HasLinkPlaceholders() {
		return nil, fmt.Errorf("%s: %w", contract.Name, domain.ErrUnlinkedLibrary)
	}

	code := artifact.Bytecode.Object
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	contract.Bytecode, err = hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}

	return contract, nil
}

func (l *Loader) absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.projectRoot, path)
}

func (l *Loader) relPath(path string) string {
	rel, err := filepath.Rel(l.projectRoot, path)
	if err != nil {
		return path
	}
	return rel
}

var _ usecase.ArtifactRepository = (*Loader)(nil)
