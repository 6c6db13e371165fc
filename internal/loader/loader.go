// Package loader ingests extracted component metadata. The analyzer
// trusts whatever extraction produced the document; this package only
// decodes and validates shape, it never inspects application code.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cda/internal/errors"
	"cda/internal/logging"
	"cda/internal/model"
)

// Document is the on-disk metadata schema
type Document struct {
	Components []RawComponent `json:"components" yaml:"components" toml:"components"`
}

// RawComponent mirrors model.Component with free-form role/mechanism
// strings, decoded before validation
type RawComponent struct {
	ID           string    `json:"id" yaml:"id" toml:"id"`
	Role         string    `json:"role" yaml:"role" toml:"role"`
	LazyInit     bool      `json:"lazyInit" yaml:"lazyInit" toml:"lazyInit"`
	Primary      bool      `json:"primary" yaml:"primary" toml:"primary"`
	HasLazyDeps  bool      `json:"hasLazyDeps" yaml:"hasLazyDeps" toml:"hasLazyDeps"`
	Dependencies []RawEdge `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

// RawEdge mirrors model.InjectionEdge before mechanism validation
type RawEdge struct {
	Target         string `json:"target" yaml:"target" toml:"target"`
	Mechanism      string `json:"mechanism" yaml:"mechanism" toml:"mechanism"`
	Required       bool   `json:"required" yaml:"required" toml:"required"`
	Qualifier      string `json:"qualifier" yaml:"qualifier" toml:"qualifier"`
	InjectionPoint string `json:"injectionPoint" yaml:"injectionPoint" toml:"injectionPoint"`
}

// Loader reads and validates metadata documents
type Loader struct {
	logger *logging.Logger
}

// NewLoader creates a loader
func NewLoader(logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Loader{logger: logger}
}

// LoadFile reads a metadata file, decompressing .zst transparently and
// decoding by extension (.json, .yaml/.yml, .toml).
func (l *Loader) LoadFile(path string) ([]*model.Component, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.MetadataParseFailed, "cannot open metadata file", err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	name := path
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.New(errors.MetadataParseFailed, "cannot open zstd stream", err)
		}
		defer dec.Close()
		reader = dec
		name = strings.TrimSuffix(path, ".zst")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.New(errors.MetadataParseFailed, "cannot read metadata file", err)
	}

	return l.Load(data, filepath.Ext(name))
}

// Load decodes a metadata document from bytes. Ext selects the codec
// (".json", ".yaml", ".yml", ".toml").
func (l *Loader) Load(data []byte, ext string) ([]*model.Component, error) {
	var doc Document
	var err error

	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, errors.New(errors.MetadataUnsupportedFormat,
			fmt.Sprintf("unsupported metadata format %q", ext), nil)
	}
	if err != nil {
		return nil, errors.New(errors.MetadataParseFailed, "cannot decode metadata document", err)
	}

	return l.convert(doc), nil
}

// convert validates raw components one by one. A malformed component or
// edge is logged and skipped; the rest of the document still loads.
func (l *Loader) convert(doc Document) []*model.Component {
	components := make([]*model.Component, 0, len(doc.Components))

	for i, raw := range doc.Components {
		comp, err := l.convertComponent(raw)
		if err != nil {
			l.logger.Warn("Skipping malformed component", map[string]interface{}{
				"index": i,
				"id":    raw.ID,
				"error": err.Error(),
			})
			continue
		}
		components = append(components, comp)
	}

	return components
}

func (l *Loader) convertComponent(raw RawComponent) (*model.Component, error) {
	comp, err := model.NewComponent(raw.ID, model.ParseRole(raw.Role), nil)
	if err != nil {
		return nil, err
	}
	comp.LazyInit = raw.LazyInit
	comp.Primary = raw.Primary
	comp.HasLazyDeps = raw.HasLazyDeps

	edges := make([]model.InjectionEdge, 0, len(raw.Dependencies))
	for _, re := range raw.Dependencies {
		mech, err := model.ParseMechanism(re.Mechanism)
		if err != nil {
			l.logger.Warn("Skipping injection edge with unknown mechanism", map[string]interface{}{
				"source":    raw.ID,
				"target":    re.Target,
				"mechanism": re.Mechanism,
			})
			continue
		}
		if strings.TrimSpace(re.Target) == "" {
			l.logger.Warn("Skipping injection edge without target", map[string]interface{}{
				"source": raw.ID,
			})
			continue
		}
		edges = append(edges, model.InjectionEdge{
			Source:         raw.ID,
			Target:         re.Target,
			Mechanism:      mech,
			Required:       re.Required,
			Qualifier:      re.Qualifier,
			InjectionPoint: re.InjectionPoint,
		})
	}
	comp.Dependencies = edges

	return comp, nil
}
