package vocab

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the dataset format major version this build understands.
const SupportedMajor = "v1"

//go:embed words.json
var defaultDataset []byte

//go:embed schema.json
var datasetSchema []byte

var (
	// ErrUnsupportedVersion is returned when a dataset's major version is not SupportedMajor.
	ErrUnsupportedVersion = errors.New("unsupported dataset version")

	// ErrDuplicateID is returned when two entries share an ID.
	ErrDuplicateID = errors.New("duplicate entry id")
)

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

type dataset struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

// Default returns the bundled dataset.
func Default() (*Pool, error) {
	return Load(bytes.NewReader(defaultDataset))
}

// LoadFile reads a dataset from path. An empty path loads the bundled dataset.
func LoadFile(path string) (*Pool, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a dataset.
func Load(r io.Reader) (*Pool, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	schema, err := datasetValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	var ds dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if !semver.IsValid(ds.Version) || semver.Major(ds.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, ds.Version)
	}

	seen := make(map[int]bool, len(ds.Entries))
	for _, e := range ds.Entries {
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
	}

	return NewPool(ds.Version, ds.Entries), nil
}

func datasetValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(datasetSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse dataset schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://vocab-dataset.json", doc); err != nil {
			compileErr = fmt.Errorf("add dataset schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile("schema://vocab-dataset.json")
	})
	return compiled, compileErr
}
