package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is a descriptor encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON // JSON with comments and trailing commas
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DescriptorNames are the file names FindDescriptor looks for, in order.
var DescriptorNames = []string{"devenv.toml", "devenv.yaml", "devenv.yml", "devenv.json", "devenv.jsonc"}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unsupported descriptor extension %q (want .toml, .yaml or .json)", filepath.Ext(path))
}

// FindDescriptor returns the first descriptor present in dir.
func FindDescriptor(dir string) (string, error) {
	for _, name := range DescriptorNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no descriptor (%s) in %s: %w", strings.Join(DescriptorNames, ", "), dir, os.ErrNotExist)
}

// LoadFile reads and validates the descriptor at path.
func LoadFile(path string) (*Model, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.path = path
	return m, nil
}

// Parse validates a descriptor in one pass and builds the model. It fails
// with a *MalformedConfigError or a *DuplicateHookError.
func Parse(data []byte, format Format) (*Model, error) {
	var (
		l   *layout
		doc document
		err error
	)
	switch format {
	case FormatTOML:
		l, err = parseTOML(data, &doc)
	case FormatYAML:
		l, err = parseYAML(data, &doc)
	case FormatJSON:
		l, err = parseJSON(jsonc.ToJSON(data), &doc)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, err
	}
	return doc.model(l)
}

type document struct {
	Languages map[string]languageDoc `toml:"languages" yaml:"languages" json:"languages"`
	Packages  []string               `toml:"packages" yaml:"packages" json:"packages"`
	PreCommit preCommitDoc           `toml:"pre-commit" yaml:"pre-commit" json:"pre-commit"`
}

type languageDoc struct {
	Enable  *bool    `toml:"enable" yaml:"enable" json:"enable"`
	Channel *string  `toml:"channel" yaml:"channel" json:"channel"`
	Targets []string `toml:"targets" yaml:"targets" json:"targets"`
}

type preCommitDoc struct {
	Hooks map[string]hookDoc `toml:"hooks" yaml:"hooks" json:"hooks"`
}

type hookDoc struct {
	Enable        *bool   `toml:"enable" yaml:"enable" json:"enable"`
	Entry         *string `toml:"entry" yaml:"entry" json:"entry"`
	PassFilenames *bool   `toml:"pass_filenames" yaml:"pass_filenames" json:"pass_filenames"`
}

func parseTOML(data []byte, doc *document) (*layout, error) {
	l, err := scanTOML(data)
	if err != nil {
		return nil, tomlSyntaxError(data, err)
	}
	if err := l.err(); err != nil {
		return nil, err
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) && len(missing.Errors) > 0 {
			keys := make([]string, 0, len(missing.Errors))
			for i := range missing.Errors {
				keys = append(keys, strings.Join(missing.Errors[i].Key(), "."))
			}
			return nil, &MalformedConfigError{Key: keys[0], Reason: "unknown option " + strings.Join(keys, ", ")}
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, &MalformedConfigError{Reason: fmt.Sprintf("line %d column %d", row, col), Err: derr}
		}
		return nil, &MalformedConfigError{Err: err}
	}
	return l, nil
}

// tomlSyntaxError re-parses a document the scanner rejected to get the
// decoder's positioned error.
func tomlSyntaxError(data []byte, scanErr error) error {
	var probe map[string]any
	var derr *toml.DecodeError
	if err := toml.Unmarshal(data, &probe); errors.As(err, &derr) {
		row, col := derr.Position()
		return &MalformedConfigError{Reason: fmt.Sprintf("line %d column %d", row, col), Err: derr}
	}
	return &MalformedConfigError{Reason: "invalid TOML", Err: scanErr}
}

func parseYAML(data []byte, doc *document) (*layout, error) {
	l, err := scanYAML(data)
	if err != nil {
		return nil, &MalformedConfigError{Reason: "invalid YAML", Err: err}
	}
	if err := l.err(); err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &MalformedConfigError{Err: err}
	}
	return l, nil
}

func parseJSON(data []byte, doc *document) (*layout, error) {
	l, err := scanJSON(data)
	if err != nil {
		if errors.Is(err, ErrMalformedConfig) {
			return nil, err
		}
		return nil, &MalformedConfigError{Reason: "invalid JSON", Err: err}
	}
	if err := l.err(); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedConfigError{Key: typeErr.Field, Reason: "expected " + typeErr.Type.String()}
		}
		return nil, &MalformedConfigError{Err: err}
	}
	return l, nil
}

func (d *document) model(l *layout) (*Model, error) {
	m := &Model{hookIndex: map[string]int{}}

	for _, name := range orderedKeys(d.Languages, l.languages) {
		key := "languages." + name
		if strings.TrimSpace(name) == "" {
			return nil, malformed(key, "empty language name")
		}
		ld := d.Languages[name]
		tc := ToolchainSpec{
			Name:    name,
			Enabled: valueOr(ld.Enable, false),
			Channel: valueOr(ld.Channel, ""),
		}
		if len(ld.Targets) > 0 {
			if !tc.Enabled {
				return nil, malformed(key+".targets", "targets require enable = true")
			}
			for i, t := range ld.Targets {
				if strings.TrimSpace(t) == "" {
					return nil, malformed(fmt.Sprintf("%s.targets[%d]", key, i), "empty target")
				}
			}
			tc.Targets = append([]string(nil), ld.Targets...)
		}
		m.toolchains = append(m.toolchains, tc)
	}

	for i, p := range d.Packages {
		if strings.TrimSpace(p) == "" {
			return nil, malformed(fmt.Sprintf("packages[%d]", i), "empty package name")
		}
	}
	m.packages = NewPackageList(d.Packages...)

	for _, id := range orderedKeys(d.PreCommit.Hooks, l.hooks) {
		h, err := d.PreCommit.Hooks[id].spec(id)
		if err != nil {
			return nil, err
		}
		m.hookIndex[id] = len(m.hooks)
		m.hooks = append(m.hooks, h)
	}
	return m, nil
}

func (hd hookDoc) spec(id string) (HookSpec, error) {
	key := "pre-commit.hooks." + id
	if strings.TrimSpace(id) == "" {
		return HookSpec{}, malformed(key, "empty hook id")
	}
	h := HookSpec{ID: id, PassFilenames: true}
	if b, ok := builtinHooks[id]; ok {
		h.Entry, h.PassFilenames = b.Entry, b.PassFilenames
	}
	h.Enabled = valueOr(hd.Enable, false)
	h.Entry = valueOr(hd.Entry, h.Entry)
	h.PassFilenames = valueOr(hd.PassFilenames, h.PassFilenames)
	if h.Enabled && strings.TrimSpace(h.Entry) == "" {
		return HookSpec{}, malformed(key+".entry", "enabled hook needs an entry command")
	}
	return h, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
