package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

// layout records the order in which languages and hooks first appear in a
// document and the first hook id that is declared twice. Decoding into Go
// maps loses both, so every format is scanned before it is decoded.
type layout struct {
	languages []string
	hooks     []string

	seenLanguage map[string]bool
	seenHook     map[string]bool
	declared     map[string]bool
	duplicate    string
}

func newLayout() *layout {
	return &layout{
		seenLanguage: map[string]bool{},
		seenHook:     map[string]bool{},
		declared:     map[string]bool{},
	}
}

// record notes a key path. declares is false for paths that extend an
// existing definition instead of introducing one (TOML array tables).
func (l *layout) record(path []string, declares bool) {
	switch {
	case len(path) >= 2 && path[0] == "languages":
		if !l.seenLanguage[path[1]] {
			l.seenLanguage[path[1]] = true
			l.languages = append(l.languages, path[1])
		}
	case len(path) >= 3 && path[0] == "pre-commit" && path[1] == "hooks":
		id := path[2]
		if !l.seenHook[id] {
			l.seenHook[id] = true
			l.hooks = append(l.hooks, id)
		}
		if !declares || len(path) != 3 {
			return
		}
		if l.declared[id] && l.duplicate == "" {
			l.duplicate = id
		}
		l.declared[id] = true
	}
}

func (l *layout) err() error {
	if l.duplicate != "" {
		return &DuplicateHookError{ID: l.duplicate}
	}
	return nil
}

func extend(path []string, keys ...string) []string {
	out := make([]string, 0, len(path)+len(keys))
	out = append(out, path...)
	return append(out, keys...)
}

func scanTOML(data []byte) (*layout, error) {
	l := newLayout()
	var p unstable.Parser
	p.Reset(data)
	var table []string
	inArray := false
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table:
			table, inArray = tomlKey(e.Key()), false
			l.record(table, true)
		case unstable.ArrayTable:
			table, inArray = tomlKey(e.Key()), true
			l.record(table, false)
		case unstable.KeyValue:
			if inArray {
				continue
			}
			l.visitTOML(extend(table, tomlKey(e.Key())...), e.Value())
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *layout) visitTOML(path []string, value *unstable.Node) {
	l.record(path, true)
	if value.Kind != unstable.InlineTable {
		return
	}
	it := value.Children()
	for it.Next() {
		kv := it.Node()
		l.visitTOML(extend(path, tomlKey(kv.Key())...), kv.Value())
	}
}

func tomlKey(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func scanYAML(data []byte) (*layout, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	l := newLayout()
	if len(root.Content) > 0 {
		l.visitYAML(nil, root.Content[0])
	}
	return l, nil
}

func (l *layout) visitYAML(path []string, n *yaml.Node) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := extend(path, n.Content[i].Value)
		l.record(key, true)
		l.visitYAML(key, n.Content[i+1])
	}
}

func scanJSON(data []byte) (*layout, error) {
	l := newLayout()
	if len(bytes.TrimSpace(data)) == 0 {
		return l, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := l.visitJSON(dec, nil, true); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("", "unexpected content after the top-level value")
	}
	return l, nil
}

// visitJSON walks one value from the token stream. Objects nested in arrays
// are consumed without being recorded. A key repeated within one object is
// malformed, except for hook ids which are left to the duplicate check.
func (l *layout) visitJSON(dec *json.Decoder, path []string, recording bool) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '{':
		seen := map[string]bool{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := tok.(string)
			child := extend(path, key)
			if seen[key] && !isHookPath(child) {
				return malformed(strings.Join(child, "."), "key %q already defined", key)
			}
			seen[key] = true
			if recording {
				l.record(child, true)
			}
			if err := l.visitJSON(dec, child, recording); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := l.visitJSON(dec, path, false); err != nil {
				return err
			}
		}
	}
	_, err = dec.Token()
	return err
}

func isHookPath(path []string) bool {
	return len(path) == 3 && path[0] == "pre-commit" && path[1] == "hooks"
}

// orderedKeys returns the keys of m in document order, falling back to
// sorted order for anything the scan did not see.
func orderedKeys[V any](m map[string]V, order []string) []string {
	keys := make([]string, 0, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !slices.Contains(keys, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}
