package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-genius/framework/container"
)

// ServicesFile is a decoded service definition document.
//
//	imports:
//	  - parameters.yaml
//	parameters:
//	  mailer:
//	    transport: sendmail
//	services:
//	  mailer:
//	    class: Mailer
//	    arguments: ['%mailer.transport%', 25]
//	    calls:
//	      - method: SetLogger
//	        arguments: ['@logger']
//	  mail: '@mailer'   # alias
//
// Argument strings starting with "@" reference a service, strings wrapped in
// "%" reference a parameter. "@@" and "%%" escape the first character.
type ServicesFile struct {
	Imports    []string                 `yaml:"imports"`
	Parameters map[string]any           `yaml:"parameters"`
	Services   map[string]*serviceEntry `yaml:"services"`
}

type serviceEntry struct {
	Alias     string      `yaml:"-"`
	Class     string      `yaml:"class"`
	Arguments []any       `yaml:"arguments"`
	Calls     []callEntry `yaml:"calls"`
}

type callEntry struct {
	Method    string `yaml:"method"`
	Arguments []any  `yaml:"arguments"`
}

// UnmarshalYAML accepts either a mapping or an "@name" alias scalar.
func (e *serviceEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		if !strings.HasPrefix(value.Value, "@") || len(value.Value) < 2 {
			return fmt.Errorf("line %d: service alias must look like '@name', got %q", value.Line, value.Value)
		}
		e.Alias = value.Value[1:]
		return nil
	}

	type plain serviceEntry
	return value.Decode((*plain)(e))
}

// LoadServices reads path and every file it imports. Imports are resolved
// relative to the importing file and applied before it, so the importing
// file wins on conflicts.
func LoadServices(path string) (*ServicesFile, error) {
	merged := &ServicesFile{
		Parameters: make(map[string]any),
		Services:   make(map[string]*serviceEntry),
	}
	if err := loadInto(merged, path, make(map[string]bool)); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadInto(dst *ServicesFile, path string, seen map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if seen[abs] {
		return fmt.Errorf("config: import cycle at %s", path)
	}
	seen[abs] = true
	defer delete(seen, abs)

	raw, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("config: reading services: %w", err)
	}

	file, err := ParseServices(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	for _, imp := range file.Imports {
		if !filepath.IsAbs(imp) {
			imp = filepath.Join(filepath.Dir(abs), imp)
		}
		if err := loadInto(dst, imp, seen); err != nil {
			return err
		}
	}

	container.Parameters(dst.Parameters).Merge(file.Parameters)
	for name, entry := range file.Services {
		dst.Services[name] = entry
	}
	return nil
}

// ParseServices decodes a single document without following imports.
// Mappings with non-string keys are converted to map[string]any, keys
// formatted with fmt.Sprint.
func ParseServices(raw []byte) (*ServicesFile, error) {
	var file ServicesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	for k, v := range file.Parameters {
		file.Parameters[k] = normalize(v)
	}
	for _, entry := range file.Services {
		if entry == nil {
			continue
		}
		normalizeAll(entry.Arguments)
		for _, call := range entry.Calls {
			normalizeAll(call.Arguments)
		}
	}
	return &file, nil
}

func normalizeAll(values []any) {
	for i, v := range values {
		values[i] = normalize(v)
	}
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalize(inner)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = normalize(inner)
		}
		return out
	case []any:
		normalizeAll(t)
		return t
	}
	return v
}

// Apply registers the file's parameters and definitions on b.
// Definitions are not validated here; a malformed entry fails on first Get.
// Only an alias pointing at itself is rejected.
func (f *ServicesFile) Apply(b *container.Builder) error {
	b.MergeParameters(f.Parameters)

	for name, entry := range f.Services {
		switch {
		case entry == nil:
			b.Define(name, nil)
		case entry.Alias == name:
			return fmt.Errorf("config: service %s is aliased to itself", name)
		case entry.Alias != "":
			b.Alias(entry.Alias, name)
		default:
			b.Define(name, entry.definition())
		}
	}
	return nil
}

func (e *serviceEntry) definition() *container.Definition {
	def := &container.Definition{
		Class:     e.Class,
		Arguments: ParseArguments(e.Arguments),
	}
	for _, call := range e.Calls {
		def.Calls = append(def.Calls, container.Call{
			Method:    call.Method,
			Arguments: ParseArguments(call.Arguments),
		})
	}
	return def
}

// ParseArguments converts decoded values into container arguments.
func ParseArguments(values []any) []container.Argument {
	if len(values) == 0 {
		return nil
	}
	args := make([]container.Argument, len(values))
	for i, v := range values {
		args[i] = ParseArgument(v)
	}
	return args
}

// ParseArgument maps "@name" to a service reference, "%path%" to a parameter
// reference and anything else to a literal.
func ParseArgument(v any) container.Argument {
	s, ok := v.(string)
	if !ok {
		return container.Value(v)
	}

	switch {
	case strings.HasPrefix(s, "@@"), strings.HasPrefix(s, "%%"):
		return container.Value(s[1:])
	case len(s) > 1 && s[0] == '@':
		return container.Service(s[1:])
	case len(s) > 2 && s[0] == '%' && s[len(s)-1] == '%':
		return container.Parameter(s[1 : len(s)-1])
	}
	return container.Value(s)
}
