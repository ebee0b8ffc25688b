package bib

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExtendsDefault makes a mapping file start from DefaultMapping.
const ExtendsDefault = "default"

// MappingFile is the YAML form of a Mapping:
//
//	extends: default
//	common:
//	  - {key: author, compute: authors}
//	  - year
//	types:
//	  JournalArticle:
//	    entry: article
//	    fields:
//	      - {key: journal, column: publication}
//	      - volume
//	remove: [Patent]
//
// With extends set, common replaces the default common rules only when
// given, each listed type replaces the default one, and remove drops
// types from the result.
type MappingFile struct {
	Extends string              `yaml:"extends,omitempty" json:"extends,omitempty"`
	Common  []RuleSpec          `yaml:"common,omitempty"  json:"common,omitempty"`
	Types   map[string]TypeSpec `yaml:"types,omitempty"   json:"types,omitempty"`
	Remove  []string            `yaml:"remove,omitempty"  json:"remove,omitempty"`
}

// TypeSpec is one source type in a mapping file.
type TypeSpec struct {
	Entry  string     `yaml:"entry"            json:"entry"`
	Fields []RuleSpec `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// RuleSpec is one rule in a mapping file. A bare scalar is a direct
// column copy.
type RuleSpec struct {
	Key     string `yaml:"key"               json:"key"`
	Column  string `yaml:"column,omitempty"  json:"column,omitempty"`
	Compute string `yaml:"compute,omitempty" json:"compute,omitempty"`
}

// UnmarshalYAML accepts a scalar column name or a key/column or
// key/compute mapping.
func (r *RuleSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var column string
		if err := node.Decode(&column); err != nil {
			return err
		}
		*r = RuleSpec{Key: column, Column: column}
		return nil

	case yaml.MappingNode:
		type plain RuleSpec
		var spec plain
		if err := node.Decode(&spec); err != nil {
			return err
		}
		*r = RuleSpec(spec)
		if r.Column == "" && r.Compute == "" {
			r.Column = r.Key
		}
		return nil

	default:
		return fmt.Errorf("line %d: expected column name or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes direct rules as bare scalars.
func (r RuleSpec) MarshalYAML() (any, error) {
	if r.Compute == "" && r.Column == r.Key {
		return r.Key, nil
	}
	type plain RuleSpec
	return plain(r), nil
}

// Rule builds the rule described by the spec.
func (r RuleSpec) Rule() (Rule, error) {
	switch {
	case r.Key == "":
		return nil, errors.New("rule has no key")
	case r.Column != "" && r.Compute != "":
		return nil, fmt.Errorf("rule %q sets both column and compute", r.Key)
	case r.Compute != "":
		fn, ok := LookupCompute(r.Compute)
		if !ok {
			return nil, fmt.Errorf("rule %q: unknown compute function %q", r.Key, r.Compute)
		}
		return Computed(r.Key, r.Compute, fn), nil
	case r.Column == r.Key:
		return Direct(r.Column), nil
	default:
		return Renamed(r.Key, r.Column), nil
	}
}

func specOf(rule Rule) RuleSpec {
	switch r := rule.(type) {
	case DirectRule:
		return RuleSpec{Key: r.Column, Column: r.Column}
	case RenamedRule:
		return RuleSpec{Key: r.Field, Column: r.Column}
	case ComputedRule:
		return RuleSpec{Key: r.Field, Compute: r.Name}
	default:
		return RuleSpec{Key: rule.Key()}
	}
}

func buildRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		rule, err := spec.Rule()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Mapping builds the Mapping described by the file.
func (f *MappingFile) Mapping() (Mapping, error) {
	var (
		common []Rule
		types  = make(map[string]EntryType)
	)
	switch f.Extends {
	case "":
	case ExtendsDefault:
		base := DefaultMapping()
		common = base.Common()
		for _, name := range base.SourceTypes() {
			types[name], _ = base.Type(name)
		}
	default:
		return Mapping{}, fmt.Errorf("unknown base mapping %q", f.Extends)
	}

	if f.Common != nil {
		rules, err := buildRules(f.Common)
		if err != nil {
			return Mapping{}, fmt.Errorf("common: %w", err)
		}
		common = rules
	}

	for name, spec := range f.Types {
		if spec.Entry == "" {
			return Mapping{}, fmt.Errorf("type %s: missing entry tag", name)
		}
		rules, err := buildRules(spec.Fields)
		if err != nil {
			return Mapping{}, fmt.Errorf("type %s: %w", name, err)
		}
		types[name] = EntryType{Tag: spec.Entry, Rules: rules}
	}

	for _, name := range f.Remove {
		delete(types, name)
	}
	return NewMapping(common, types), nil
}

// FileOf returns the self-contained mapping file describing m.
func FileOf(m Mapping) *MappingFile {
	f := &MappingFile{Types: make(map[string]TypeSpec, len(m.types))}
	for _, rule := range m.common {
		f.Common = append(f.Common, specOf(rule))
	}
	for name, entry := range m.types {
		spec := TypeSpec{Entry: entry.Tag}
		for _, rule := range entry.Rules {
			spec.Fields = append(spec.Fields, specOf(rule))
		}
		f.Types[name] = spec
	}
	return f
}

// ParseMappingFile parses YAML data into a MappingFile.
func ParseMappingFile(data []byte) (*MappingFile, error) {
	var f MappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}
	return &f, nil
}

// ParseMapping parses YAML data and builds the mapping it describes.
func ParseMapping(data []byte) (Mapping, error) {
	f, err := ParseMappingFile(data)
	if err != nil {
		return Mapping{}, err
	}
	m, err := f.Mapping()
	if err != nil {
		return Mapping{}, fmt.Errorf("invalid mapping: %w", err)
	}
	return m, nil
}

// LoadMappingFile reads and builds the mapping file at path.
func LoadMappingFile(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	m, err := ParseMapping(data)
	if err != nil {
		return Mapping{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// MarshalMapping serializes m as a self-contained YAML mapping file.
func MarshalMapping(m Mapping) ([]byte, error) {
	return yaml.Marshal(FileOf(m))
}
