package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"typecaster/typedesc"
)

var (
	ErrMissingName   = errors.New("record or field is missing a name")
	ErrMissingType   = errors.New("field is missing a type")
	ErrDuplicateName = errors.New("duplicate record name")
)

// File is the YAML document shape: named record schemas plus field
// mappings between the two sides of the bridge.
type File struct {
	Records []RecordDef       `yaml:"records"`
	Fields  []FieldMappingDef `yaml:"fields"`
}

// RecordDef declares a named record schema.
type RecordDef struct {
	Name   string           `yaml:"name"`
	Total  *bool            `yaml:"total"`
	Extra  string           `yaml:"extra"`
	Fields []RecordFieldDef `yaml:"fields"`
}

// RecordFieldDef declares one record field. Required, when set, overrides
// the record's total flag for this field.
type RecordFieldDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required *bool  `yaml:"required"`
}

// FieldMappingDef declares a field's name and type on each side.
// ExternalName defaults to Name.
type FieldMappingDef struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	ExternalName string `yaml:"external_name"`
	ExternalType string `yaml:"external_type"`
	Required     bool   `yaml:"required"`
}

// Parse reads a schema document from YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}

	for _, r := range f.Records {
		if r.Name == "" {
			return nil, ErrMissingName
		}
		for _, field := range r.Fields {
			if field.Name == "" {
				return nil, ErrMissingName
			}
			if field.Type == "" {
				return nil, fmt.Errorf("%w: record %s field %s", ErrMissingType, r.Name, field.Name)
			}
		}
	}
	for _, fd := range f.Fields {
		if fd.Name == "" {
			return nil, ErrMissingName
		}
		if fd.Type == "" || fd.ExternalType == "" {
			return nil, fmt.Errorf("%w: field %s", ErrMissingType, fd.Name)
		}
	}

	return &f, nil
}

// Load reads and parses a schema file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return Parse(data)
}

// Schema is the built form of a File: record descriptors by name and the
// field definitions ready for converter resolution.
type Schema struct {
	Records map[string]*typedesc.Type
	Fields  []FieldDef
}

// Build turns the parsed document into descriptors. Records may reference
// records declared earlier in the same document; forward references are not
// resolved.
func (f *File) Build() (*Schema, error) {
	s := &Schema{Records: make(map[string]*typedesc.Type, len(f.Records))}

	for _, r := range f.Records {
		if _, exists := s.Records[r.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, r.Name)
		}

		rec, err := buildRecord(r, s.Records)
		if err != nil {
			return nil, err
		}
		s.Records[r.Name] = rec
	}

	for _, fd := range f.Fields {
		def, err := buildField(fd, s.Records)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, def)
	}

	return s, nil
}

func buildRecord(r RecordDef, records map[string]*typedesc.Type) (*typedesc.Type, error) {
	var opts []typedesc.RecordOption
	if r.Total != nil {
		opts = append(opts, typedesc.WithTotal(*r.Total))
	}

	for _, field := range r.Fields {
		t, err := ParseType(field.Type, records)
		if err != nil {
			return nil, fmt.Errorf("record %s field %s: %w", r.Name, field.Name, err)
		}
		if field.Required != nil {
			if *field.Required {
				t = typedesc.Required(t)
			} else {
				t = typedesc.NotRequired(t)
			}
		}
		opts = append(opts, typedesc.WithField(field.Name, t))
	}

	if r.Extra != "" {
		extra, err := ParseType(r.Extra, records)
		if err != nil {
			return nil, fmt.Errorf("record %s extra items: %w", r.Name, err)
		}
		opts = append(opts, typedesc.WithExtra(extra))
	}

	return typedesc.NewRecord(r.Name, opts...), nil
}

func buildField(fd FieldMappingDef, records map[string]*typedesc.Type) (FieldDef, error) {
	t, err := ParseType(fd.Type, records)
	if err != nil {
		return FieldDef{}, fmt.Errorf("field %s: %w", fd.Name, err)
	}
	ext, err := ParseType(fd.ExternalType, records)
	if err != nil {
		return FieldDef{}, fmt.Errorf("field %s external type: %w", fd.Name, err)
	}

	externalName := fd.ExternalName
	if externalName == "" {
		externalName = fd.Name
	}

	return FieldDef{
		Name:         fd.Name,
		ExternalName: externalName,
		Type:         t,
		ExternalType: ext,
		Required:     fd.Required,
	}, nil
}
