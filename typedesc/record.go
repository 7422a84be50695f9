package typedesc

// Record describes a schema-bearing string-keyed map type: an ordered field
// set with per-field types and required status, plus an optional extra-items
// type for unlisted keys. Runtime values of a record type are map[string]any.
type Record struct {
	name   string
	fields []RecordField
	byName map[string]int
	extra  *Type // nil means the record is closed
	total  bool
}

// RecordField is a single declared field of a record.
type RecordField struct {
	Name string
	Type *Type

	required bool
}

// Required reports whether the field must be present after conversion.
func (f RecordField) Required() bool { return f.required }

// RecordOption configures a record under construction.
type RecordOption func(*recordBuilder)

type recordBuilder struct {
	fields []RecordField
	extra  *Type
	total  bool
}

// WithField declares a field. A Required/NotRequired qualifier on the field
// type overrides the record's total flag; the qualifier is stripped from the
// stored field type.
func WithField(name string, t *Type) RecordOption {
	return func(b *recordBuilder) {
		b.fields = append(b.fields, RecordField{Name: name, Type: t})
	}
}

// WithExtra opens the record: unlisted keys are accepted at the given type.
func WithExtra(t *Type) RecordOption {
	return func(b *recordBuilder) { b.extra = t }
}

// WithTotal sets the default required status for fields without an explicit
// Required/NotRequired qualifier. Records are total by default.
func WithTotal(total bool) RecordOption {
	return func(b *recordBuilder) { b.total = total }
}

// NewRecord builds a record descriptor. Two record descriptors are equal only
// when they come from the same NewRecord call; schemas are compared by
// identity, never structurally.
func NewRecord(name string, opts ...RecordOption) *Type {
	b := &recordBuilder{total: true}
	for _, opt := range opts {
		opt(b)
	}

	rec := &Record{
		name:   name,
		byName: make(map[string]int, len(b.fields)),
		extra:  b.extra,
		total:  b.total,
	}
	for _, f := range b.fields {
		if _, exists := rec.byName[f.Name]; exists {
			panic("typedesc: duplicate record field " + f.Name)
		}

		bare, quals, _ := Normalize(f.Type)
		required := b.total
		for _, q := range quals {
			if q == QualRequired {
				required = true
				break
			}
			if q == QualNotRequired {
				required = false
				break
			}
		}

		rec.byName[f.Name] = len(rec.fields)
		rec.fields = append(rec.fields, RecordField{Name: f.Name, Type: bare, required: required})
	}

	return &Type{kind: KindRecord, record: rec}
}

// Name returns the record's declared name.
func (r *Record) Name() string { return r.name }

// Fields returns the declared fields in declaration order.
func (r *Record) Fields() []RecordField {
	return append([]RecordField(nil), r.fields...)
}

// Field looks up a declared field by name.
func (r *Record) Field(name string) (RecordField, bool) {
	i, ok := r.byName[name]
	if !ok {
		return RecordField{}, false
	}
	return r.fields[i], true
}

// Extra returns the type accepted for unlisted keys, or nil when the record
// is closed.
func (r *Record) Extra() *Type { return r.extra }

// Total reports the default required status of fields.
func (r *Record) Total() bool { return r.total }
