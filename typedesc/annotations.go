package typedesc

// Qualifier marks a known wrapper form stripped by Normalize.
type Qualifier int

const (
	_ Qualifier = iota // skip zero value, use it as a default (invalid) value for Qualifier

	// QualRequired marks a record field that must be present.
	QualRequired
	// QualNotRequired marks a record field that may be absent.
	QualNotRequired
	// QualStored marks a field as externally mapped (persisted on the
	// external side of the bridge).
	QualStored

	// QualifierTotal is a constant that represents the total number of qualifiers defined
	QualifierTotal = int(iota)
)

// String returns a human-readable qualifier name.
func (q Qualifier) String() string {
	switch q {
	case QualRequired:
		return "required"
	case QualNotRequired:
		return "not_required"
	case QualStored:
		return "stored"
	default:
		return "unknown"
	}
}

// Required wraps a descriptor with the required qualifier.
func Required(inner *Type) *Type { return qualify(inner, QualRequired) }

// NotRequired wraps a descriptor with the not-required qualifier.
func NotRequired(inner *Type) *Type { return qualify(inner, QualNotRequired) }

// Stored wraps a descriptor with the externally-mapped qualifier.
func Stored(inner *Type) *Type { return qualify(inner, QualStored) }

func qualify(inner *Type, q Qualifier) *Type {
	if inner == nil {
		panic("typedesc: qualifier applied to nil type")
	}
	return &Type{kind: KindAnnotated, inner: inner, quals: []Qualifier{q}}
}

// WithMeta wraps a descriptor with free-form metadata.
func WithMeta(inner *Type, meta ...any) *Type {
	if inner == nil {
		panic("typedesc: metadata applied to nil type")
	}
	return &Type{kind: KindAnnotated, inner: inner, meta: append([]any(nil), meta...)}
}

// Normalize strips annotation wrappers until a bare type remains, collecting
// qualifiers outermost-first and metadata outermost-last. Unrecognized
// descriptors pass through unchanged; Normalize never fails.
func Normalize(t *Type) (bare *Type, quals []Qualifier, meta []any) {
	if t == nil || t.kind != KindAnnotated {
		return t, nil, nil
	}

	bare, innerQuals, innerMeta := Normalize(t.inner)
	quals = append(append(quals, t.quals...), innerQuals...)
	meta = append(append(meta, innerMeta...), t.meta...)
	return bare, quals, meta
}

// Unwrap is the bare-type shorthand for Normalize.
func Unwrap(t *Type) *Type {
	bare, _, _ := Normalize(t)
	return bare
}
