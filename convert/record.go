package convert

import (
	"reflect"
	"sort"

	"typecaster/typedesc"
)

// recordInfo is the per-type view the record family works against: a key
// type, the declared fields with their required status, and the type
// accepted for unlisted keys (nil when the position is closed). It unifies
// schema-bearing records and plain string-keyed Go maps.
type recordInfo struct {
	tp       *typedesc.Type
	keyType  *typedesc.Type
	fields   map[string]*typedesc.Type
	required map[string]bool
	extra    *typedesc.Type
	mapRT    reflect.Type // non-nil for Go map types
}

// isRecordLike reports whether the record family can describe a descriptor:
// a record schema or a keyed Go map with string (or Any) keys.
func isRecordLike(t *typedesc.Type) bool {
	bare := typedesc.Unwrap(t)
	if bare.Kind() == typedesc.KindRecord {
		return true
	}
	if !typedesc.IsMapping(bare) {
		return false
	}
	key := typedesc.Key(bare)
	return key.Kind() == typedesc.KindAny ||
		(key.Kind() == typedesc.KindGo && key.GoType().Kind() == reflect.String)
}

func recordInfoOf(t *typedesc.Type) recordInfo {
	bare := typedesc.Unwrap(t)

	if rec := bare.Record(); rec != nil {
		info := recordInfo{
			tp:       bare,
			keyType:  typedesc.Of[string](),
			fields:   make(map[string]*typedesc.Type),
			required: make(map[string]bool),
			extra:    rec.Extra(),
		}
		for _, f := range rec.Fields() {
			info.fields[f.Name] = f.Type
			info.required[f.Name] = f.Required()
		}
		return info
	}

	// a plain map declares no fields; every key is an extra item
	return recordInfo{
		tp:      bare,
		keyType: typedesc.Key(bare),
		extra:   typedesc.Value(bare),
		mapRT:   bare.GoType(),
	}
}

// typeFor returns the declared type for a key, falling back to the
// extra-items type; nil means the key cannot appear at all.
func (i recordInfo) typeFor(key string) *typedesc.Type {
	if tp, ok := i.fields[key]; ok {
		return tp
	}
	return i.extra
}

func (i recordInfo) requiredFor(key string) bool {
	return i.required[key]
}

// RecordConverter transforms record-shaped values (string-keyed maps) using
// per-field converters, an optional extra-items converter for unlisted keys,
// and a required-field check on the result. Keys the target cannot receive
// are dropped silently. The output is always a newly allocated map, even for
// an identical source and target type.
type RecordConverter struct {
	target         recordInfo
	fieldConvs     map[string]Converter
	extraConv      Converter
	requiredFields []string
}

// NewRecordConverter builds a record converter for the given target view.
func NewRecordConverter(target recordInfo, fieldConvs map[string]Converter, extraConv Converter) *RecordConverter {
	var required []string
	for name := range fieldConvs {
		if target.requiredFor(name) {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	return &RecordConverter{
		target:         target,
		fieldConvs:     fieldConvs,
		extraConv:      extraConv,
		requiredFields: required,
	}
}

// Matches always reports true: a produced record converter is specific to
// the pair it was resolved for.
func (c *RecordConverter) Matches(source, target *typedesc.Type) bool { return true }

// Convert rebuilds the record value field by field.
func (c *RecordConverter) Convert(scope *Scope, v any) (any, error) {
	return c.convert(scope, v, false)
}

// SafeConvert rebuilds the record through the fields' validating variants.
func (c *RecordConverter) SafeConvert(scope *Scope, v any) (any, error) {
	return c.convert(scope, v, true)
}

// converterFor returns the converter for a key, or nil when the key should
// be dropped.
func (c *RecordConverter) converterFor(key string) Converter {
	if conv, ok := c.fieldConvs[key]; ok {
		return conv
	}
	return c.extraConv
}

func (c *RecordConverter) convert(scope *Scope, v any, safe bool) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, newTypeMismatch(v, c.target.tp)
	}

	out := make(map[string]any, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		key, ok := stringKey(it.Key())
		if !ok {
			return nil, newTypeMismatch(it.Key().Interface(), c.target.keyType)
		}

		conv := c.converterFor(key)
		if conv == nil {
			continue
		}

		var converted any
		var err error
		if safe {
			converted, err = safeConvert(conv, scope, it.Value().Interface())
		} else {
			converted, err = conv.Convert(scope, it.Value().Interface())
		}
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}

	for _, name := range c.requiredFields {
		if _, present := out[name]; !present {
			return nil, newMissingField(name, c.target.tp)
		}
	}

	if c.target.mapRT == nil {
		return out, nil
	}
	return c.toTargetMap(out)
}

func (c *RecordConverter) toTargetMap(fields map[string]any) (any, error) {
	out := reflect.MakeMapWithSize(c.target.mapRT, len(fields))
	for key, value := range fields {
		outKey, err := asValue(key, c.target.mapRT.Key())
		if err != nil {
			return nil, err
		}
		outVal, err := asValue(value, c.target.mapRT.Elem())
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(outKey, outVal)
	}
	return out.Interface(), nil
}

func stringKey(key reflect.Value) (string, bool) {
	if key.Kind() == reflect.Interface {
		key = key.Elem()
	}
	if key.Kind() != reflect.String {
		return "", false
	}
	return key.String(), true
}

// RecordConverterFactory produces converters across the four record shapes:
// open map to open map, open map to schema record, record to map, and
// record to record.
type RecordConverterFactory struct{}

// Matches reports whether both sides are record-like.
func (RecordConverterFactory) Matches(source, target *typedesc.Type) bool {
	return isRecordLike(source) && isRecordLike(target)
}

// Converter applies the record resolution algorithm: key-type viability,
// statically unsatisfiable required fields, per-field converter resolution,
// and the extra-items pair. Any unresolved position declines the whole
// factory.
func (RecordConverterFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	si := recordInfoOf(source)
	ti := recordInfoOf(target)

	if reg.Resolve(si.keyType, ti.keyType) == nil {
		return nil
	}

	names := make(map[string]struct{}, len(si.fields)+len(ti.fields))
	for name := range si.fields {
		names[name] = struct{}{}
	}
	for name := range ti.fields {
		names[name] = struct{}{}
	}

	// a required target field the source cannot provide is statically
	// unsatisfiable
	for name := range names {
		if si.typeFor(name) == nil && ti.typeFor(name) != nil && ti.requiredFor(name) {
			return nil
		}
	}

	fieldConvs := make(map[string]Converter, len(names))
	for name := range names {
		st := si.typeFor(name)
		tt := ti.typeFor(name)
		if st == nil || tt == nil {
			continue
		}
		conv := reg.Resolve(st, tt)
		if conv == nil {
			return nil
		}
		fieldConvs[name] = conv
	}

	var extraConv Converter
	if si.extra != nil && ti.extra != nil {
		if extraConv = reg.Resolve(si.extra, ti.extra); extraConv == nil {
			return nil
		}
	}

	return NewRecordConverter(ti, fieldConvs, extraConv)
}
