package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typecaster/convert"
	"typecaster/typedesc"
)

func TestUnionSubsetFastPath(t *testing.T) {
	reg := convert.DefaultRegistry()

	source := typedesc.Union(typedesc.Of[int](), typedesc.Of[string]())
	target := typedesc.Union(typedesc.Of[string](), typedesc.Of[int](), typedesc.Nil)

	conv := reg.Resolve(source, target)
	require.NotNil(t, conv)

	out, err := conv.Convert(nil, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", out)

	out, err = conv.Convert(nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, out)
}

func TestUnionDispatchesOnRuntimeType(t *testing.T) {
	reg := convert.DefaultRegistry()

	source := typedesc.Union(typedesc.Of[[]string](), typedesc.Of[int64]())
	target := typedesc.Union(typedesc.Of[map[string]struct{}](), typedesc.Of[int64]())

	conv := reg.Resolve(source, target)
	require.NotNil(t, conv)

	out, err := conv.Convert(nil, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, out)

	out, err = conv.Convert(nil, int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), out)
}

func TestUnionDispatchesNamedTypeThroughBase(t *testing.T) {
	reg := convert.DefaultRegistry()

	source := typedesc.Union(typedesc.Of[[]string](), typedesc.Of[int64]())
	target := typedesc.Union(typedesc.Of[map[string]struct{}](), typedesc.Of[int64]())

	conv := reg.Resolve(source, target)
	require.NotNil(t, conv)

	// accountID's base type is int64, so it reaches the int64 branch
	out, err := conv.Convert(nil, accountID(9))
	require.NoError(t, err)
	assert.Equal(t, accountID(9), out)
}

func TestUnionNilBranch(t *testing.T) {
	reg := convert.DefaultRegistry()

	source := typedesc.Union(typedesc.Of[[]string](), typedesc.Nil)
	target := typedesc.Union(typedesc.Of[map[string]struct{}](), typedesc.Nil)

	conv := reg.Resolve(source, target)
	require.NotNil(t, conv)

	out, err := conv.Convert(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = conv.Convert(nil, 42)
	require.Error(t, err)

	var cerr *convert.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, convert.KindNoConverter, cerr.Kind)
}

func TestUnionLiteralMemberBucketsUnderValueTypes(t *testing.T) {
	reg := convert.DefaultRegistry()

	source := typedesc.Union(typedesc.Literal("on", "off"), typedesc.Of[int]())
	target := typedesc.Union(typedesc.Literal("on", "off", "auto"), typedesc.Of[int]())

	conv := reg.Resolve(source, target)
	require.NotNil(t, conv)

	out, err := conv.Convert(nil, "off")
	require.NoError(t, err)
	assert.Equal(t, "off", out)

	out, err = conv.Convert(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	// a string outside the declared values fails every candidate
	_, err = conv.Convert(nil, "blink")
	require.Error(t, err)

	var cerr *convert.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, convert.KindNoConverter, cerr.Kind)
}

func TestUnionOptionalNeverNarrows(t *testing.T) {
	reg := convert.DefaultRegistry()

	optional := typedesc.Union(typedesc.Of[int](), typedesc.Nil)
	assert.Nil(t, reg.Resolve(optional, typedesc.Of[int]()))
}

func TestUnionWideningIntoUnionTarget(t *testing.T) {
	reg := convert.DefaultRegistry()

	target := typedesc.Union(typedesc.Of[int](), typedesc.Nil)

	conv := reg.Resolve(typedesc.Of[int](), target)
	require.NotNil(t, conv)

	out, err := conv.Convert(nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, out)
}

func TestUnionDeclinesWhenMemberHasNoPath(t *testing.T) {
	reg := convert.DefaultRegistry()

	source := typedesc.Union(typedesc.Of[int](), typedesc.Of[bool]())
	target := typedesc.Union(typedesc.Of[int](), typedesc.Of[string]())

	assert.Nil(t, reg.Resolve(source, target))
}

func TestUnionRecordMemberDispatchesOnMapValues(t *testing.T) {
	reg := convert.DefaultRegistry()

	source := typedesc.Union(personRecord(), typedesc.Of[int]())
	target := typedesc.Union(personRecord(), typedesc.Of[int]())

	conv := reg.Resolve(source, target)
	require.NotNil(t, conv)

	out, err := conv.Convert(nil, map[string]any{"name": "bob", "age": 42})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "bob", "age": 42}, out)
}
