package typedesc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typecaster/typedesc"
)

func ExampleNormalize() {
	t := typedesc.Required(typedesc.WithMeta(typedesc.Of[int](), "column:id"))
	bare, quals, meta := typedesc.Normalize(t)
	fmt.Println(bare, quals, meta)

	bare, quals, meta = typedesc.Normalize(typedesc.Of[string]())
	fmt.Println(bare, quals, meta)

	// Output:
	// int [required] [column:id]
	// string [] []
}

func TestNormalizeStripsToFixedPoint(t *testing.T) {
	wrapped := typedesc.Stored(typedesc.NotRequired(typedesc.WithMeta(typedesc.Of[int](), 1, 2)))

	bare, quals, meta := typedesc.Normalize(wrapped)

	assert.Equal(t, typedesc.KindGo, bare.Kind())
	assert.Equal(t, []typedesc.Qualifier{typedesc.QualStored, typedesc.QualNotRequired}, quals)
	assert.Equal(t, []any{1, 2}, meta)
}

func TestNormalizeQualifierOrderIsOutermostFirst(t *testing.T) {
	wrapped := typedesc.Required(typedesc.NotRequired(typedesc.Of[string]()))

	_, quals, _ := typedesc.Normalize(wrapped)

	require.Len(t, quals, 2)
	assert.Equal(t, typedesc.QualRequired, quals[0])
	assert.Equal(t, typedesc.QualNotRequired, quals[1])
}

func TestNormalizeMetadataOrderIsOutermostLast(t *testing.T) {
	wrapped := typedesc.WithMeta(typedesc.WithMeta(typedesc.Of[int](), "inner"), "outer")

	_, _, meta := typedesc.Normalize(wrapped)

	assert.Equal(t, []any{"inner", "outer"}, meta)
}

func TestNormalizePassesUnrecognizedThrough(t *testing.T) {
	for _, tp := range []*typedesc.Type{
		typedesc.Any,
		typedesc.Nil,
		typedesc.Of[map[string]int](),
		typedesc.Literal("a"),
		typedesc.Union(typedesc.Of[int](), typedesc.Nil),
	} {
		bare, quals, meta := typedesc.Normalize(tp)
		assert.Same(t, tp, bare)
		assert.Empty(t, quals)
		assert.Empty(t, meta)
	}
}

func TestUnwrap(t *testing.T) {
	inner := typedesc.Of[float64]()
	assert.Same(t, inner, typedesc.Unwrap(typedesc.Required(inner)))
	assert.Same(t, inner, typedesc.Unwrap(inner))
}
