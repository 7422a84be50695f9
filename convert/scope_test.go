package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typecaster/convert"
)

func TestScopeStoreLookup(t *testing.T) {
	scope := convert.NewScope()

	source := &struct{ N int }{N: 1}
	result := &struct{ N int }{N: 2}

	_, hit := scope.Lookup(source)
	assert.False(t, hit)

	scope.Store(source, result)

	got, hit := scope.Lookup(source)
	require.True(t, hit)
	assert.Same(t, result, got)

	// a distinct but value-equal object is a different identity
	other := &struct{ N int }{N: 1}
	_, hit = scope.Lookup(other)
	assert.False(t, hit)
}

func TestScopeIgnoresValuesWithoutIdentity(t *testing.T) {
	scope := convert.NewScope()

	scope.Store(42, "result")
	_, hit := scope.Lookup(42)
	assert.False(t, hit)

	scope.Store("key", "result")
	_, hit = scope.Lookup("key")
	assert.False(t, hit)

	scope.Store(nil, "result")
	_, hit = scope.Lookup(nil)
	assert.False(t, hit)
}

func TestScopeSliceAndMapIdentity(t *testing.T) {
	scope := convert.NewScope()

	src := []int{1, 2, 3}
	scope.Store(src, "converted")

	got, hit := scope.Lookup(src)
	require.True(t, hit)
	assert.Equal(t, "converted", got)

	m := map[string]int{"a": 1}
	scope.Store(m, "mapped")
	got, hit = scope.Lookup(m)
	require.True(t, hit)
	assert.Equal(t, "mapped", got)
}

func TestNilScopeIsInert(t *testing.T) {
	var scope *convert.Scope

	source := &struct{}{}
	scope.Store(source, "result")
	_, hit := scope.Lookup(source)
	assert.False(t, hit)

	scope.Close()
}

func TestEnterScope(t *testing.T) {
	active := convert.NewScope()
	assert.Same(t, active, convert.EnterScope(active))
	assert.NotNil(t, convert.EnterScope(nil))
}

func TestScopeClose(t *testing.T) {
	scope := convert.NewScope()
	source := &struct{}{}
	scope.Store(source, "result")
	scope.Close()

	_, hit := scope.Lookup(source)
	assert.False(t, hit)

	// a closed scope accepts new entries like an empty one
	scope.Store(source, "again")
	got, hit := scope.Lookup(source)
	require.True(t, hit)
	assert.Equal(t, "again", got)
}
