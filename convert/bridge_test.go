package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typecaster/convert"
	"typecaster/typedesc"
)

type user struct {
	ID   int64
	Name string
}

type userRow struct {
	ID   int64
	Name string
}

// userBridge converts between the user entity and its row representation,
// populating the identity map at the top of each conversion.
type userBridge struct {
	toExternalCalls int
}

func (b *userBridge) Entity() *typedesc.Type   { return typedesc.Of[*user]() }
func (b *userBridge) External() *typedesc.Type { return typedesc.Of[*userRow]() }

func (b *userBridge) ToExternal(scope *convert.Scope, entity any) (any, error) {
	if cached, hit := scope.Lookup(entity); hit {
		return cached, nil
	}

	u, ok := entity.(*user)
	if !ok {
		return nil, &convert.Error{Kind: convert.KindTypeMismatch, Value: entity, Target: b.External()}
	}

	b.toExternalCalls++
	row := &userRow{ID: u.ID, Name: u.Name}
	scope.Store(entity, row)
	return row, nil
}

func (b *userBridge) FromExternal(scope *convert.Scope, model any) (any, error) {
	if cached, hit := scope.Lookup(model); hit {
		return cached, nil
	}

	row, ok := model.(*userRow)
	if !ok {
		return nil, &convert.Error{Kind: convert.KindTypeMismatch, Value: model, Target: b.Entity()}
	}

	u := &user{ID: row.ID, Name: row.Name}
	scope.Store(model, u)
	return u, nil
}

func bridgeRegistry(b *userBridge) *convert.Registry {
	return convert.DefaultRegistry(
		convert.ByFactory(convert.NewToExternalFactory(b)),
		convert.ByFactory(convert.NewFromExternalFactory(b)),
	)
}

func TestBridgeToExternal(t *testing.T) {
	b := &userBridge{}
	reg := bridgeRegistry(b)

	conv := reg.Resolve(typedesc.Of[*user](), typedesc.Of[*userRow]())
	require.NotNil(t, conv)

	out, err := conv.Convert(convert.NewScope(), &user{ID: 1, Name: "bob"})
	require.NoError(t, err)

	row, ok := out.(*userRow)
	require.True(t, ok)
	assert.Equal(t, &userRow{ID: 1, Name: "bob"}, row)
}

func TestBridgeFromExternal(t *testing.T) {
	b := &userBridge{}
	reg := bridgeRegistry(b)

	conv := reg.Resolve(typedesc.Of[*userRow](), typedesc.Of[*user]())
	require.NotNil(t, conv)

	out, err := conv.Convert(convert.NewScope(), &userRow{ID: 1, Name: "bob"})
	require.NoError(t, err)
	assert.Equal(t, &user{ID: 1, Name: "bob"}, out)
}

func TestBridgeDirectionality(t *testing.T) {
	b := &userBridge{}

	toExt := convert.NewToExternalFactory(b)
	assert.True(t, toExt.Matches(typedesc.Of[*user](), typedesc.Of[*userRow]()))
	assert.False(t, toExt.Matches(typedesc.Of[*userRow](), typedesc.Of[*user]()))

	fromExt := convert.NewFromExternalFactory(b)
	assert.True(t, fromExt.Matches(typedesc.Of[*userRow](), typedesc.Of[*user]()))
	assert.False(t, fromExt.Matches(typedesc.Of[*user](), typedesc.Of[*userRow]()))
}

func TestBridgeNestsInsideSequences(t *testing.T) {
	b := &userBridge{}
	reg := bridgeRegistry(b)

	conv := reg.Resolve(typedesc.Of[[]*user](), typedesc.Of[[]*userRow]())
	require.NotNil(t, conv)

	shared := &user{ID: 1, Name: "bob"}
	out, err := conv.Convert(convert.NewScope(), []*user{shared, shared})
	require.NoError(t, err)

	rows, ok := out.([]*userRow)
	require.True(t, ok)
	require.Len(t, rows, 2)

	// the shared entity converts once and keeps its identity in the result
	assert.Same(t, rows[0], rows[1])
	assert.Equal(t, 1, b.toExternalCalls)
}

func TestBridgeNestsInsideUnions(t *testing.T) {
	b := &userBridge{}
	reg := bridgeRegistry(b)

	source := typedesc.Union(typedesc.Of[*user](), typedesc.Nil)
	target := typedesc.Union(typedesc.Of[*userRow](), typedesc.Nil)

	conv := reg.Resolve(source, target)
	require.NotNil(t, conv)

	out, err := conv.Convert(convert.NewScope(), &user{ID: 2, Name: "eve"})
	require.NoError(t, err)
	assert.Equal(t, &userRow{ID: 2, Name: "eve"}, out)

	out, err = conv.Convert(convert.NewScope(), nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestNewBridgeFactoriesNilPanics(t *testing.T) {
	assert.Panics(t, func() { convert.NewToExternalFactory(nil) })
	assert.Panics(t, func() { convert.NewFromExternalFactory(nil) })
}
