package typedesc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typecaster/typedesc"
)

func TestNewRecord(t *testing.T) {
	user := typedesc.NewRecord("User",
		typedesc.WithField("id", typedesc.Of[int64]()),
		typedesc.WithField("name", typedesc.Of[string]()),
		typedesc.WithField("email", typedesc.NotRequired(typedesc.Of[string]())),
	)

	require.Equal(t, typedesc.KindRecord, user.Kind())
	rec := user.Record()
	require.NotNil(t, rec)

	assert.Equal(t, "User", rec.Name())
	assert.True(t, rec.Total())
	assert.Nil(t, rec.Extra())

	fields := rec.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"id", "name", "email"}, []string{fields[0].Name, fields[1].Name, fields[2].Name})

	id, ok := rec.Field("id")
	require.True(t, ok)
	assert.True(t, id.Required())
	assert.True(t, typedesc.Equal(typedesc.Of[int64](), id.Type))

	// qualifier overrides the total default and is stripped from the stored type
	email, ok := rec.Field("email")
	require.True(t, ok)
	assert.False(t, email.Required())
	assert.True(t, typedesc.Equal(typedesc.Of[string](), email.Type))

	_, ok = rec.Field("missing")
	assert.False(t, ok)
}

func TestNewRecordTotalFalse(t *testing.T) {
	rec := typedesc.NewRecord("Patch",
		typedesc.WithTotal(false),
		typedesc.WithField("name", typedesc.Of[string]()),
		typedesc.WithField("id", typedesc.Required(typedesc.Of[int64]())),
	).Record()

	assert.False(t, rec.Total())

	name, _ := rec.Field("name")
	assert.False(t, name.Required())

	id, _ := rec.Field("id")
	assert.True(t, id.Required())
}

func TestNewRecordWithExtra(t *testing.T) {
	rec := typedesc.NewRecord("Bag",
		typedesc.WithField("kind", typedesc.Of[string]()),
		typedesc.WithExtra(typedesc.Of[int]()),
	).Record()

	require.NotNil(t, rec.Extra())
	assert.True(t, typedesc.Equal(typedesc.Of[int](), rec.Extra()))
}

func TestNewRecordDuplicateFieldPanics(t *testing.T) {
	assert.Panics(t, func() {
		typedesc.NewRecord("Bad",
			typedesc.WithField("x", typedesc.Of[int]()),
			typedesc.WithField("x", typedesc.Of[string]()),
		)
	})
}

func TestRecordFieldsReturnsCopy(t *testing.T) {
	rec := typedesc.NewRecord("Point",
		typedesc.WithField("x", typedesc.Of[int]()),
		typedesc.WithField("y", typedesc.Of[int]()),
	).Record()

	fields := rec.Fields()
	fields[0].Name = "mutated"

	again := rec.Fields()
	assert.Equal(t, "x", again[0].Name)
}
