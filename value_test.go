package bizlist_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/bizlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("zero value is absent", func(t *testing.T) {
		t.Parallel()

		var v bizlist.Value
		assert.True(t, v.IsAbsent())
		assert.Equal(t, bizlist.Absent(), v)
		assert.Equal(t, bizlist.KindAbsent, v.Kind())
	})

	t.Run("empty text is not absent", func(t *testing.T) {
		t.Parallel()

		v := bizlist.Text("")
		assert.False(t, v.IsAbsent())
		assert.NotEqual(t, bizlist.Absent(), v)
	})

	t.Run("accessors report kind", func(t *testing.T) {
		t.Parallel()

		f, ok := bizlist.Number(250000).Number()
		assert.True(t, ok)
		assert.InDelta(t, 250000.0, f, 1e-9)

		_, ok = bizlist.Number(1).Integer()
		assert.False(t, ok)

		n, ok := bizlist.Integer(12).Integer()
		assert.True(t, ok)
		assert.Equal(t, int64(12), n)
	})

	t.Run("renders for tabular output", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", bizlist.Absent().String())
		assert.Equal(t, "Dallas", bizlist.Text("Dallas").String())
		assert.Equal(t, "1234.5", bizlist.Number(1234.5).String())
		assert.Equal(t, "250000", bizlist.Number(250000).String())
		assert.Equal(t, "-3", bizlist.Integer(-3).String())
	})
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(map[string]bizlist.Value{
		"a": bizlist.Absent(),
		"b": bizlist.Text("FF&E <included>"),
		"c": bizlist.Number(1234.5),
		"d": bizlist.Integer(7),
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(got, &decoded))
	assert.Nil(t, decoded["a"])
	assert.Equal(t, "FF&E <included>", decoded["b"])
	assert.InDelta(t, 1234.5, decoded["c"], 1e-9)
	assert.InDelta(t, 7.0, decoded["d"], 1e-9)
}
