package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueTags(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		v := Absent()
		require.True(t, v.IsAbsent())
		require.Equal(t, ValueAbsent, v.Kind())
	})

	t.Run("scalar accessors match their tag", func(t *testing.T) {
		s, ok := StringValue("hi").AsString()
		require.True(t, ok)
		require.Equal(t, "hi", s)

		i, ok := IntValue(42).AsInt()
		require.True(t, ok)
		require.Equal(t, int64(42), i)

		f, ok := FloatValue(2.5).AsFloat()
		require.True(t, ok)
		require.Equal(t, 2.5, f)

		b, ok := BoolValue(true).AsBool()
		require.True(t, ok)
		require.True(t, b)
	})

	t.Run("mismatched accessor reports not ok", func(t *testing.T) {
		_, ok := IntValue(1).AsString()
		require.False(t, ok)
		_, ok = StringValue("1").AsInt()
		require.False(t, ok)
		_, ok = StringValue("x").AsList()
		require.False(t, ok)
	})

	t.Run("zero value is absent", func(t *testing.T) {
		var v Value
		require.True(t, v.IsAbsent())
	})
}

func TestValueEqual(t *testing.T) {
	t.Run("same tag same payload", func(t *testing.T) {
		require.True(t, StringValue("a").Equal(StringValue("a")))
		require.True(t, Absent().Equal(Absent()))
		require.True(t, ListValue(IntValue(1), IntValue(2)).Equal(ListValue(IntValue(1), IntValue(2))))
	})

	t.Run("different tag never equal", func(t *testing.T) {
		require.False(t, IntValue(1).Equal(FloatValue(1)))
		require.False(t, StringValue("true").Equal(BoolValue(true)))
	})

	t.Run("list length and order matter", func(t *testing.T) {
		require.False(t, ListValue(IntValue(1)).Equal(ListValue(IntValue(1), IntValue(2))))
		require.False(t, ListValue(IntValue(1), IntValue(2)).Equal(ListValue(IntValue(2), IntValue(1))))
	})
}

func TestValueClone(t *testing.T) {
	orig := ListValue(StringValue("a"), ListValue(IntValue(1)))
	cp := orig.Clone()
	require.True(t, orig.Equal(cp))

	items, ok := cp.AsList()
	require.True(t, ok)
	require.Len(t, items, 2)
}

func TestValueFromAny(t *testing.T) {
	t.Run("nil is absent", func(t *testing.T) {
		v, err := ValueFromAny(nil)
		require.NoError(t, err)
		require.True(t, v.IsAbsent())
	})

	t.Run("scalars", func(t *testing.T) {
		v, err := ValueFromAny("x")
		require.NoError(t, err)
		require.True(t, v.Equal(StringValue("x")))

		v, err = ValueFromAny(7)
		require.NoError(t, err)
		require.True(t, v.Equal(IntValue(7)))

		v, err = ValueFromAny(uint64(7))
		require.NoError(t, err)
		require.True(t, v.Equal(IntValue(7)))

		v, err = ValueFromAny(1.5)
		require.NoError(t, err)
		require.True(t, v.Equal(FloatValue(1.5)))

		v, err = ValueFromAny(false)
		require.NoError(t, err)
		require.True(t, v.Equal(BoolValue(false)))
	})

	t.Run("sequence", func(t *testing.T) {
		v, err := ValueFromAny([]any{"a", int64(2)})
		require.NoError(t, err)
		require.True(t, v.Equal(ListValue(StringValue("a"), IntValue(2))))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ValueFromAny(map[string]any{"k": "v"})
		require.Error(t, err)
	})
}

func TestValueYAML(t *testing.T) {
	t.Run("marshal emits plain scalars", func(t *testing.T) {
		raw, err := IntValue(3).MarshalYAML()
		require.NoError(t, err)
		require.Equal(t, int64(3), raw)

		raw, err = Absent().MarshalYAML()
		require.NoError(t, err)
		require.Nil(t, raw)
	})

	t.Run("marshal list recurses", func(t *testing.T) {
		raw, err := ListValue(StringValue("a"), BoolValue(true)).MarshalYAML()
		require.NoError(t, err)
		require.Equal(t, []any{"a", true}, raw)
	})
}
