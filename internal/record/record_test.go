package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_PreservesOrder(t *testing.T) {
	r := NewBuilder().
		Set("z", Int(1)).
		Set("a", String("x")).
		Set("m", Bool(true)).
		Record()

	require.Equal(t, []string{"z", "a", "m"}, r.Keys())
	require.Equal(t, 3, r.Len())
}

func TestBuilder_ReplaceKeepsPosition(t *testing.T) {
	r := NewBuilder().
		Set("a", Int(1)).
		Set("b", Int(2)).
		Set("a", Int(3)).
		Record()

	require.Equal(t, []string{"a", "b"}, r.Keys())
	require.True(t, r.Value("a").Equal(Int(3)))
}

func TestBuilder_ResetAfterRecord(t *testing.T) {
	b := NewBuilder().Set("a", Int(1))
	first := b.Record()
	second := b.Set("b", Int(2)).Record()

	require.Equal(t, []string{"a"}, first.Keys())
	require.Equal(t, []string{"b"}, second.Keys())
}

func TestFrom_CopiesFields(t *testing.T) {
	orig := NewBuilder().Set("a", Int(1)).Record()
	merged := From(orig).Set("b", Int(2)).Record()

	require.Equal(t, []string{"a"}, orig.Keys())
	require.Equal(t, []string{"a", "b"}, merged.Keys())
}

func TestRecord_AbsentFieldIsNull(t *testing.T) {
	r := NewBuilder().Set("a", Int(1)).Record()

	v, ok := r.Get("missing")
	require.False(t, ok)
	require.True(t, v.IsNull())
	require.False(t, r.Has("missing"))

	var zero Record
	require.Equal(t, 0, zero.Len())
	require.True(t, zero.Value("a").IsNull())
}

func TestRecord_MarshalJSON(t *testing.T) {
	r := NewBuilder().
		Set("b", Int(1)).
		Set("a", Array(String("x"), String("y"))).
		Set("c", Null()).
		Set("d", Float(2.5)).
		Record()

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"b":1,"a":["x","y"],"c":null,"d":2.5}`, string(data))
}

func TestValue_Equal(t *testing.T) {
	require.True(t, Int(1).Equal(Int(1)))
	require.False(t, Int(1).Equal(Float(1)))
	require.False(t, String("1").Equal(Int(1)))
	require.True(t, Null().Equal(Null()))
	require.True(t, Array(Int(1), Int(2)).Equal(Array(Int(1), Int(2))))
	require.False(t, Array(Int(1), Int(2)).Equal(Array(Int(2), Int(1))))
}

func TestValue_Contains(t *testing.T) {
	tags := Array(String("a"), String("b"))

	require.True(t, tags.Contains(String("b")))
	require.False(t, tags.Contains(String("c")))
	require.False(t, String("b").Contains(String("b")))
}

func TestValue_String(t *testing.T) {
	require.Equal(t, "null", Null().String())
	require.Equal(t, "42", Int(42).String())
	require.Equal(t, "26.4", Float(26.4).String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "[a, b]", Array(String("a"), String("b")).String())
}

func TestValue_ElemsIsCopy(t *testing.T) {
	arr := Array(Int(1))
	elems := arr.Elems()
	elems[0] = Int(9)

	require.True(t, arr.Elems()[0].Equal(Int(1)))
	require.Nil(t, Int(1).Elems())
}
