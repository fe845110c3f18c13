package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromJSONPreservesBigIntegers(t *testing.T) {
	v, err := FromJSON([]byte(`{"id": 9007199254740993}`))
	require.NoError(t, err)

	o, ok := v.(Object)
	require.True(t, ok)
	s, ok := o["id"].(Scalar)
	require.True(t, ok)
	n, ok := s.Int64()
	require.True(t, ok)
	require.Equal(t, int64(9007199254740993), n)
}

func TestFromJSONKinds(t *testing.T) {
	v, err := FromJSON([]byte(`{"a": null, "b": "x", "c": [1, true], "d": {}}`))
	require.NoError(t, err)

	o := v.(Object)
	require.IsType(t, Null{}, o["a"])
	require.IsType(t, Scalar{}, o["b"])
	require.IsType(t, Array{}, o["c"])
	require.IsType(t, Object{}, o["d"])
	require.Len(t, o["c"].(Array), 2)
}

func TestFromJSONRejectsMalformed(t *testing.T) {
	_, err := FromJSON([]byte(`{"unterminated": `))
	require.Error(t, err)
}

func TestScalarAccessorsRejectWrongKind(t *testing.T) {
	s := Scalar{Raw: "hello"}
	_, ok := s.Int64()
	require.False(t, ok)
	_, ok = s.Bool()
	require.False(t, ok)
	str, ok := s.String()
	require.True(t, ok)
	require.Equal(t, "hello", str)
}

func TestObjectKeysSorted(t *testing.T) {
	o := Object{"zeta": Null{}, "alpha": Null{}, "mid": Null{}}
	require.Equal(t, []string{"alpha", "mid", "zeta"}, o.Keys())
}

func TestObjectHas(t *testing.T) {
	o := Object{"id": Null{}, "name": Null{}}
	require.True(t, o.Has("id", "name"))
	require.True(t, o.Has("id"))
	require.False(t, o.Has("id", "missing"))
}

func TestFieldStates(t *testing.T) {
	o := Object{
		"present": Scalar{Raw: "v"},
		"nulled":  Null{},
		"wrong":   Array{},
	}

	f := strField(o, "present")
	v, ok := f.Get()
	require.True(t, ok)
	require.Equal(t, "v", v)

	require.True(t, strField(o, "nulled").IsNull())
	require.True(t, strField(o, "missing").IsAbsent())
	// A present value of the wrong scalar kind degrades to absent.
	require.True(t, strField(o, "wrong").IsAbsent())
	require.True(t, intField(o, "present").IsAbsent())
}

func TestFieldOr(t *testing.T) {
	require.Equal(t, "fallback", Field[string]{}.Or("fallback"))
	require.Equal(t, "set", Present("set").Or("fallback"))
	require.Equal(t, "fallback", NullField[string]().Or("fallback"))
}

func TestNestedObjectMismatch(t *testing.T) {
	o := Object{"commit": Scalar{Raw: "not-an-object"}}
	_, err := nestedObject(o, "Branch", "commit")
	require.Error(t, err)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "Branch", fe.Base)
	require.Equal(t, "commit", fe.Field)
	require.ErrorIs(t, err, ErrWrongKind)

	// Absent and null are both fine.
	got, err := nestedObject(Object{}, "Branch", "commit")
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = nestedObject(Object{"commit": Null{}}, "Branch", "commit")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStrListAndMapFields(t *testing.T) {
	o := Object{
		"parent_ids": Array{Scalar{Raw: "a"}, Null{}, Scalar{Raw: "b"}},
		"trailers":   Object{"Signed-off-by": Scalar{Raw: "dev"}},
	}
	list, ok := strListField(o, "parent_ids").Get()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, list)

	m, ok := strMapField(o, "trailers").Get()
	require.True(t, ok)
	require.Equal(t, map[string]string{"Signed-off-by": "dev"}, m)
}
