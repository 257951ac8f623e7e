package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricardonunez-io/datasift/internal/record"
)

func TestParse_PreservesFieldOrder(t *testing.T) {
	records, err := Parse([]byte(`[{"z": 1, "a": "x", "m": true}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, []string{"z", "a", "m"}, records[0].Keys())
}

func TestParse_IntegersAndFloats(t *testing.T) {
	records, err := Parse([]byte(`[{"i": 26, "f": 26.4, "whole": 44.0, "exp": 1e3, "neg": -7}]`))
	require.NoError(t, err)

	r := records[0]
	require.Equal(t, record.KindInteger, r.Value("i").Kind())
	require.Equal(t, int64(26), r.Value("i").AsInt())
	require.Equal(t, record.KindFloat, r.Value("f").Kind())
	require.Equal(t, 26.4, r.Value("f").AsFloat())
	require.Equal(t, record.KindFloat, r.Value("whole").Kind())
	require.Equal(t, record.KindFloat, r.Value("exp").Kind())
	require.Equal(t, int64(-7), r.Value("neg").AsInt())
}

func TestParse_ValueKinds(t *testing.T) {
	records, err := Parse([]byte(`[
		{"s": "a \"quoted\" é", "b": false, "n": null, "tags": ["x", "y"], "empty": [], "obj": {"k": 1}}
	]`))
	require.NoError(t, err)

	r := records[0]
	require.Equal(t, `a "quoted" é`, r.Value("s").AsString())
	require.Equal(t, record.KindBoolean, r.Value("b").Kind())
	require.False(t, r.Value("b").AsBool())

	n, ok := r.Get("n")
	require.True(t, ok, "explicit null should be present")
	require.True(t, n.IsNull())

	require.True(t, r.Value("tags").Equal(record.Array(record.String("x"), record.String("y"))))
	require.Equal(t, record.KindArray, r.Value("empty").Kind())
	require.Equal(t, 0, r.Value("empty").Len())
	require.Equal(t, record.KindObject, r.Value("obj").Kind())
}

func TestParse_NotArray(t *testing.T) {
	_, err := Parse([]byte(`{"some_field": "some_data"}`))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.ErrorIs(t, err, ErrNotArray)
	require.Equal(t, -1, le.Index)
}

func TestParse_NotObject(t *testing.T) {
	_, err := Parse([]byte(`[{"a": 1}, 2]`))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.ErrorIs(t, err, ErrNotObject)
	require.Equal(t, 1, le.Index)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(``))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParse_IntegerOutOfRange(t *testing.T) {
	_, err := Parse([]byte(`[{"big": 123456789012345678901234567890}]`))
	require.ErrorIs(t, err, ErrNumberRange)
}

func TestLoad_Reader(t *testing.T) {
	records, err := Load(strings.NewReader(`[{"a": 1}, {"a": 2}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"_id": 1, "name": "Larry"}]`), 0o644))

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Larry", records[0].Value("name").AsString())
}

func TestLoadFile_ErrorNamesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x": 1}`), 0o644))

	_, err := LoadFile(path)
	require.ErrorIs(t, err, ErrNotArray)
	require.Contains(t, err.Error(), path)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
