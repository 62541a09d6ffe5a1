package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMapValidate(t *testing.T) {
	t.Run("complete mapping passes", func(t *testing.T) {
		m := FieldMap{
			Title:     "name_key",
			Location:  "loc_key",
			StartDate: "start_key",
			EndDate:   "end_key",
		}
		assert.NoError(t, m.Validate())
	})

	t.Run("description is optional", func(t *testing.T) {
		m := FieldMap{Title: "t", Location: "l", StartDate: "s", EndDate: "e"}
		assert.NoError(t, m.Validate())
	})

	t.Run("every missing required key is named", func(t *testing.T) {
		err := FieldMap{Title: "t"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "location")
		assert.Contains(t, err.Error(), "start_date")
		assert.Contains(t, err.Error(), "end_date")
		assert.NotContains(t, err.Error(), "title")
	})

	t.Run("empty mapping fails", func(t *testing.T) {
		assert.Error(t, FieldMap{}.Validate())
	})
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]bool)
	for _, ds := range catalog {
		assert.NotEmpty(t, ds.Name)
		assert.NotEmpty(t, ds.File)
		assert.NotEmpty(t, ds.Category)
		assert.NoError(t, ds.Fields.Validate(), "dataset %s", ds.Name)
		assert.False(t, seen[ds.Name], "duplicate dataset name %s", ds.Name)
		seen[ds.Name] = true
	}
}

func TestReadFile(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("reads records array", func(t *testing.T) {
		path := write(t, `{"records":[{"fstvlNm":"봄꽃 축제","opar":"서울"},{"fstvlNm":"여름 축제"}]}`)

		records, err := ReadFile(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "봄꽃 축제", records[0]["fstvlNm"])
	})

	t.Run("missing records key means no data", func(t *testing.T) {
		path := write(t, `{"totalCount": 0}`)

		records, err := ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("null records means no data", func(t *testing.T) {
		path := write(t, `{"records": null}`)

		records, err := ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("broken json is an error", func(t *testing.T) {
		path := write(t, `{"records": [`)

		_, err := ReadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}
