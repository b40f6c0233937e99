package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotwork/ui/prefs"
)

func TestFallbacksWhenMissing(t *testing.T) {
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "none.json"))

	assert.Equal(t, 8.0, p.FloatWithFallback("dotWidth", 8))
	assert.Equal(t, "", p.String("lastDirectory"))
	assert.True(t, p.Bool("showLabels", true))
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")
	p := prefs.LoadFrom(path)
	p.SetFloat("labelRadius", 20)
	p.SetString("lastDirectory", "/photos")
	p.SetBool("showLinks", true)
	require.NoError(t, p.Save())

	q := prefs.LoadFrom(path)
	assert.Equal(t, 20.0, q.FloatWithFallback("labelRadius", 15))
	assert.Equal(t, "/photos", q.String("lastDirectory"))
	assert.True(t, q.Bool("showLinks", false))
	assert.Equal(t, path, q.Path())
}

func TestSaveIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	p := prefs.LoadFrom(path)

	require.NoError(t, p.SaveIfChanged())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing to save yet")

	p.SetBool("showLabels", false)
	require.NoError(t, p.SaveIfChanged())
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	p.SetBool("showLabels", false)
	require.NoError(t, p.SaveIfChanged())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "unchanged value is not a change")
}

func TestWrongTypeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dotWidth": "big", "showLinks": 1}`), 0o644))

	p := prefs.LoadFrom(path)
	assert.Equal(t, 8.0, p.FloatWithFallback("dotWidth", 8))
	assert.False(t, p.Bool("showLinks", false))
}
