package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// writeTemplate persists a manifest template in a temp dir and returns its path.
func writeTemplate(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

// TestLoadStampsModAndKeepsName covers the timestamp refresh and version override.
func TestLoadStampsModAndKeepsName(t *testing.T) {
	t.Parallel()

	path := writeTemplate(t, `{"name":"X","version":"1.0","mod":0}`)
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	data, err := Load(path, "2.0", now)
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	require.Equal(t, "X", doc.Get("name").String())
	require.Equal(t, "2.0", doc.Get("version").String())
	require.Equal(t, now.Unix(), doc.Get("mod").Int())
}

// TestLoadWithoutOverrideKeepsVersion leaves the template's version untouched.
func TestLoadWithoutOverrideKeepsVersion(t *testing.T) {
	t.Parallel()

	path := writeTemplate(t, `{"name":"X","version":"1.0","mod":0}`)

	data, err := Load(path, "", time.Unix(1700000000, 0))
	require.NoError(t, err)
	require.Equal(t, "1.0", gjson.GetBytes(data, "version").String())
	require.EqualValues(t, 1700000000, gjson.GetBytes(data, "mod").Int())
}

// TestLoadPreservesKeyOrder keeps the author's field ordering intact.
func TestLoadPreservesKeyOrder(t *testing.T) {
	t.Parallel()

	path := writeTemplate(t, `{"zebra":1,"name":"X","alpha":2,"mod":0,"version":"1.0"}`)

	data, err := Load(path, "", time.Unix(1, 0))
	require.NoError(t, err)

	text := string(data)
	require.Less(t, strings.Index(text, `"zebra"`), strings.Index(text, `"name"`))
	require.Less(t, strings.Index(text, `"name"`), strings.Index(text, `"alpha"`))
	require.Less(t, strings.Index(text, `"alpha"`), strings.Index(text, `"mod"`))
}

// TestLoadKeepsNonASCIILiteral does not escape multi-byte characters.
func TestLoadKeepsNonASCIILiteral(t *testing.T) {
	t.Parallel()

	path := writeTemplate(t, `{"name":"レポーター","mod":0}`)

	data, err := Load(path, "", time.Unix(1, 0))
	require.NoError(t, err)
	require.Contains(t, string(data), "レポーター")
	require.NotContains(t, string(data), `\u`)
}

// TestLoadIndentsWithTwoSpaces formats nested fields readably.
func TestLoadIndentsWithTwoSpaces(t *testing.T) {
	t.Parallel()

	path := writeTemplate(t, `{"name":"X","mod":0}`)

	data, err := Load(path, "", time.Unix(1, 0))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  \"name\"")
}

// TestLoadMissingTemplate reports the dedicated not-found error.
func TestLoadMissingTemplate(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "manifest.json"), "", time.Now())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestLoadMalformedTemplate surfaces a parse error.
func TestLoadMalformedTemplate(t *testing.T) {
	t.Parallel()

	path := writeTemplate(t, `{"name": `)

	_, err := Load(path, "", time.Now())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

// TestLoadNonObjectTemplate rejects arrays and scalars.
func TestLoadNonObjectTemplate(t *testing.T) {
	t.Parallel()

	path := writeTemplate(t, `[1,2,3]`)

	_, err := Load(path, "", time.Now())
	require.Error(t, err)
}

// TestName extracts the addon name for default output naming.
func TestName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "X", Name([]byte(`{"name":"X"}`)))
	require.Empty(t, Name([]byte(`{}`)))
}
