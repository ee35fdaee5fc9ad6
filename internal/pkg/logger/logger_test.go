package logger

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Should accept known levels", func(t *testing.T) {
		for _, level := range []string{"", "debug", "info", "warn", "error"} {
			log, err := New(level)
			require.NoError(t, err, level)
			assert.NotNil(t, log)
		}
	})

	t.Run("Should reject unknown levels", func(t *testing.T) {
		_, err := New("chatty")
		assert.Error(t, err)
	})
}

func TestFailureLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	startedAt := time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)

	fl, err := OpenFailureLog(fs, "logs", startedAt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("logs", "import_log_20240501_093015.txt"), fl.Path())

	fl.RowFailed("ORD2", errors.New("card declined"))
	fl.RunFailed(errors.New("sheet vanished"))
	require.NoError(t, fl.Close())

	// A second run in the same second appends instead of truncating.
	again, err := OpenFailureLog(fs, "logs", startedAt)
	require.NoError(t, err)
	again.RowFailed("ORD9", errors.New("rate limited"))
	require.NoError(t, again.Close())

	data, err := afero.ReadFile(fs, fl.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "customer import failed")
	assert.Contains(t, lines[0], `"order_number": "ORD2"`)
	assert.Contains(t, lines[0], `"error": "card declined"`)
	assert.Contains(t, lines[1], "import aborted")
	assert.Contains(t, lines[2], "ORD9")
	for _, line := range lines {
		_, err := time.Parse("2006-01-02T15:04:05.000Z0700", strings.SplitN(line, "\t", 2)[0])
		assert.NoError(t, err, line)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "import_log_20241231_235959.txt", FileName(time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local)))
}
