package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/export"
)

func TestAtomicFileWriter_WriteFile(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "points.csv")

		err := export.NewAtomicFileWriter().WriteFile(path, strings.NewReader("Latitude,Longitude\n"))

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Latitude,Longitude\n", string(data))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.geojson")
		require.NoError(t, os.WriteFile(path, []byte("old contents that are longer"), 0o644))

		err := export.NewAtomicFileWriter().WriteFile(path, strings.NewReader("new"))

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})
}
