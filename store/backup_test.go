package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ulikunitz/xz"
)

func TestBackupRoundTrips(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	ts := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)
	assert.NoError(t, s.Insert(testObs("main", ts, "1.5")))
	assert.NoError(t, s.Close())

	dest := filepath.Join(t.TempDir(), "backups")
	out, err := Backup(path, dest)
	assert.NoError(t, err)
	assert.FileExists(t, out)

	// The snapshot must decompress back to the original database bytes.
	f, err := os.Open(out)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	r, err := xz.NewReader(f)
	assert.NoError(t, err)

	restored, err := io.ReadAll(r)
	assert.NoError(t, err)

	original, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestBackupMissingDatabase(t *testing.T) {
	t.Parallel()

	_, err := Backup(filepath.Join(t.TempDir(), "absent.db"), t.TempDir())
	assert.Error(t, err)
}
