package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chaiwat/okfolio/pkg/id"
	"github.com/ulikunitz/xz"
)

// Backup writes an xz-compressed snapshot of the database file at
// dbPath into destDir and returns the snapshot path. The snapshot name
// carries a ULID, so repeated backups sort by creation time. Take
// backups while no run is writing; the process is the sole writer by
// design, so any quiet moment is safe.
func Backup(dbPath, destDir string) (string, error) {
	src, err := os.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("okfolio-%s.sqlite.xz", id.New())
	path := filepath.Join(destDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}

	w, err := xz.NewWriter(dst)
	if err != nil {
		dst.Close()
		return "", fmt.Errorf("create xz writer: %w", err)
	}

	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		dst.Close()
		return "", fmt.Errorf("compress database: %w", err)
	}
	if err := w.Close(); err != nil {
		dst.Close()
		return "", fmt.Errorf("finish xz stream: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}

	return path, nil
}
