package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// AtomicFileWriter replaces files in one step so a reader never sees a
// partially written dataset.
type AtomicFileWriter struct{}

func NewAtomicFileWriter() *AtomicFileWriter {
	return &AtomicFileWriter{}
}

func (w *AtomicFileWriter) WriteFile(path string, reader io.Reader) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := atomic.WriteFile(path, reader); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
