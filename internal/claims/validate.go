package claims

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/taskproof/taskproof/internal/errs"
	"github.com/taskproof/taskproof/internal/model"
)

// MaxFileSize caps each evidence file at 2 MiB.
const MaxFileSize = 2 << 20

// allowedExts is the evidence file allow-list. Fixed globally, not per task.
var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// File is one entry of a completion batch. Open is deferred so validation
// runs before any content is read.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Validate checks a completion batch against the task's requirement. Rules
// apply in order and the first violation wins: every entry well-formed,
// exact count, then per-file size and extension. The caller must not store
// anything if an error is returned.
func Validate(task *model.Task, batch []File) error {
	if len(batch) == 0 {
		return errors.Wrap(errs.ErrWrongFileCount, "batch is empty")
	}
	for i := range batch {
		if batch[i].Name == "" || batch[i].Open == nil {
			return errors.Wrapf(errs.ErrInvalidFile, "file #%d is empty", i+1)
		}
	}
	if len(batch) != int(task.RequiredUploads) {
		return errors.Wrapf(errs.ErrWrongFileCount, "task requires exactly %d file(s), got %d",
			task.RequiredUploads, len(batch))
	}
	for i := range batch {
		f := &batch[i]
		if f.Size > MaxFileSize {
			return errors.Wrapf(errs.ErrInvalidFile, "%s exceeds the %d byte limit", f.Name, MaxFileSize)
		}
		ext := strings.ToLower(filepath.Ext(f.Name))
		if _, ok := allowedExts[ext]; !ok {
			return errors.Wrapf(errs.ErrInvalidFile, "%s: file type %q is not allowed", f.Name, ext)
		}
	}
	return nil
}
