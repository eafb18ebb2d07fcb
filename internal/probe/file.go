package probe

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/afero"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/description"
)

type fileExpression struct {
	fs   afero.Fs
	path string
}

// File creates an expression yielding the content of path.
// A missing file is recoverable; other read errors are not.
func File(fs afero.Fs, path string) condition.Expression[string] {
	return &fileExpression{fs: fs, path: path}
}

func (e *fileExpression) Get(context.Context) (string, error) {
	data, err := afero.ReadFile(e.fs, e.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", condition.WrapEvaluationError(err, "file %s", e.path)
		}
		return "", err
	}
	return string(data), nil
}

func (e *fileExpression) DescribeTo(d description.Description) {
	d.AppendText("file " + e.path)
}
