package restyutil

import (
	devenv "linkedin-voyager/dev/env"
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes each dumped exchange to its own file named by
// message id.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput clears dir and writes into it. dir may start with
// <dev_state>.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return FilesystemOutput{}, err
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
