package release

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// copyFile copies src to dst with the given permission bits, truncating dst
// if it already exists.
func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return &FilesystemError{Op: "open", Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return &FilesystemError{Op: "create", Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &FilesystemError{Op: "copy to", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &FilesystemError{Op: "close", Path: dst, Err: err}
	}
	return nil
}

// moveFile relocates src to dst, replacing dst if present. Rename is
// attempted first; when src and dst live on different filesystems the file
// is copied and the source removed.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !isCrossDevice(err) {
		return &FilesystemError{Op: "move to", Path: dst, Err: err}
	}

	info, err := os.Stat(src)
	if err != nil {
		return &FilesystemError{Op: "stat", Path: src, Err: err}
	}
	if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return &FilesystemError{Op: "remove", Path: src, Err: err}
	}
	return nil
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return false
	}
	return errors.Is(linkErr.Err, syscall.EXDEV)
}

// ensureDir creates the directory and any missing parents. Re-running
// against an existing directory succeeds.
func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return &FilesystemError{Op: "create directory", Path: path, Err: err}
	}
	return nil
}

// absolutePath resolves path against the working directory.
func absolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &FilesystemError{Op: "resolve", Path: path, Err: err}
	}
	return abs, nil
}
