package release

import "os"

// Workspace is a private temporary directory with a scoped lifetime. Each
// packager stages its artifact inside one and tears it down before returning,
// regardless of the outcome.
type Workspace struct {
	root   string
	closed bool
}

// NewWorkspace allocates a temporary directory under baseDir (or the system
// default when baseDir is empty) using the given name prefix.
func NewWorkspace(baseDir, prefix string) (*Workspace, error) {
	root, err := os.MkdirTemp(baseDir, prefix+"-*")
	if err != nil {
		return nil, &FilesystemError{Op: "create workspace in", Path: baseDir, Err: err}
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Close removes the workspace and everything staged inside it. Closing an
// already-closed workspace is a no-op.
func (w *Workspace) Close() error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true
	if err := os.RemoveAll(w.root); err != nil {
		return &FilesystemError{Op: "remove workspace", Path: w.root, Err: err}
	}
	return nil
}
