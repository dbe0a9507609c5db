package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// never mutates the file system, so it is safe in dry-run mode.
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Write core/.project (812 bytes)").
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// Status describes what executing an operation does to its target.
type Status int

const (
	StatusCreate Status = iota
	StatusUpdate
	StatusUnchanged
)

func (s Status) String() string {
	switch s {
	case StatusCreate:
		return "create"
	case StatusUpdate:
		return "update"
	default:
		return "unchanged"
	}
}

// WriteFileOp writes content to Path, replacing any existing file.
//
// Validation behavior:
//   - The parent directory must already exist (metadata sits next to descriptors)
//   - Path must not be a directory
//   - Empty content is allowed, nil content is rejected
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions for new files (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	dir := filepath.Dir(op.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", op.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot write %s: %s is not a directory", op.Path, dir)
	}

	if info, err := os.Stat(op.Path); err == nil && info.IsDir() {
		return fmt.Errorf("cannot write %s: path is a directory", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.mode())
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", op.Path, len(op.Content))
}

// Status compares Content with the file currently on disk.
func (op *WriteFileOp) Status() (Status, []byte, error) {
	existing, err := os.ReadFile(op.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return StatusCreate, nil, nil
	}
	if err != nil {
		return StatusCreate, nil, fmt.Errorf("reading %s: %w", op.Path, err)
	}
	if bytes.Equal(existing, op.Content) {
		return StatusUnchanged, existing, nil
	}
	return StatusUpdate, existing, nil
}

func (op *WriteFileOp) mode() fs.FileMode {
	if op.Mode == 0 {
		return 0644
	}
	return op.Mode
}
