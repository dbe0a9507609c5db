package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Transaction represents a set of file writes that are committed together.
// Files that already existed are restored to their previous content on
// rollback; files that did not exist are removed.
type Transaction struct {
	operations []*WriteFileOp
	written    []snapshot
	committed  bool
}

// snapshot is the state of a path before the transaction touched it.
type snapshot struct {
	path    string
	content []byte
	mode    fs.FileMode
	existed bool
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{}
}

// Add stages a file write operation (doesn't write yet)
func (t *Transaction) Add(op *WriteFileOp) {
	t.operations = append(t.operations, op)
}

// Len returns the number of staged writes.
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit writes all staged files to disk.
// If any write fails, previously written files are rolled back.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		snap, err := take(op.Path)
		if err != nil {
			t.rollback()
			return err
		}

		if err := op.Execute(ctx); err != nil {
			t.rollback()
			return fmt.Errorf("failed to write file %s: %w", op.Path, err)
		}
		t.written = append(t.written, snap)
	}

	t.committed = true
	return nil
}

// rollback restores written files in reverse order, best effort.
func (t *Transaction) rollback() {
	for i := len(t.written) - 1; i >= 0; i-- {
		snap := t.written[i]
		if snap.existed {
			_ = os.WriteFile(snap.path, snap.content, snap.mode)
		} else {
			_ = os.Remove(snap.path)
		}
	}
	t.written = nil
}

func take(path string) (snapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{path: path}, nil
	}
	if err != nil {
		return snapshot{}, fmt.Errorf("inspecting %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, fmt.Errorf("backing up %s: %w", path, err)
	}
	return snapshot{path: path, content: content, mode: info.Mode().Perm(), existed: true}, nil
}
