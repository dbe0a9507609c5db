package generator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/simonhull/pdemeta/internal/logger"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun   bool
	ShowDiff bool        // Print a diff for files that would change (dry-run only)
	Writer   io.Writer   // Where to write output (defaults to os.Stdout)
	Logger   *log.Logger // Debug logging, discarded when nil
}

// Result records the outcome of one operation.
type Result struct {
	Description string
	Path        string
	Status      Status
	Written     bool
}

// Summary collects the results of an Execute call in operation order.
type Summary struct {
	DryRun  bool
	Results []Result
}

// Count returns how many results have the given status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Written returns how many files were actually written.
func (s *Summary) Written() int {
	n := 0
	for _, r := range s.Results {
		if r.Written {
			n++
		}
	}
	return n
}

// Execute validates every operation, then applies them. File writes are
// committed through a Transaction so a failure leaves previous files in
// place. In dry-run mode the same results are computed and reported but
// nothing is written.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) (*Summary, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	// Phase 1: Validate all operations
	for _, op := range ops {
		if err := op.Validate(ctx); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}

	// Phase 2: Plan
	summary := &Summary{DryRun: opts.DryRun, Results: make([]Result, 0, len(ops))}
	tx := NewTransaction()
	var diffGen *DiffGenerator
	if opts.ShowDiff {
		diffGen = NewDiffGenerator()
	}

	for _, op := range ops {
		fileOp, ok := op.(*WriteFileOp)
		if !ok {
			return nil, fmt.Errorf("unsupported operation: %s", op.Description())
		}

		status, existing, err := fileOp.Status()
		if err != nil {
			return nil, err
		}
		result := Result{
			Description: op.Description(),
			Path:        fileOp.Path,
			Status:      status,
		}

		if status != StatusUnchanged {
			tx.Add(fileOp)
			result.Written = !opts.DryRun
		}
		if opts.DryRun && diffGen != nil && status == StatusUpdate {
			if diff := diffGen.GenerateDiff(fileOp.Path, fileOp.Path, existing, fileOp.Content); diff != "" {
				fmt.Fprint(opts.Writer, diff)
			}
		}

		opts.Logger.Debug("Planned operation", "op", result.Description, "status", result.Status)
		summary.Results = append(summary.Results, result)
	}

	// Phase 3: Execute or report
	opts.Logger.Debug("Committing writes", "files", tx.Len(), "dry_run", opts.DryRun)
	if !opts.DryRun {
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("execution failed: %w", err)
		}
	}

	for _, r := range summary.Results {
		switch {
		case opts.DryRun:
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s (%s)\n", r.Description, r.Status)
		case r.Status == StatusUnchanged:
			fmt.Fprintf(opts.Writer, "= %s (unchanged)\n", r.Description)
		default:
			fmt.Fprintf(opts.Writer, "✓ %s\n", r.Description)
		}
	}

	return summary, nil
}
