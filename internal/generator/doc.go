// Package generator provides the file operations behind metadata emission:
// template rendering, dry-run aware execution, transactional writes and
// diff previews.
//
// # Operations
//
// Generators return []Operation instead of writing directly, so the caller
// decides whether to apply them:
//
//	summary, err := generator.Execute(ctx, ops, generator.ExecuteOptions{
//	    DryRun:   dryRun,
//	    ShowDiff: showDiff,
//	})
//
// Execute validates every operation before touching the disk. Writes of
// unchanged content are skipped, which keeps regeneration idempotent.
//
// # Transactions
//
// File writes are committed through a Transaction:
//
//	tx := generator.NewTransaction()
//	tx.Add(&generator.WriteFileOp{Path: "a/.project", Content: content, Mode: 0644})
//	if err := tx.Commit(ctx); err != nil {
//	    // Files written so far were restored to their previous content
//	    return err
//	}
package generator
