// Package output provides styled terminal output for pdemeta commands.
//
// Messages go to the writer a Printer was created with, so commands can
// point it at cmd.OutOrStdout() and tests at a buffer:
//
//	p := output.New(cmd.OutOrStdout(), verbose)
//	p.Success("Generated 12 files")
//	p.Info("Next steps:")
//	p.Step("Open the folder in your editor")
//
// Styling:
//
//   - Success: ✓ green bold
//   - Error: ✗ red bold
//   - Info: ℹ cyan
//   - Step: indented gray
//   - Verbose: … gray (when enabled)
package output
