// Package output prints the preflight status lines.
//
// Every check reports through a Printer using one of three markers:
// ✅ for a passed check, ⚠️ for a non-fatal finding and ❌ for a failure.
// Color is applied with lipgloss, separately for stdout and stderr, when
// the writer is a terminal and NO_COLOR is unset.
//
// Example usage:
//
//	printer := output.NewPrinter(os.Stdout, os.Stderr)
//	printer.Header("Validating configuration...")
//	printer.Success("Docker installed")
//	printer.Failure("System prompt not found")
package output
