// Package preflight checks that a project is ready to run the n8n/Claude
// toolchain.
//
// The checks run in a fixed order and the first fatal failure stops the run:
//
//  1. the environment file exists
//  2. it assigns a non-empty value to every required variable
//  3. the Claude config, when present, is JSON with an mcpServers key
//     (a missing config is only a warning)
//  4. the container runtime answers "--version"
//  5. the system prompt exists
//
// Failures are *CheckError values whose kind is one of ErrMissingFile,
// ErrMissingVariable, ErrParse, ErrInvalidShape or ErrRuntimeNotFound.
package preflight
