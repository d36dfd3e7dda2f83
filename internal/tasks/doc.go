// Package tasks provides the concrete task kinds the pipeline can register:
// Exec (shell commands with an isolated environment), Copy (single-file
// copies), and Archive (tar.gz bundles).
//
// Each kind is a plain struct whose exported fields are the configuration
// surface; providers mutate them through configuration actions before Do is
// called. Validation happens in Do, so a half-configured task is legal right
// up until it runs.
package tasks
