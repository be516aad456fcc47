// Package git wraps the git binary for the small set of repository
// operations hooksmith needs: repo detection, staged-file listing and
// re-staging, and commit log harvesting for validation and metrics.
//
// All operations shell out to git; there is no in-process repository
// implementation. Failures surface as output.ExitError system errors
// carrying git's stderr.
package git
