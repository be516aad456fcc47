// Package output provides the Printer abstraction and the exit-code
// contract shared by every hooksmith command.
//
// Commands construct a Printer from their cobra writer and the --json flag,
// then route all success, warning, and error output through it. Errors are
// ExitError values carrying one of the four contract codes; main extracts
// the code with GetExitCode.
package output
