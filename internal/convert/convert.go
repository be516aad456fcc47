// Package convert implements the format-conversion catalogue: a registry
// of named X-to-Y operations, each delegating to one external tool.
//
// A conversion performs no transformation itself. Its job is to marshal
// arguments, invoke the tool, wire stdin/stdout where the tool works on
// streams, and propagate the exit status. Availability of the tool is
// checked up front so callers can report "unavailable" distinctly from
// "failed".
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gorewood/hooksmith/internal/output"
)

// Conversion is one named operation in the catalogue.
type Conversion struct {
	Name string // e.g. "wav-to-mp3"
	From string // source format
	To   string // target format
	Tool string // external binary the operation delegates to

	// args builds the tool's argument list for the given input and
	// output paths.
	args func(in, out string) []string
	// stdoutToOut captures the tool's stdout into the output file.
	stdoutToOut bool
	// stdinFromIn feeds the input file to the tool's stdin.
	stdinFromIn bool
}

// toolProbes holds capability checks for tools whose presence on PATH is
// not enough to know the right flavor is installed. "yq" is ambiguous:
// Debian ships a Python jq wrapper under the same name, which shares none
// of the flags the catalogue uses. Only mikefarah yq qualifies, and its
// version banner names the project.
var toolProbes = map[string]func() bool{
	"yq": func() bool {
		out, err := exec.Command("yq", "--version").CombinedOutput()
		return err == nil && bytes.Contains(out, []byte("mikefarah"))
	},
}

// ToolAvailable reports whether the named external tool is on PATH and,
// where a probe exists, of a usable flavor.
func ToolAvailable(tool string) bool {
	if _, err := exec.LookPath(tool); err != nil {
		return false
	}
	if probe, ok := toolProbes[tool]; ok {
		return probe()
	}
	return true
}

// Available reports whether the conversion's tool is usable.
func (c *Conversion) Available() bool {
	return ToolAvailable(c.Tool)
}

// ToolUnavailableError reports a conversion whose external tool is not
// installed or is an incompatible variant. Callers treat it as "skip",
// not "fail".
type ToolUnavailableError struct {
	Tool   string
	Reason string
}

func (e *ToolUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("tool %q unavailable: %s", e.Tool, e.Reason)
	}
	return fmt.Sprintf("tool %q not found in PATH", e.Tool)
}

// IsToolUnavailable reports whether err (or its chain) is a
// ToolUnavailableError.
func IsToolUnavailable(err error) bool {
	var tue *ToolUnavailableError
	return errors.As(err, &tue)
}

// Run executes the conversion from the input path to the output path.
//
// Error classification follows the CLI contract: missing input file is a
// user error, a missing tool is a ToolUnavailableError, and a nonzero
// tool exit is a system error carrying the tool's stderr.
func (c *Conversion) Run(ctx context.Context, in, out string) error {
	if _, err := os.Stat(in); err != nil {
		return output.NewUserError(fmt.Sprintf("input file %s does not exist", in))
	}

	if _, err := exec.LookPath(c.Tool); err != nil {
		return &ToolUnavailableError{Tool: c.Tool}
	}
	if probe, ok := toolProbes[c.Tool]; ok && !probe() {
		return &ToolUnavailableError{Tool: c.Tool, Reason: "an incompatible variant is installed"}
	}

	cmd := exec.CommandContext(ctx, c.Tool, c.args(in, out)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if c.stdinFromIn {
		inFile, err := os.Open(in)
		if err != nil {
			return output.NewSystemErrorWithCause("failed to open input file", err)
		}
		defer inFile.Close() //nolint:errcheck // best-effort close on read-only file
		cmd.Stdin = inFile
	}

	var outFile *os.File
	if c.stdoutToOut {
		f, err := os.Create(out)
		if err != nil {
			return output.NewSystemErrorWithCause("failed to create output file", err)
		}
		outFile = f
		cmd.Stdout = f
	}

	runErr := cmd.Run()
	if outFile != nil {
		if closeErr := outFile.Close(); closeErr != nil && runErr == nil {
			runErr = closeErr
		}
	}

	if runErr != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = runErr.Error()
		}
		return output.NewSystemErrorWithCause(
			fmt.Sprintf("%s failed: %s", c.Tool, errMsg), runErr)
	}

	return nil
}
