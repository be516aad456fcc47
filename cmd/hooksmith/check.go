// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/commitmsg"
	"github.com/gorewood/hooksmith/internal/output"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "check [subject]",
		Short: "Validate a commit subject",
		Long: `Validate a commit subject against the conventional commit grammar.

The subject must follow: type(scope): description
  - type is one of the accepted tokens (feat, fix, chore, ...)
  - scope is optional lowercase alphanumerics, hyphen, or underscore
  - the whole subject is at most 72 characters

Subjects generated by git itself (Merge, Revert, Auto-merge prefixes)
always pass.

Examples:
  hooksmith check "feat(cli): add verify command"
  hooksmith check --file .git/COMMIT_EDITMSG
  hooksmith check "fix: handle empty input" --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, fromFile)
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "Read the subject from the first line of a file")

	return cmd
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, args []string, fromFile string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	subject, err := resolveSubject(args, fromFile)
	if err != nil {
		printer.Error(err)
		return err
	}

	rules := loadRules()
	result := rules.Validate(subject)

	if printer.IsJSON() {
		return outputCheckJSON(printer, subject, result)
	}

	return outputCheckHuman(printer, subject, result)
}

// resolveSubject picks the subject from the positional arg or --file.
func resolveSubject(args []string, fromFile string) (string, error) {
	if fromFile != "" && len(args) > 0 {
		return "", output.NewUserError("pass a subject or --file, not both")
	}

	if fromFile != "" {
		return readSubjectLine(fromFile)
	}

	if len(args) == 0 {
		return "", output.NewUserError("no subject given. Pass a subject or --file")
	}
	return args[0], nil
}

// readSubjectLine reads the first line of a commit message file.
func readSubjectLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read message file", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", output.NewSystemErrorWithCause("failed to read message file", err)
	}
	return "", nil
}

// outputCheckJSON emits the validation result as JSON.
func outputCheckJSON(printer *output.Printer, subject string, result commitmsg.Result) error {
	data := map[string]any{
		"subject":  subject,
		"accepted": result.Accepted,
		"bypass":   result.Bypass,
	}
	if result.Reason != "" {
		data["reason"] = result.Reason
	}
	if result.Subject != nil {
		data["type"] = result.Subject.Type
		data["scope"] = result.Subject.Scope
		data["description"] = result.Subject.Description
	}

	if !result.Accepted {
		if err := printer.WriteJSON(data); err != nil {
			return err
		}
		return output.NewUserError(result.Reason)
	}
	return printer.WriteJSON(data)
}

// outputCheckHuman emits the validation result for humans.
func outputCheckHuman(printer *output.Printer, subject string, result commitmsg.Result) error {
	if result.Accepted {
		msg := "Subject accepted"
		if result.Bypass {
			msg = "Subject accepted (git-generated, not validated)"
		}
		return printer.Success(map[string]any{"message": msg})
	}

	err := output.NewUserError(fmt.Sprintf("rejected: %s", result.Reason))
	printer.Error(err)
	return err
}
