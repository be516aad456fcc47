package git

import (
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/hooksmith/internal/output"
)

// Commit represents a git commit with the metadata hooksmith cares about.
type Commit struct {
	SHA     string    // Full 40-character SHA
	Short   string    // Abbreviated SHA (typically 7 chars)
	Subject string    // First line of commit message
	Author  string    // Author name
	Date    time.Time // Commit date
}

// commitSeparator is used to delimit commits in log output.
const commitSeparator = "---COMMIT-BOUNDARY---"

// fieldSeparator is used to delimit fields within a commit.
const fieldSeparator = "---FIELD---"

// logFormat is the --pretty format matching the Commit fields:
// SHA, Short, Subject, Author, Unix timestamp.
var logFormat = strings.Join([]string{"%H", "%h", "%s", "%an", "%at"}, fieldSeparator) + commitSeparator

// Log returns commits in the given range (fromRef..toRef).
// The 'fromRef' ref is exclusive, 'toRef' is inclusive.
func Log(fromRef, toRef string) ([]Commit, error) {
	rangeSpec := fromRef + ".." + toRef
	out, err := Run("log", "--pretty=format:"+logFormat, rangeSpec)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get git log for range "+rangeSpec, err)
	}
	return parseCommits(out), nil
}

// LogAll returns all commits reachable from HEAD, newest first, capped at
// limit. A limit of 0 means no cap.
func LogAll(limit int) ([]Commit, error) {
	args := []string{"log", "--pretty=format:" + logFormat}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	out, err := Run(args...)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get git log", err)
	}
	return parseCommits(out), nil
}

// parseCommits parses the custom formatted git log output into Commit structs.
func parseCommits(out string) []Commit {
	if out == "" {
		return nil
	}

	var commits []Commit
	for _, commitStr := range strings.Split(out, commitSeparator) {
		commitStr = strings.TrimSpace(commitStr)
		if commitStr == "" {
			continue
		}
		if commit, ok := parseCommitFields(commitStr); ok {
			commits = append(commits, commit)
		}
	}
	return commits
}

// parseCommitFields parses a single commit string into a Commit struct.
// Returns the commit and true if successful, zero value and false otherwise.
func parseCommitFields(commitStr string) (Commit, bool) {
	fields := strings.Split(commitStr, fieldSeparator)
	if len(fields) < 5 {
		return Commit{}, false
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
	if err != nil {
		timestamp = 0
	}

	return Commit{
		SHA:     strings.TrimSpace(fields[0]),
		Short:   strings.TrimSpace(fields[1]),
		Subject: strings.TrimSpace(fields[2]),
		Author:  strings.TrimSpace(fields[3]),
		Date:    time.Unix(timestamp, 0),
	}, true
}
