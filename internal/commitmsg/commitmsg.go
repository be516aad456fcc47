// Package commitmsg validates commit subjects against the conventional
// commit grammar: type(scope): description.
//
// Validation is a pure classification: a subject is either accepted or
// rejected with a human-readable reason. There is no retry or recovery;
// the commit-msg hook maps a rejection straight to a nonzero exit.
package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultTypes are the conventional commit type tokens accepted out of
// the box. Config may extend this set but never shrinks it.
var DefaultTypes = []string{
	"feat", "fix", "chore", "docs", "style", "refactor",
	"perf", "test", "build", "ci", "revert", "wip",
}

// DefaultMaxSubject is the maximum accepted subject length in characters.
const DefaultMaxSubject = 72

// bypassPrefixes mark subjects git generates itself. These are accepted
// unconditionally, regardless of grammar or length.
var bypassPrefixes = []string{"Merge ", "Revert ", "Auto-merge"}

// subjectPattern matches type(scope): description. The scope group is
// optional; when present it must be lowercase alphanumerics, hyphen, or
// underscore.
var subjectPattern = regexp.MustCompile(`^([a-z0-9]+)(?:\(([a-z0-9_-]+)\))?: (.+)$`)

// Subject is a structurally parsed conventional commit subject.
type Subject struct {
	Type        string
	Scope       string // empty when no scope was given
	Description string
}

// Result classifies a single subject line.
type Result struct {
	Accepted bool
	Bypass   bool     // accepted via a git-generated prefix (Merge/Revert/Auto-merge)
	Reason   string   // rejection reason; empty when accepted
	Subject  *Subject // parsed structure; nil for bypass and most rejections
}

// Rules hold the tunable parts of validation. The zero value is not
// usable; construct with DefaultRules and override from config.
type Rules struct {
	// Types is the full set of accepted type tokens.
	Types []string
	// Scopes is an allow-list of scopes. Empty means any well-formed
	// scope is accepted.
	Scopes []string
	// MaxSubject is the maximum subject length in characters.
	MaxSubject int
}

// DefaultRules returns rules matching the stock conventional commit
// contract: the default type set, any scope, 72-character limit.
func DefaultRules() Rules {
	return Rules{
		Types:      DefaultTypes,
		MaxSubject: DefaultMaxSubject,
	}
}

// WithExtraTypes returns a copy of the rules with additional accepted
// type tokens appended. Duplicates are ignored.
func (r Rules) WithExtraTypes(types ...string) Rules {
	out := r
	out.Types = append([]string(nil), r.Types...)
	for _, t := range types {
		if t != "" && !contains(out.Types, t) {
			out.Types = append(out.Types, t)
		}
	}
	return out
}

// Validate classifies a subject line as accepted or rejected.
func (r Rules) Validate(subject string) Result {
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(subject, prefix) {
			return Result{Accepted: true, Bypass: true}
		}
	}

	if strings.TrimSpace(subject) == "" {
		return Result{Reason: "empty subject"}
	}

	parsed, ok := Parse(subject)
	if !ok {
		return Result{Reason: fmt.Sprintf(
			"malformed subject %q: expected type(scope): description", subject)}
	}

	if !contains(r.Types, parsed.Type) {
		return Result{Reason: fmt.Sprintf(
			"unknown type %q: accepted types are %s", parsed.Type, strings.Join(r.Types, ", "))}
	}

	if len(r.Scopes) > 0 && parsed.Scope != "" && !contains(r.Scopes, parsed.Scope) {
		return Result{Reason: fmt.Sprintf(
			"scope %q is not in the allowed set (%s)", parsed.Scope, strings.Join(r.Scopes, ", "))}
	}

	if n := utf8.RuneCountInString(subject); n > r.MaxSubject {
		return Result{Reason: fmt.Sprintf(
			"subject is %d characters, limit is %d", n, r.MaxSubject)}
	}

	return Result{Accepted: true, Subject: &parsed}
}

// Parse extracts the structural parts of a subject without applying any
// rules. Returns false when the subject does not match the grammar at all.
func Parse(subject string) (Subject, bool) {
	m := subjectPattern.FindStringSubmatch(subject)
	if m == nil {
		return Subject{}, false
	}
	return Subject{
		Type:        m[1],
		Scope:       m[2],
		Description: m[3],
	}, true
}

// Classify buckets a subject for metrics aggregation: the conventional
// type token, "merge" for bypassed subjects, or "other" for everything
// that fails the grammar.
func (r Rules) Classify(subject string) string {
	res := r.Validate(subject)
	switch {
	case res.Bypass:
		return "merge"
	case res.Accepted:
		return res.Subject.Type
	default:
		return "other"
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
