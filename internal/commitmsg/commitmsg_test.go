package commitmsg

import (
	"strings"
	"testing"
)

func TestValidateAccepted(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		subject string
	}{
		{"type only", "feat: add foo"},
		{"type with scope", "feat(cli): add foo"},
		{"fix with hyphenated scope", "fix(pre-commit): handle empty index"},
		{"underscore scope", "chore(build_tools): bump versions"},
		{"numeric scope", "docs(v2): update readme"},
		{"wip type", "wip: half-finished parser"},
		{"revert type", "revert: undo the thing"},
		{"merge bypass", "Merge branch 'x'"},
		{"revert bypass", "Revert \"feat: add foo\""},
		{"auto-merge bypass", "Auto-merge of #42"},
		{"exactly 72 characters", "feat: " + strings.Repeat("a", 66)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := rules.Validate(tt.subject)
			if !res.Accepted {
				t.Errorf("Validate(%q) rejected: %s", tt.subject, res.Reason)
			}
		})
	}
}

func TestValidateRejected(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name       string
		subject    string
		wantReason string // substring of the rejection reason
	}{
		{"empty", "", "empty subject"},
		{"whitespace only", "   ", "empty subject"},
		{"no type prefix", "added stuff", "malformed"},
		{"unknown type", "feature: add foo", "unknown type"},
		{"uppercase type", "Feat: add foo", "malformed"},
		{"missing space after colon", "feat:add foo", "malformed"},
		{"missing description", "feat: ", "malformed"},
		{"uppercase scope", "feat(CLI): add foo", "malformed"},
		{"empty scope", "feat(): add foo", "malformed"},
		{"73 characters", "feat: " + strings.Repeat("a", 67), "73 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := rules.Validate(tt.subject)
			if res.Accepted {
				t.Fatalf("Validate(%q) accepted, want rejection", tt.subject)
			}
			if !strings.Contains(res.Reason, tt.wantReason) {
				t.Errorf("Validate(%q) reason = %q, want substring %q", tt.subject, res.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateLengthBoundary(t *testing.T) {
	rules := DefaultRules()

	at := "feat: " + strings.Repeat("x", 66)
	if len(at) != 72 {
		t.Fatalf("test setup: subject length = %d, want 72", len(at))
	}
	if res := rules.Validate(at); !res.Accepted {
		t.Errorf("72-character subject rejected: %s", res.Reason)
	}

	over := at + "x"
	if res := rules.Validate(over); res.Accepted {
		t.Error("73-character subject accepted")
	}
}

func TestValidateLengthCountsRunes(t *testing.T) {
	rules := DefaultRules()

	// 66 multibyte runes in the description: 72 characters total, more bytes.
	subject := "feat: " + strings.Repeat("é", 66)
	if res := rules.Validate(subject); !res.Accepted {
		t.Errorf("72-rune subject rejected: %s", res.Reason)
	}
}

func TestBypassIgnoresLength(t *testing.T) {
	rules := DefaultRules()
	subject := "Merge branch '" + strings.Repeat("long", 40) + "'"

	res := rules.Validate(subject)
	if !res.Accepted || !res.Bypass {
		t.Errorf("long merge subject should bypass, got accepted=%v bypass=%v", res.Accepted, res.Bypass)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		subject  string
		wantType string
		wantScp  string
		wantDesc string
		wantOK   bool
	}{
		{"feat(cli): add foo", "feat", "cli", "add foo", true},
		{"fix: handle nil", "fix", "", "handle nil", true},
		{"added stuff", "", "", "", false},
		{"feat(cli) add foo", "", "", "", false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.subject)
		if ok != tt.wantOK {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.subject, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got.Type != tt.wantType || got.Scope != tt.wantScp || got.Description != tt.wantDesc {
			t.Errorf("Parse(%q) = %+v", tt.subject, got)
		}
	}
}

func TestWithExtraTypes(t *testing.T) {
	rules := DefaultRules().WithExtraTypes("deps", "feat", "")

	if res := rules.Validate("deps: bump cobra"); !res.Accepted {
		t.Errorf("extra type rejected: %s", res.Reason)
	}

	// No duplicate for an already-known type
	count := 0
	for _, typ := range rules.Types {
		if typ == "feat" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("feat appears %d times in types, want 1", count)
	}

	// Base rules unaffected
	if res := DefaultRules().Validate("deps: bump cobra"); res.Accepted {
		t.Error("deps type accepted without extra types")
	}
}

func TestScopeAllowList(t *testing.T) {
	rules := DefaultRules()
	rules.Scopes = []string{"cli", "hooks"}

	if res := rules.Validate("feat(cli): add foo"); !res.Accepted {
		t.Errorf("allowed scope rejected: %s", res.Reason)
	}
	if res := rules.Validate("feat(core): add foo"); res.Accepted {
		t.Error("disallowed scope accepted")
	}
	// No scope at all is always fine
	if res := rules.Validate("feat: add foo"); !res.Accepted {
		t.Errorf("scopeless subject rejected: %s", res.Reason)
	}
}

func TestClassify(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		subject string
		want    string
	}{
		{"feat(cli): add foo", "feat"},
		{"fix: handle nil", "fix"},
		{"Merge branch 'x'", "merge"},
		{"added stuff", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		if got := rules.Classify(tt.subject); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}
