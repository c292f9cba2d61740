package gate

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultProduct is the short name used to build product-specific
// skip directives when no override is configured.
const DefaultProduct = "otter"

// Reason explains why a skip decision was (or was not) made
type Reason string

const (
	// ReasonDirectiveMatched means a skip directive was found in the PR title or description
	ReasonDirectiveMatched Reason = "directive_matched"

	// ReasonStateMergedOrClosed means the PR is already merged or closed
	ReasonStateMergedOrClosed Reason = "state_merged_or_closed"

	// ReasonNone means no skip condition applied
	ReasonNone Reason = "none"
)

// Decision is the result of evaluating a pull request against the gate
type Decision struct {
	// Skip indicates the review pipeline should not run
	Skip bool `json:"skip"`

	// Reason records which condition triggered the skip
	Reason Reason `json:"reason"`

	// Matched lists the directives (or terminal state) that fired, lowercased
	Matched []string `json:"matched,omitempty"`
}

// terminalStatePattern matches PR states after which review is moot (case-insensitive)
var terminalStatePattern = regexp.MustCompile(`(?i)\b(?:merged|closed)\b`)

// Gate evaluates pull request metadata against the skip-directive vocabulary.
// Evaluate performs no I/O; a Gate is safe for concurrent use once built.
type Gate struct {
	directives   []string
	directivesRe *regexp.Regexp
}

// Directives returns the built-in skip vocabulary for a product short name.
// The product name is lowercased; an empty name falls back to DefaultProduct.
func Directives(product string) []string {
	p := strings.ToLower(strings.TrimSpace(product))
	if p == "" {
		p = DefaultProduct
	}
	return []string{
		"no-review",
		"skip-review",
		"no-" + p,
		"skip-" + p,
		"no-" + p + "ai",
		p + "-no",
		p + "-bye",
		p + "-restricted",
	}
}

// New builds a Gate for the given product short name plus any extra
// directives from repository configuration. Extra directives are matched
// literally, case-insensitively, with the same whole-token boundaries as
// the built-in vocabulary.
func New(product string, extra []string) *Gate {
	directives := Directives(product)
	for _, d := range extra {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			directives = append(directives, d)
		}
	}

	quoted := make([]string, 0, len(directives))
	for _, d := range directives {
		quoted = append(quoted, regexp.QuoteMeta(d))
	}

	// Whole-token match: \b anchors on both sides keep "otter-restrictedly"
	// from matching "otter-restricted", while comma-chained directives like
	// "no-review,otter-bye" still match each token.
	pattern := fmt.Sprintf(`(?i)\b(?:%s)\b`, strings.Join(quoted, "|"))

	return &Gate{
		directives:   directives,
		directivesRe: regexp.MustCompile(pattern),
	}
}

// Directives returns the active vocabulary, built-ins first
func (g *Gate) Directives() []string {
	out := make([]string, len(g.directives))
	copy(out, g.directives)
	return out
}

// Evaluate decides whether review should be skipped for the given PR
// metadata. Missing title or description is treated as empty text.
// A directive match takes precedence over a terminal state in the
// reported reason when both fire.
func (g *Gate) Evaluate(title, description, state string) Decision {
	text := title + " " + description

	matched := g.directivesRe.FindAllString(text, -1)
	if len(matched) > 0 {
		return Decision{
			Skip:    true,
			Reason:  ReasonDirectiveMatched,
			Matched: dedupeLower(matched),
		}
	}

	if stateMatch := terminalStatePattern.FindString(state); stateMatch != "" {
		return Decision{
			Skip:    true,
			Reason:  ReasonStateMergedOrClosed,
			Matched: []string{strings.ToLower(stateMatch)},
		}
	}

	return Decision{Skip: false, Reason: ReasonNone}
}

// dedupeLower lowercases matches and drops duplicates, preserving order
func dedupeLower(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		m = strings.ToLower(m)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
