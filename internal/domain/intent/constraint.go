package intent

import "strings"

// ConstraintKind tags how the TLD constraint for a turn was determined.
type ConstraintKind string

const (
	// ConstraintNone means no restriction applies; the user's globally
	// selected TLD set is used.
	ConstraintNone ConstraintKind = "none"
	// ConstraintExplicit pins the TLDs stated this turn.
	ConstraintExplicit ConstraintKind = "explicit"
	// ConstraintCleared records that the user lifted the restriction.
	ConstraintCleared ConstraintKind = "cleared"
	// ConstraintCarried keeps the prior turn's restriction across a
	// continuation request.
	ConstraintCarried ConstraintKind = "carried"
	// ConstraintForced re-imposes the prior restriction because this turn
	// mentions the constrained TLD again.
	ConstraintForced ConstraintKind = "forced"
)

// TLDConstraint is the tagged state of the TLD restriction for one turn.
type TLDConstraint struct {
	Kind ConstraintKind
	TLDs []string
}

// Active reports whether the constraint restricts the TLD set.
func (c TLDConstraint) Active() bool {
	switch c.Kind {
	case ConstraintExplicit, ConstraintCarried, ConstraintForced:
		return len(c.TLDs) > 0
	}
	return false
}

// Effective resolves the TLD set for a turn: the constrained set when the
// constraint is active, the user's globally selected set otherwise.
func (c TLDConstraint) Effective(selected []string) []string {
	if c.Active() {
		return c.TLDs
	}
	return selected
}

// ResolveTLDConstraint applies the per-turn precedence rules:
// explicit TLDs stated this turn, else an explicit clear, else carry-over on
// a continuation, else re-imposition when the turn mentions the previously
// constrained TLD, else unconstrained.
func ResolveTLDConstraint(text string, prior TLDConstraint) TLDConstraint {
	if tlds := ExtractExplicitTLDs(text); len(tlds) > 0 {
		return TLDConstraint{Kind: ConstraintExplicit, TLDs: tlds}
	}
	if ClearsTLDConstraint(text) {
		return TLDConstraint{Kind: ConstraintCleared}
	}
	if IsContinuationRequest(text) && prior.Active() {
		return TLDConstraint{Kind: ConstraintCarried, TLDs: prior.TLDs}
	}
	if prior.Active() && mentionsAnyTLD(text, prior.TLDs) {
		return TLDConstraint{Kind: ConstraintForced, TLDs: prior.TLDs}
	}
	return TLDConstraint{Kind: ConstraintNone}
}

// mentionsAnyTLD matches an undotted mention of a constrained TLD ("ai
// domains please"); dotted mentions are already handled by the explicit
// branch of the precedence chain.
func mentionsAnyTLD(text string, tlds []string) bool {
	words := strings.Fields(strings.ToLower(text))
	for _, tld := range tlds {
		label := strings.TrimPrefix(tld, ".")
		if len(label) < 2 {
			continue
		}
		for _, w := range words {
			if strings.Trim(w, ".,!?;:\"'") == label {
				return true
			}
		}
	}
	return false
}
