package intent

import (
	"regexp"
	"strings"
)

// Mode is the operating mode selected for one user turn.
type Mode string

const (
	// ModeCheck runs a single availability round-trip for explicit domains.
	ModeCheck Mode = "check"
	// ModeBrainstorm drives the iterative brainstorm loop.
	ModeBrainstorm Mode = "brainstorm"
)

var (
	domainTokenRe = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9-]*\.[a-z]{2,14}\b`)
	checkVerbRe   = regexp.MustCompile(`(?i)\b(check|is\s+\S{1,30}\s+(available|free|taken)|verifie[rz]?|vérifie[rz]?|disponible)\b`)
	quotedTokenRe = regexp.MustCompile(`["'` + "`" + `][^"'` + "`" + `]{1,40}["'` + "`" + `]`)

	brainstormCueRe = regexp.MustCompile(`(?i)\b(suggest|suggestions?|ideas?|idées?|brainstorm|brand\s+names?|names?\s+for|for\s+my\s+(project|startup|app|company|business)|propose[rz]?|trouve|noms?\s+de\s+marque|pour\s+mon\s+(projet|produit|site))\b`)

	continuationWords = map[string]struct{}{
		"again":      {},
		"recheck":    {},
		"retry":      {},
		"more":       {},
		"encore":     {},
		"plus":       {},
		"recommence": {},
	}
)

// Classify decides the operating mode for the latest user utterance. A short
// continuation cue keeps the previous mode; explicit-check signals beat
// brainstorm signals.
func Classify(text string, previous Mode) Mode {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallbackMode(previous)
	}

	if IsContinuationRequest(trimmed) && previous != "" {
		return previous
	}

	hasCheck := hasExplicitCheckSignal(trimmed)
	hasBrainstorm := brainstormCueRe.MatchString(trimmed)

	if hasCheck {
		return ModeCheck
	}
	if hasBrainstorm || wordCount(trimmed) >= 10 {
		return ModeBrainstorm
	}
	return fallbackMode(previous)
}

// IsContinuationRequest reports whether the utterance is a short cue asking
// to repeat or extend the previous action.
func IsContinuationRequest(text string) bool {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:")
		if _, ok := continuationWords[w]; ok {
			return true
		}
	}
	return false
}

func hasExplicitCheckSignal(text string) bool {
	if domainTokenRe.MatchString(text) {
		return true
	}
	if !checkVerbRe.MatchString(text) {
		return false
	}
	// A checking verb applied to a short or quoted token.
	return quotedTokenRe.MatchString(text) || wordCount(text) <= 6
}

func fallbackMode(previous Mode) Mode {
	if previous != "" {
		return previous
	}
	return ModeBrainstorm
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
