package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/namestorm/server/internal/domain/domaincheck"
)

const (
	minRequestedCount = 1
	maxRequestedCount = 50
	maxExplicitTLDs   = 8
	// TLD token length bounds, leading dot included.
	minTLDTokenLen = 3
	maxTLDTokenLen = 15
)

var (
	countRe = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:names?|domains?|domaines?|noms?|ideas?|idées?|suggestions?|propositions?)\b`)
	// "give me 5" / "donne-moi 5" with no unit word.
	bareCountRe = regexp.MustCompile(`(?i)\b(?:give\s+me|i\s+(?:want|need)|donne[-\s]moi|je\s+(?:veux|voudrais))\s+(?:only\s+|exactly\s+|juste\s+|exactement\s+)?(\d{1,3})\b`)

	// A dot-led token that is not the extension of a full domain.
	tldTokenRe = regexp.MustCompile(`(?i)(^|[^a-z0-9])\.([a-z][a-z0-9-]{1,13})\b`)

	clearTLDRe = regexp.MustCompile(`(?i)\b(any\s+(tld|extension)|all\s+(tlds|extensions)|no\s+(tld\s+)?(constraint|restriction)|remove\s+(the\s+)?(tld\s+)?(constraint|restriction)|n['’]importe\s+quelle\s+extension|toutes\s+les\s+extensions|peu\s+importe\s+l['’]extension|sans\s+contrainte)\b`)

	frenchCueRe = regexp.MustCompile(`(?i)\b(je|j['’]ai|tu|vous|nous|le|la|les|un|une|des|est|sont|pour|avec|nom|noms|domaine|domaines|donne|besoin|projet|marque|idées?|cherche|veux|voudrais|trouve|propose|s['’]il|merci|encore|recommence)\b`)
)

// ExtractRequestedCount parses an explicit "N names/domains" request from
// the utterance. The returned value is always clamped to [1, 50]; ok is
// false when no numeric count phrase is present.
func ExtractRequestedCount(text string) (int, bool) {
	m := countRe.FindStringSubmatch(text)
	if m == nil {
		m = bareCountRe.FindStringSubmatch(text)
	}
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[len(m)-1])
	if err != nil {
		return 0, false
	}
	if n < minRequestedCount {
		n = minRequestedCount
	}
	if n > maxRequestedCount {
		n = maxRequestedCount
	}
	return n, true
}

// ExtractExplicitTLDs scans the utterance for standalone ".xxx"-shaped
// tokens. Results are normalized, deduplicated, length-bounded and capped at
// eight entries. Returns nil when no TLD token is present.
func ExtractExplicitTLDs(text string) []string {
	matches := tldTokenRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	raw := make([]string, 0, len(matches))
	for _, m := range matches {
		token := "." + m[2]
		if len(token) < minTLDTokenLen || len(token) > maxTLDTokenLen {
			continue
		}
		raw = append(raw, token)
	}
	tlds := domaincheck.NormalizeTLDs(raw)
	if len(tlds) == 0 {
		return nil
	}
	if len(tlds) > maxExplicitTLDs {
		tlds = tlds[:maxExplicitTLDs]
	}
	return tlds
}

// ExtractDomains pulls explicit full-domain tokens ("name.tld") out of the
// utterance, split into normalized base name and TLD.
func ExtractDomains(text string) []domaincheck.Request {
	matches := domainTokenRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]domaincheck.Request, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		idx := strings.LastIndex(m, ".")
		name := domaincheck.NormalizeName(m[:idx])
		tld := domaincheck.NormalizeTLD(m[idx:])
		if name == "" || tld == "" {
			continue
		}
		key := name + tld
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, domaincheck.Request{Names: []string{name}, TLDs: []string{tld}})
	}
	return out
}

// ClearsTLDConstraint reports whether the user explicitly lifts any TLD
// restriction this turn ("any TLD", "remove constraint", ...).
func ClearsTLDConstraint(text string) bool {
	return clearTLDRe.MatchString(text)
}

// LooksFrench is a lightweight heuristic deciding the summary language.
func LooksFrench(text string) bool {
	return len(frenchCueRe.FindAllString(text, 3)) >= 2
}
