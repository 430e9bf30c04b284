package domaincheck

import "strings"

// NormalizeName lowercases a candidate base name and strips every character
// that cannot appear in a DNS label. Normalization is idempotent.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// NormalizeTLD lowercases a TLD, strips invalid characters and guarantees a
// single leading dot. Normalization is idempotent.
func NormalizeTLD(tld string) string {
	tld = strings.ToLower(strings.TrimSpace(tld))
	tld = strings.TrimLeft(tld, ".")
	var b strings.Builder
	for _, r := range tld {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "." + b.String()
}

// NormalizeNames normalizes every name and drops empties and duplicates,
// preserving first-seen order.
func NormalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := NormalizeName(name)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// NormalizeTLDs normalizes every TLD and drops empties and duplicates,
// preserving first-seen order.
func NormalizeTLDs(tlds []string) []string {
	seen := make(map[string]struct{}, len(tlds))
	out := make([]string, 0, len(tlds))
	for _, tld := range tlds {
		t := NormalizeTLD(tld)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// FullDomain joins a normalized base name and a normalized TLD.
func FullDomain(name, tld string) string {
	return name + tld
}
