package domaincheck

import "context"

// Status represents the availability of one (name, TLD) pair.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusUnknown   Status = "unknown"
)

// Result is the outcome of checking a single candidate domain.
type Result struct {
	Name   string `json:"name"`
	TLD    string `json:"tld"`
	Domain string `json:"domain"`
	Status Status `json:"status"`
}

// Request names the candidate base names and the TLDs to check them against.
// It doubles as the argument payload of the checkDomains tool.
type Request struct {
	Names []string `json:"names"`
	TLDs  []string `json:"tlds,omitempty"`
}

// Checker resolves availability for every (name, TLD) pair.
//
// Implementations must return exactly one Result per unique normalized
// (name, TLD) pair, ordered with names as the outer loop and TLDs as the
// inner loop. Lookup failures are reported as StatusUnknown on the affected
// pair, never as an error: one bad lookup must not abort a batch.
type Checker interface {
	Check(ctx context.Context, names []string, tlds []string) []Result
}
