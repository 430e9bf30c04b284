package brainstorm

import (
	"fmt"
	"strings"
)

// RoundInstruction is the structured per-round addition to the base system
// prompt. The decision logic fills the record; Render turns it into text at
// the boundary so the loop itself stays free of string concatenation.
type RoundInstruction struct {
	Target     int
	HardCap    int // 0 when only a minimum is requested
	Remaining  int
	BatchSize  int
	ForcedTLDs []string
	Found      []string // full domains already confirmed available
	Checked    []string // base names already checked, to steer away from duplicates
}

// Render produces the instruction text appended to the base system prompt.
func (ri RoundInstruction) Render() string {
	var b strings.Builder

	if ri.HardCap > 0 {
		fmt.Fprintf(&b, "The user asked for exactly %d available domains. %d more are still needed.", ri.HardCap, ri.Remaining)
	} else {
		fmt.Fprintf(&b, "Collect at least %d available domains. %d more are still needed.", ri.Target, ri.Remaining)
	}

	if len(ri.ForcedTLDs) > 0 {
		fmt.Fprintf(&b, " Only check the following TLDs: %s.", strings.Join(ri.ForcedTLDs, ", "))
	}

	fmt.Fprintf(&b, " Call the %s tool with a batch of about %d new candidate names.", ToolCheckDomains, ri.BatchSize)

	if len(ri.Found) > 0 {
		fmt.Fprintf(&b, " Already confirmed available: %s.", strings.Join(ri.Found, ", "))
	}
	if len(ri.Checked) > 0 {
		fmt.Fprintf(&b, " Already checked (do not propose again): %s.", strings.Join(ri.Checked, ", "))
	}

	return b.String()
}

// NudgeMessage is the synthetic user turn appended when the model answers
// without a tool call. From the second consecutive miss on, it demands pure
// JSON output so the fallback parser can take over.
func NudgeMessage(streak int) string {
	if streak >= 2 {
		return "Reply with a pure JSON array of candidate base names and nothing else. No prose, no markdown, no explanations. Example: [\"zenlane\",\"cloudnip\",\"brandle\"]"
	}
	return "You must call the " + ToolCheckDomains + " tool with your candidate names instead of describing them. Please call the tool now."
}
