package brainstorm

import (
	"encoding/json"
	"fmt"

	"github.com/namestorm/server/internal/domain/domaincheck"
	"github.com/namestorm/server/internal/domain/llm"
)

// ToolCheckDomains is the single tool exposed to the model.
const ToolCheckDomains = "checkDomains"

// CheckDomainsTool declares the checkDomains function contract passed to the
// gateway on every round.
func CheckDomainsTool() llm.ToolDefinition {
	return llm.ToolDefinition{
		Type: "function",
		Function: llm.ToolFunctionSchema{
			Name:        ToolCheckDomains,
			Description: "Check whether candidate brand names are available as domains. Returns one status per (name, TLD) pair.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"names": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Candidate base names without TLD, e.g. [\"zenlane\", \"cloudnip\"].",
					},
					"tlds": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Optional TLDs to restrict the check to, e.g. [\".com\", \".io\"].",
					},
				},
				"required": []string{"names"},
			},
		},
	}
}

// ParseCheckDomainsArgs decodes the model supplied tool arguments.
func ParseCheckDomainsArgs(raw json.RawMessage) (domaincheck.Request, error) {
	var req domaincheck.Request
	if len(raw) == 0 {
		return req, fmt.Errorf("checkDomains: empty arguments")
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("checkDomains: decode arguments: %w", err)
	}
	if len(req.Names) == 0 {
		return req, fmt.Errorf("checkDomains: names must not be empty")
	}
	return req, nil
}
