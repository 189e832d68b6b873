// Package catalog lists the tools bundled in toolhub and filters them by a
// free-text query.
package catalog

import (
	"errors"
	"strings"
)

// ErrUnknownTool is returned by Lookup.
var ErrUnknownTool = errors.New("unknown tool")

// Tool IDs.
const (
	WordRemover      = "word-remover"
	CaseConverter    = "case-converter"
	VLSMCalculator   = "vlsm-calculator"
	NumberConverter  = "number-converter"
	NetworkAssistant = "network-assistant"
)

// Tool describes one entry in the hub.
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	// ExternalURL is set for tools hosted elsewhere.
	ExternalURL string `json:"external_url,omitempty"`
}

// External reports whether the tool lives outside toolhub.
func (t Tool) External() bool { return t.ExternalURL != "" }

var tools = []Tool{
	{
		ID:          WordRemover,
		Name:        "Word Remover",
		Description: "Remove unwanted words from text quickly.",
		Icon:        "✂️",
	},
	{
		ID:          CaseConverter,
		Name:        "Case Converter",
		Description: "Convert text to UPPER, lower, Title, Sentence case and more.",
		Icon:        "🔤",
	},
	{
		ID:          VLSMCalculator,
		Name:        "VLSM Calculator",
		Description: "Variable Length Subnet Mask calculator to plan IP subnets efficiently.",
		Icon:        "🌐",
		ExternalURL: "https://iamjhomi.github.io/new/",
	},
	{
		ID:          NumberConverter,
		Name:        "Number System Converter",
		Description: "Convert between decimal, binary, octal, and hexadecimal.",
		Icon:        "🔢",
	},
	{
		ID:          NetworkAssistant,
		Name:        "Network Assistant",
		Description: "AI-powered networking help with explanations and CLI configuration code.",
		Icon:        "🎓",
	},
}

// All returns every tool in display order.
func All() []Tool {
	return append([]Tool(nil), tools...)
}

// Filter returns the tools whose name or description contains query,
// ignoring case. A blank query matches everything.
func Filter(query string) []Tool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}

	out := make([]Tool, 0, len(tools))
	for _, t := range tools {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the tool with the given id.
func Lookup(id string) (Tool, error) {
	for _, t := range tools {
		if t.ID == id {
			return t, nil
		}
	}
	return Tool{}, ErrUnknownTool
}
