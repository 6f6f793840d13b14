// Package filing resolves a category for each document and places the
// original file under the category's directory.
package filing

import "strings"

// DefaultCategory is the catch-all for empty or unrecognized labels.
const DefaultCategory = "Sonstiges"

// CategoryResolver maps an extracted label and the document content to a
// canonical category. Two interchangeable strategies exist; the active one
// is chosen by configuration.
type CategoryResolver interface {
	Resolve(label, content string) string
}

// ModelResolver trusts the label proposed by the metadata model and only
// falls back to the default when the label is blank.
type ModelResolver struct{}

func (ModelResolver) Resolve(label, content string) string {
	_ = content
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		return trimmed
	}
	return DefaultCategory
}

// RuleResolver ignores the model label and categorizes by keyword matching
// on the document content.
type RuleResolver struct{}

func (RuleResolver) Resolve(label, content string) string {
	_ = label
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "rechnung"):
		return "Rechnungen"
	case strings.Contains(lower, "vertrag"):
		return "Verträge"
	case strings.Contains(lower, "bericht"):
		return "Berichte"
	default:
		return DefaultCategory
	}
}

// ResolverFor returns the resolver for a configured strategy name.
func ResolverFor(strategy string) CategoryResolver {
	if strings.EqualFold(strings.TrimSpace(strategy), "rules") {
		return RuleResolver{}
	}
	return ModelResolver{}
}
