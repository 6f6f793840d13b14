package metadata

import (
	"context"
	"encoding/json"
	"strings"
)

// HeuristicGenerator derives metadata from the document text itself, without
// an external model. It exists so local development works with no API key;
// category is left blank and resolved downstream.
type HeuristicGenerator struct{}

func (HeuristicGenerator) GenerateStructured(ctx context.Context, documentText string, schema map[string]any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := firstLine(documentText)
	if name == "" {
		name = "Dokument"
	}

	meta := FileMetadata{
		Dateiname: truncate(name, 60),
		Inhalt:    truncate(strings.TrimSpace(documentText), 200),
		Kategorie: "",
	}
	return json.Marshal(meta)
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
