package metadata

// Schema returns the JSON-Schema constraint for the metadata response.
// It is passed to the model as a structured-output constraint and used
// locally to validate what comes back: exactly the three string fields,
// nothing more, nothing less.
func Schema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"dateiname": map[string]any{
				"type":        "string",
				"description": "Der empfohlene Dateiname basierend auf dem Inhalt des Dokuments.",
			},
			"inhalt": map[string]any{
				"type":        "string",
				"description": "Zusammengefasster Dokumentinhalt. Also detailliert, aber nicht zu detailliert.",
			},
			"kategorie": map[string]any{
				"type":        "string",
				"description": "Die Kategorie des Dokuments, wie Rechnungen, Verträge, Berichte, Sonstiges.",
			},
		},
		"required": []string{"dateiname", "inhalt", "kategorie"},
	}
}
