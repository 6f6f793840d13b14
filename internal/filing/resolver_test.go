package filing

import "testing"

func TestModelResolverTrustsLabel(t *testing.T) {
	r := ModelResolver{}
	if got := r.Resolve("Rechnungen", "anything"); got != "Rechnungen" {
		t.Fatalf("expected Rechnungen, got %q", got)
	}
	if got := r.Resolve("Steuern 2024", ""); got != "Steuern 2024" {
		t.Fatalf("expected novel label kept, got %q", got)
	}
}

func TestModelResolverEmptyLabelFallsBack(t *testing.T) {
	r := ModelResolver{}
	if got := r.Resolve("   ", "content"); got != DefaultCategory {
		t.Fatalf("expected %s, got %q", DefaultCategory, got)
	}
}

func TestRuleResolverKeywords(t *testing.T) {
	r := RuleResolver{}
	cases := map[string]string{
		"Ihre Rechnung vom 3.1.":     "Rechnungen",
		"Der Mietvertrag beginnt":    "Verträge",
		"Quartalsbericht Q3":         "Berichte",
		"unrelated text":             DefaultCategory,
		"":                           DefaultCategory,
	}
	for content, want := range cases {
		if got := r.Resolve("ignored", content); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", content, got, want)
		}
	}
}

func TestResolverForStrategy(t *testing.T) {
	if _, ok := ResolverFor("rules").(RuleResolver); !ok {
		t.Fatal("expected RuleResolver for rules strategy")
	}
	if _, ok := ResolverFor("model").(ModelResolver); !ok {
		t.Fatal("expected ModelResolver for model strategy")
	}
	if _, ok := ResolverFor("unknown").(ModelResolver); !ok {
		t.Fatal("expected ModelResolver fallback")
	}
}
