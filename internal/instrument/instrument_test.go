package instrument

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeInstrument(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instrument.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write instrument: %v", err)
	}
	return path
}

func TestLoadValidDefinition(t *testing.T) {
	path := writeInstrument(t, `{
		"title": "Big Five (60)",
		"scale": {"min": 1, "max": 5, "labels": ["Muy en desacuerdo", "En desacuerdo", "Neutral", "De acuerdo", "Muy de acuerdo"]},
		"traits": [{"code": "O", "label": "Apertura a la experiencia"}],
		"items": [
			{"id": 1, "trait": "O", "text": "Tengo una imaginacion muy activa."},
			{"id": 2, "trait": "C", "reverse": true, "text": "Dejo mis cosas desordenadas."}
		]
	}`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.Title != "Big Five (60)" {
		t.Fatalf("unexpected title %q", def.Title)
	}

	inst := def.Instrument()
	if inst.Scale.Min != 1 || inst.Scale.Max != 5 {
		t.Fatalf("unexpected scale %+v", inst.Scale)
	}
	if len(inst.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(inst.Items))
	}
	if !inst.Items[1].Reverse {
		t.Fatalf("expected item 2 reverse flag")
	}

	if got := def.TraitLabel("O"); got != "Apertura a la experiencia" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := def.TraitLabel("C"); got != "C" {
		t.Fatalf("expected code fallback, got %q", got)
	}
}

func TestLoadRejectsMalformedDefinitions(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			name: "degenerate scale",
			body: `{"scale": {"min": 5, "max": 5}, "items": [{"id": 1, "trait": "O", "text": "x"}]}`,
		},
		{
			name: "no items",
			body: `{"scale": {"min": 1, "max": 5}, "items": []}`,
		},
		{
			name: "duplicate id",
			body: `{"scale": {"min": 1, "max": 5}, "items": [{"id": 1, "trait": "O", "text": "x"}, {"id": 1, "trait": "C", "text": "y"}]}`,
		},
		{
			name: "non-positive id",
			body: `{"scale": {"min": 1, "max": 5}, "items": [{"id": 0, "trait": "O", "text": "x"}]}`,
		},
		{
			name: "empty trait",
			body: `{"scale": {"min": 1, "max": 5}, "items": [{"id": 1, "trait": " ", "text": "x"}]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeInstrument(t, tc.body)
			_, err := Load(path)
			var defErr *DefinitionError
			if !errors.As(err, &defErr) {
				t.Fatalf("expected DefinitionError, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := writeInstrument(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
