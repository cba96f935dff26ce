// Package instrument carga la definicion del cuestionario desde un documento
// JSON y la valida antes de entregarla al motor de puntaje. La definicion se
// carga una vez en el arranque y se trata como inmutable.
package instrument

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"big5-survey/internal/scoring"
)

// ItemDoc es un item tal como viene en el documento: incluye el texto de la
// pregunta, que es dato de presentacion y no participa del puntaje.
type ItemDoc struct {
	ID      int    `json:"id"`
	Trait   string `json:"trait"`
	Reverse bool   `json:"reverse,omitempty"`
	Text    string `json:"text"`
}

// ScaleDoc es la escala del documento, con etiquetas opcionales para el form.
type ScaleDoc struct {
	Min    int      `json:"min"`
	Max    int      `json:"max"`
	Labels []string `json:"labels,omitempty"`
}

// Definition es la definicion completa del instrumento.
type Definition struct {
	Title  string     `json:"title"`
	Scale  ScaleDoc   `json:"scale"`
	Items  []ItemDoc  `json:"items"`
	Traits []TraitDoc `json:"traits,omitempty"`
}

// TraitDoc asocia un codigo de rasgo con su nombre para mostrar.
type TraitDoc struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// DefinitionError indica una definicion de instrumento malformada.
type DefinitionError struct {
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid instrument definition: %s", e.Reason)
}

// Load lee y valida la definicion desde un archivo JSON.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instrument %s: %w", path, err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse instrument %s: %w", path, err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate chequea la integridad estructural de la definicion.
func (d *Definition) Validate() error {
	if d.Scale.Min >= d.Scale.Max {
		return &DefinitionError{Reason: fmt.Sprintf("scale min %d must be less than max %d", d.Scale.Min, d.Scale.Max)}
	}
	if len(d.Items) == 0 {
		return &DefinitionError{Reason: "instrument has no items"}
	}

	seen := make(map[int]struct{}, len(d.Items))
	for _, item := range d.Items {
		if item.ID <= 0 {
			return &DefinitionError{Reason: fmt.Sprintf("item id %d must be positive", item.ID)}
		}
		if _, dup := seen[item.ID]; dup {
			return &DefinitionError{Reason: fmt.Sprintf("duplicate item id %d", item.ID)}
		}
		seen[item.ID] = struct{}{}
		if strings.TrimSpace(item.Trait) == "" {
			return &DefinitionError{Reason: fmt.Sprintf("item %d has empty trait code", item.ID)}
		}
	}
	return nil
}

// Instrument proyecta la definicion a la forma que consume el motor.
func (d *Definition) Instrument() scoring.Instrument {
	items := make([]scoring.Item, len(d.Items))
	for i, it := range d.Items {
		items[i] = scoring.Item{ID: it.ID, Trait: it.Trait, Reverse: it.Reverse}
	}
	return scoring.Instrument{
		Scale: scoring.Scale{Min: d.Scale.Min, Max: d.Scale.Max},
		Items: items,
	}
}

// TraitLabel devuelve el nombre para mostrar de un rasgo, o el codigo si no
// hay etiqueta declarada.
func (d *Definition) TraitLabel(code string) string {
	for _, t := range d.Traits {
		if t.Code == code {
			return t.Label
		}
	}
	return code
}
