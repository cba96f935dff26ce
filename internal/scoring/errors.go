package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingAnswerError reporta todos los items del instrumento sin respuesta.
type MissingAnswerError struct {
	ItemIDs []int
}

func (e *MissingAnswerError) Error() string {
	ids := make([]string, len(e.ItemIDs))
	for i, id := range e.ItemIDs {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("missing answer for items: %s", strings.Join(ids, ", "))
}

// UnexpectedAnswerError reporta respuestas cuyos ids no pertenecen al instrumento.
type UnexpectedAnswerError struct {
	ItemIDs []int
}

func (e *UnexpectedAnswerError) Error() string {
	ids := make([]string, len(e.ItemIDs))
	for i, id := range e.ItemIDs {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("answers for unknown items: %s", strings.Join(ids, ", "))
}

// InvalidValueError reporta un valor crudo que no es un entero.
type InvalidValueError struct {
	ItemID int
	Raw    string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("item %d: value %q is not an integer", e.ItemID, e.Raw)
}

// OutOfRangeError reporta un valor fuera de la escala declarada.
type OutOfRangeError struct {
	ItemID int
	Value  int
	Min    int
	Max    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("item %d: value %d outside scale [%d, %d]", e.ItemID, e.Value, e.Min, e.Max)
}

// UnknownTraitError reporta un item con codigo de rasgo vacio o inconsistente.
// Es un chequeo defensivo contra definiciones de instrumento malformadas.
type UnknownTraitError struct {
	ItemID int
	Trait  string
}

func (e *UnknownTraitError) Error() string {
	return fmt.Sprintf("item %d: unknown trait %q", e.ItemID, e.Trait)
}
