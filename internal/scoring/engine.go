// Package scoring implementa el motor de puntaje del cuestionario: valida un
// conjunto de respuestas contra la definicion del instrumento y calcula sumas
// y porcentajes normalizados por rasgo. Todas las funciones son puras y
// seguras para uso concurrente; el instrumento se trata como configuracion
// inmutable.
package scoring

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ResponseSet mapea id de item a valor crudo de respuesta.
type ResponseSet map[int]int

// Report es el resultado del puntaje: suma entera y porcentaje [0,100] por
// rasgo. Percentages conserva precision sub-entera; Rounded() es para display.
type Report struct {
	Sums        map[string]int
	Percentages map[string]float64
}

// Rounded devuelve los porcentajes redondeados al entero mas cercano.
func (r Report) Rounded() map[string]int {
	out := make(map[string]int, len(r.Percentages))
	for trait, pct := range r.Percentages {
		out[trait] = int(math.Round(pct))
	}
	return out
}

// ParseResponses convierte valores crudos de formulario (strings) en un
// ResponseSet. Devuelve InvalidValueError ante el primer valor no entero.
func ParseResponses(raw map[int]string) (ResponseSet, error) {
	responses := make(ResponseSet, len(raw))

	ids := make([]int, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		value, err := strconv.Atoi(strings.TrimSpace(raw[id]))
		if err != nil {
			return nil, &InvalidValueError{ItemID: id, Raw: raw[id]}
		}
		responses[id] = value
	}
	return responses, nil
}

// Validate chequea que el conjunto de respuestas cubra exactamente los items
// del instrumento y que cada valor caiga dentro de la escala. Los items
// faltantes y los sobrantes se reportan todos juntos; los errores de rango y
// de rasgo se reportan ante la primera violacion en orden de instrumento.
// No tiene efectos secundarios.
func Validate(responses ResponseSet, instrument Instrument) error {
	known := make(map[int]struct{}, len(instrument.Items))

	var missing []int
	for _, item := range instrument.Items {
		known[item.ID] = struct{}{}
		if _, ok := responses[item.ID]; !ok {
			missing = append(missing, item.ID)
		}
	}
	if len(missing) > 0 {
		return &MissingAnswerError{ItemIDs: missing}
	}

	var unexpected []int
	for id := range responses {
		if _, ok := known[id]; !ok {
			unexpected = append(unexpected, id)
		}
	}
	if len(unexpected) > 0 {
		sort.Ints(unexpected)
		return &UnexpectedAnswerError{ItemIDs: unexpected}
	}

	for _, item := range instrument.Items {
		if strings.TrimSpace(item.Trait) == "" {
			return &UnknownTraitError{ItemID: item.ID, Trait: item.Trait}
		}
		value := responses[item.ID]
		if !instrument.Scale.Contains(value) {
			return &OutOfRangeError{
				ItemID: item.ID,
				Value:  value,
				Min:    instrument.Scale.Min,
				Max:    instrument.Scale.Max,
			}
		}
	}

	return nil
}

// Score valida y puntua un conjunto de respuestas. Los items con Reverse se
// reflejan alrededor del punto medio de la escala antes de acumular. El
// porcentaje de cada rasgo se normaliza contra el rango alcanzable de ESE
// rasgo (n*min a n*max con n = items del rasgo), nunca contra una constante.
func Score(responses ResponseSet, instrument Instrument) (Report, error) {
	if err := Validate(responses, instrument); err != nil {
		return Report{}, err
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, item := range instrument.Items {
		value := responses[item.ID]
		if item.Reverse {
			value = instrument.Scale.Reflect(value)
		}
		sums[item.Trait] += value
		counts[item.Trait]++
	}

	percentages := make(map[string]float64, len(sums))
	for trait, sum := range sums {
		n := counts[trait]
		minTotal := n * instrument.Scale.Min
		maxTotal := n * instrument.Scale.Max
		if maxTotal == minTotal {
			// Rasgo sin items o escala degenerada: 0 como default defensivo.
			percentages[trait] = 0
			continue
		}
		percentages[trait] = float64(sum-minTotal) * 100 / float64(maxTotal-minTotal)
	}

	return Report{Sums: sums, Percentages: percentages}, nil
}
