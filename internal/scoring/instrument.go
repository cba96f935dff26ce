package scoring

// Scale define el rango entero cerrado valido para cada respuesta cruda.
type Scale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Reflect invierte un valor alrededor del punto medio de la escala.
// Para [1,5]: 1 -> 5, 3 -> 3, 5 -> 1.
func (s Scale) Reflect(v int) int {
	return s.Min + s.Max - v
}

// Contains indica si el valor cae dentro del rango de la escala.
func (s Scale) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Item es una pregunta del instrumento: id, rasgo asignado y flag de inversion.
type Item struct {
	ID      int    `json:"id"`
	Trait   string `json:"trait"`
	Reverse bool   `json:"reverse"`
}

// Instrument es la definicion inmutable del cuestionario: escala y items
// ordenados. El motor es generico sobre el conjunto de rasgos; no asume
// cinco codigos ni un numero fijo de items por rasgo.
type Instrument struct {
	Scale Scale
	Items []Item
}

// Traits devuelve los codigos de rasgo en orden de primera aparicion.
func (in Instrument) Traits() []string {
	seen := make(map[string]struct{}, len(in.Items))
	var traits []string
	for _, item := range in.Items {
		if _, ok := seen[item.Trait]; ok {
			continue
		}
		seen[item.Trait] = struct{}{}
		traits = append(traits, item.Trait)
	}
	return traits
}

// ItemCount cuenta los items asignados a un rasgo.
func (in Instrument) ItemCount(trait string) int {
	n := 0
	for _, item := range in.Items {
		if item.Trait == trait {
			n++
		}
	}
	return n
}
