package domain

import "time"

// Submission es un envio completo del cuestionario: metadata opcional del
// participante, respuestas crudas y el resultado del puntaje.
type Submission struct {
	ID          string             `json:"id"`
	Nickname    string             `json:"nickname,omitempty"`
	Email       string             `json:"email,omitempty"`
	Answers     map[int]int        `json:"answers"`
	Sums        map[string]int     `json:"sums"`
	Percentages map[string]float64 `json:"percentages"`
	CreatedAt   time.Time          `json:"created_at"`
}

// TraitResult es una fila de resultado lista para mostrar o notificar.
type TraitResult struct {
	Trait   string  `json:"trait"`
	Label   string  `json:"label"`
	Sum     int     `json:"sum"`
	Percent float64 `json:"percent"`
}
