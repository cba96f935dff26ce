// Comando score: puntua un archivo de respuestas contra un instrumento sin
// levantar el servidor. Util para verificar definiciones nuevas y para
// repuntuar envios exportados.
//
//	score -instrument assessments/big5_60.json -answers respuestas.json
//
// El archivo de respuestas es un JSON {"1": 4, "2": 2, ...}.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"big5-survey/internal/instrument"
	"big5-survey/internal/scoring"
)

func main() {
	instrumentPath := flag.String("instrument", "assessments/big5_60.json", "ruta del instrumento JSON")
	answersPath := flag.String("answers", "", "ruta del archivo de respuestas JSON")
	flag.Parse()

	if *answersPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	def, err := instrument.Load(*instrumentPath)
	if err != nil {
		log.Fatalf("instrument: %v", err)
	}

	data, err := os.ReadFile(*answersPath)
	if err != nil {
		log.Fatalf("answers: %v", err)
	}
	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Fatalf("answers: %v", err)
	}

	answers := make(map[int]string, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			log.Fatalf("answers: invalid item id %q", key)
		}
		answers[id] = value.String()
	}

	responses, err := scoring.ParseResponses(answers)
	if err != nil {
		log.Fatalf("parse: %v", err)
	}

	inst := def.Instrument()
	report, err := scoring.Score(responses, inst)
	if err != nil {
		log.Fatalf("score: %v", err)
	}

	fmt.Printf("%s\n\n", def.Title)
	for _, trait := range inst.Traits() {
		fmt.Printf("  %-40s %3d puntos  %6.1f%%\n",
			def.TraitLabel(trait),
			report.Sums[trait],
			report.Percentages[trait],
		)
	}
}
