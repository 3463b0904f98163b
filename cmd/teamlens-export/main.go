// Command teamlens-export runs the analysis pipeline once and writes the
// full result as JSON, for offline inspection and diffing between dataset
// revisions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/teamlens/teamlens/internal/analysis"
	"github.com/teamlens/teamlens/internal/dataset"
)

func main() {
	input := flag.String("input", "./data/teams.json", "Path to the team export file")
	output := flag.String("output", "", "Output file (default: stdout)")
	pretty := flag.Bool("pretty", true, "Indent the JSON output")
	flag.Parse()

	teams, err := dataset.Load(*input)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	result := analysis.Analyze(teams)

	var data []byte
	if *pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}

	if *output == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*output, data, 0o600); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	log.Printf("Wrote analysis for %d teams to %s", result.Meta.Teams, *output)
}
