package main

import (
	"flag"
	"fmt"
	"log"

	"analyst-agent/internal/infrastructure/htmldoc"
)

// inspect prints a compact DOM outline and selector suggestions for a saved
// HTML file. Diagnostic aid for crafting stable selectors; not used by the
// tool loop.
func main() {
	file := flag.String("file", "", "path to saved HTML file")
	depth := flag.Int("depth", 2, "outline depth")
	maxChildren := flag.Int("max-children", 8, "children shown per node")
	maxSuggestions := flag.Int("max-suggestions", 10, "selector suggestions cap")
	flag.Parse()

	if *file == "" {
		log.Fatal("--file is required")
	}

	lines, err := htmldoc.Outline(*file, *depth, *maxChildren)
	if err != nil {
		log.Fatalf("Outline failed: %v", err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}

	suggestions, err := htmldoc.SuggestSelectors(*file, *maxSuggestions)
	if err != nil {
		log.Fatalf("Selector suggestion failed: %v", err)
	}
	fmt.Println("\nSelector suggestions:")
	for _, sel := range suggestions {
		fmt.Println("  " + sel)
	}
}
