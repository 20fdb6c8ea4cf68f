package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joelkehle/procurement-desk/internal/workbench"
)

func main() {
	inputPath := flag.String("input", "", "Path to dossier markdown file")
	outputPath := flag.String("output", "", "Path to write the rendered PDF")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}
	if *outputPath == "" {
		log.Fatal("missing required -output")
	}

	markdown, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	renderer := workbench.NewChromiumPDFRenderer()
	pdf, err := renderer.Render(context.Background(), string(markdown))
	if err != nil {
		log.Fatalf("render pdf: %v", err)
	}

	if err := os.WriteFile(*outputPath, pdf, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
}
