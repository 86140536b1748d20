/**
 * pdfdiff - Command-line PDF comparison
 *
 * Compares two PDF files and writes the comparison report as JSON to
 * stdout or a file. Progress goes to stderr.
 *
 * Usage:
 *   pdfdiff [flags] <pdf_a> <pdf_b>
 */

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/veridoc/pdfdiff/internal/config"
	"github.com/veridoc/pdfdiff/internal/diff"
	"github.com/veridoc/pdfdiff/internal/ingest"
	"github.com/veridoc/pdfdiff/internal/logging"
	"github.com/veridoc/pdfdiff/internal/processor"
)

func main() {
	output := flag.String("o", "", "write the JSON report to this file instead of stdout")
	dpi := flag.Int("dpi", 0, "rasterization resolution (default from DEFAULT_DPI, 300)")
	noCleanStray := flag.Bool("no-clean-stray-chars", false, "keep isolated single-letter OCR artifacts")
	language := flag.String("lang", "", "Tesseract language code (default from OCR_LANGUAGE, eng)")
	verbose := flag.Bool("v", false, "verbose progress output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <pdf_a> <pdf_b>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	pathA, pathB := flag.Arg(0), flag.Arg(1)
	for _, path := range []string{pathA, pathB} {
		if _, err := os.Stat(path); err != nil {
			fatal("cannot read %s: %v", path, err)
		}
	}

	godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		fatal("invalid configuration: %v", err)
	}

	if *dpi == 0 {
		*dpi = cfg.DefaultDPI
	}
	if *dpi < config.MinDPI || *dpi > config.MaxDPI {
		fatal("dpi must be between %d and %d, got %d", config.MinDPI, config.MaxDPI, *dpi)
	}
	if *language == "" {
		*language = cfg.OCRLanguage
	}

	logger := logging.NewLogger("pdfdiff").WithDebug(*verbose)

	opts := ingest.DefaultOptions()
	opts.DPI = *dpi
	opts.CleanStrayChars = !*noCleanStray
	opts.Language = *language
	opts.PdftoppmPath = cfg.PdftoppmPath
	opts.TempDir = cfg.TempDir
	ingestor := ingest.NewIngestor(opts, logger)

	ctx := context.Background()

	fmt.Fprintf(os.Stderr, "Ingesting %s...\n", pathA)
	pagesA, err := ingestor.ProcessPDF(ctx, pathA)
	if err != nil {
		fatal("failed to ingest %s: %v", pathA, err)
	}

	fmt.Fprintf(os.Stderr, "Ingesting %s...\n", pathB)
	pagesB, err := ingestor.ProcessPDF(ctx, pathB)
	if err != nil {
		fatal("failed to ingest %s: %v", pathB, err)
	}

	fmt.Fprintf(os.Stderr, "Comparing %d page(s) against %d page(s)...\n", len(pagesA), len(pagesB))
	report := diff.CompareDocuments(pagesA, pagesB, pathA, pathB, diff.DefaultGroupConfig())
	result := processor.BuildResult(report)

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fatal("failed to encode report: %v", err)
	}
	payload = append(payload, '\n')

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0644); err != nil {
			fatal("failed to write %s: %v", *output, err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s (%d difference(s))\n", *output, result.TotalDifferences)
	} else {
		os.Stdout.Write(payload)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "pdfdiff: "+format+"\n", args...)
	os.Exit(1)
}
