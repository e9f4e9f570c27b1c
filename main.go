package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/api"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/engine"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/extractor"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/writer"
)

const version = "1.0.0"

func main() {
	outputFlag := flag.String("output", "", "Output import CSV path (defaults to input filename with .import.csv extension)")
	jsonFlag := flag.Bool("json", false, "Print the full parse result as JSON instead of writing a CSV")
	serveFlag := flag.String("serve", "", "Run the HTTP API on the given address (e.g. :8080) instead of converting files")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Ingestion Engine

Converts bank statement exports (PDF or CSV) into normalized transaction
lists ready for import into the expense tracker.

Usage:
  statement-ingest [flags] <statement.pdf|statement.csv> [more files ...]
  statement-ingest --serve :8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Supported banks (auto-detected):
  meezan    - Meezan Bank account statements (DD-MM-YYYY columns)
  nayapay   - NayaPay wallet statements (multi-line blocks, Rs. amounts)

CSV input bypasses detection: header row, then date,debit,credit,description.
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-ingest v%s\n", version)
		os.Exit(0)
	}

	if *verboseFlag {
		log.SetLevel(log.DebugLevel)
	}

	addr := *serveFlag
	if addr == "" && flag.NArg() == 0 {
		// Deployments set PORT instead of passing --serve.
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}
	}
	if addr != "" {
		app := api.NewApp()
		log.WithField("addr", addr).Info("starting HTTP API")
		if err := app.Listen(addr); err != nil {
			fatalf("server failed: %v\n", err)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if err := checkOutputFlag(*outputFlag, flag.NArg()); err != nil {
		fatalf("%v\n", err)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, *outputFlag, *jsonFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath, outputPath string, asJSON bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	var (
		result *models.ParseResult
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(inputPath)); ext {
	case ".pdf":
		var pages [][]models.GlyphRun
		pages, err = extractor.ExtractGlyphs(inputPath)
		if err != nil {
			return fmt.Errorf("PDF extraction failed: %w", err)
		}
		fmt.Printf("  Extracted %d page(s)\n", len(pages))
		result, err = engine.ParseGlyphs(pages)
	case ".csv":
		var content []byte
		content, err = os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		result, err = engine.ParseCSV(string(content))
	default:
		return fmt.Errorf("expected a .pdf or .csv file, got %q", ext)
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Bank: %s\n", result.Bank.Name)
	fmt.Printf("  Found %d transaction(s)\n", result.Summary.TransactionCount)
	fmt.Printf("  Income: %.2f  Expenses: %.2f  Net: %.2f\n",
		result.Summary.TotalIncome, result.Summary.TotalExpenses, result.Summary.Net)
	for _, w := range result.Warnings {
		fmt.Printf("  Warning: %s\n", w)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	outPath := resolveOutputPath(inputPath, outputPath)

	w := &writer.ImportWriter{}
	if err := w.WriteToFile(outPath, models.ToImport(result.Transactions)); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

// checkOutputFlag rejects a fixed --output path shared across inputs:
// every file after the first would overwrite the same CSV.
func checkOutputFlag(output string, inputs int) error {
	if output != "" && inputs > 1 {
		return fmt.Errorf("--output names a single file but %d inputs were given; omit it to get per-file .import.csv names", inputs)
	}
	return nil
}

// resolveOutputPath returns the import CSV path for an input file,
// honoring an explicit override.
func resolveOutputPath(inputPath, override string) string {
	if override != "" {
		return override
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".import.csv"
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
