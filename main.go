package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/faturatools/fatura-processor/internal/api"
	"github.com/faturatools/fatura-processor/internal/models"
	"github.com/faturatools/fatura-processor/internal/parser"
	"github.com/faturatools/fatura-processor/internal/pipeline"
	"github.com/faturatools/fatura-processor/internal/report"
	"github.com/faturatools/fatura-processor/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	bankFlag := flag.String("bank", "", "Statement source: c6, nubank (auto-detected if omitted)")
	outputFlag := flag.String("output", "", "Output xlsx file path (defaults to input filename with _processada.xlsx suffix)")
	csvFlag := flag.Bool("csv", false, "Also write the canonical transaction table as CSV next to the report")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API instead of processing files")
	addrFlag := flag.String("addr", ":8080", "HTTP listen address (with -serve; PORT env overrides)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Credit Card Statement Processor

Converts C6 Bank xlsx exports and Nubank PDF statements into a
consolidated xlsx report with per-card and per-category breakdowns.

Usage:
  fatura-processor [flags] <fatura.xlsx|fatura.pdf> [fatura2 ...]
  fatura-processor -serve [-addr :8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Auto-detect the source and process
  fatura-processor fatura_marco.xlsx

  # Specify the source explicitly
  fatura-processor --bank=nubank fatura.pdf

  # Custom output path
  fatura-processor --bank=c6 --output=relatorio.xlsx fatura.xlsx

  # Run the HTTP API
  fatura-processor -serve -addr :9000

Supported Sources:
  c6      - C6 Bank xlsx statement export
  nubank  - Nubank PDF statement
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("fatura-processor v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		addr := *addrFlag
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}
		app := api.NewApp()
		slog.Info("starting HTTP API", "addr", addr)
		if err := app.Listen(addr); err != nil {
			fatalf("Server failed: %v\n", err)
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	inputFiles := flag.Args()

	// Validate bank flag if provided
	var bankType models.BankType
	if *bankFlag != "" {
		switch strings.ToLower(*bankFlag) {
		case "c6":
			bankType = models.BankC6
		case "nubank":
			bankType = models.BankNubank
		default:
			fatalf("Unknown bank type %q. Supported: c6, nubank\n", *bankFlag)
		}
	}

	// Process each input file
	for _, inputPath := range inputFiles {
		if err := processFile(inputPath, bankType, *outputFlag, *csvFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, bankType models.BankType, outputPath string, writeCSV bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	// Auto-detect the source if not specified
	effectiveBank := bankType
	if effectiveBank == "" {
		detected, err := parser.DetectBank(data, inputPath)
		if err != nil {
			return err
		}
		effectiveBank = detected
		fmt.Printf("  Auto-detected source: %s\n", effectiveBank)
	}

	res, err := pipeline.Build(data, effectiveBank, slog.Default())
	if err != nil {
		return err
	}

	fmt.Printf("  Found %d transaction(s)\n", len(res.Statement.Transactions))

	if len(res.Statement.Transactions) == 0 {
		fmt.Println("  Warning: No transactions found. The statement format may not match expected patterns.")
		fmt.Println("  Try specifying the source explicitly with --bank flag if auto-detection was used.")
	}

	out, err := report.Render(res)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	// Determine output path
	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "_processada.xlsx"
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)

	if writeCSV {
		csvPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".csv"
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.WriteToFile(csvPath, res.Statement); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Printf("  CSV: %s\n", csvPath)
	}

	// Print summary
	if res.Statement.CardholderName != "" {
		fmt.Printf("  Cardholder: %s\n", res.Statement.CardholderName)
	}
	fmt.Printf("  Total charges: R$ %.2f\n", res.Summary.TotalCharges)
	if res.Summary.TotalRefunds != 0 {
		fmt.Printf("  Total refunds: R$ %.2f\n", res.Summary.TotalRefunds)
	}
	if n := len(res.ActiveInstallments); n > 0 {
		fmt.Printf("  Active installments: %d\n", n)
	}

	fmt.Println("  Done.")
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
