package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/statementlens/statementlens/internal/api"
	"github.com/statementlens/statementlens/internal/config"
	"github.com/statementlens/statementlens/internal/dataset"
	"github.com/statementlens/statementlens/internal/extract"
	"github.com/statementlens/statementlens/internal/ingest"
	"github.com/statementlens/statementlens/internal/logger"
	"github.com/statementlens/statementlens/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to export.csv)")
	passwordFlag := flag.String("password", "", "Password for protected statement PDFs")
	summaryFlag := flag.Bool("summary", false, "Append aggregate totals to the CSV output")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Mobile-Money Statement Analyzer

Reconstructs transaction records from mobile-money statement PDFs,
merges and deduplicates multiple statements, and exports the result
as CSV or serves it over an HTTP API.

Usage:
  statementlens [flags] <statement.pdf> [statement2.pdf ...]
  statementlens -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert one statement
  statementlens statement.pdf

  # Merge several statements into one deduplicated export
  statementlens -output=all.csv jan.pdf feb.pdf mar.pdf

  # Protected statement
  statementlens -password=1234 statement.pdf

  # Run the API server (PORT from environment, default 8080)
  statementlens -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statementlens v%s\n", version)
		os.Exit(0)
	}

	config.LoadConfig()
	log := logger.New(config.Cfg.LogLevel)

	store := dataset.NewStore()
	runner := ingest.NewRunner(extract.New(config.Cfg.Schema), store, log)

	if *serveFlag {
		app := fiber.New(fiber.Config{
			AppName:   "statementlens",
			BodyLimit: int(config.Cfg.MaxUploadSizeBytes),
		})
		api.NewHandler(store, runner, log).RegisterRoutes(app)

		addr := ":" + config.Cfg.Port
		log.Info().Str("addr", addr).Msg("starting API server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	inputs := make([]string, 0, flag.NArg())
	for _, path := range flag.Args() {
		if strings.ToLower(filepath.Ext(path)) != ".pdf" {
			fmt.Fprintf(os.Stderr, "Skipping %s: expected a .pdf file\n", path)
			continue
		}
		inputs = append(inputs, path)
	}

	var prompt ingest.CredentialPrompter
	if *passwordFlag != "" {
		prompt = func(string) (string, bool) { return *passwordFlag, true }
	}

	ok := 0
	for _, res := range runner.ProcessBatch(inputs, prompt) {
		fmt.Printf("%s: %s", res.FileName, res.Status)
		if res.Status == ingest.StatusSucceeded {
			fmt.Printf(" (%d row(s), %d new)", res.Rows, res.Added)
			ok++
		}
		if res.Error != "" {
			fmt.Printf(": %s", res.Error)
		}
		fmt.Println()
	}

	if ok == 0 {
		fmt.Fprintln(os.Stderr, "No files ingested.")
		os.Exit(1)
	}

	outPath := *outputFlag
	if outPath == "" {
		outPath = "export.csv"
	}

	w := &writer.CSVWriter{IncludeSummary: *summaryFlag}
	if err := w.WriteToFile(outPath, store.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "CSV write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d transaction(s) from %d file(s) to %s\n", store.Len(), ok, outPath)
}
