package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"pdf-validator/internal/config"
	"pdf-validator/internal/domain"

	"github.com/joho/godotenv"
)

// Exit codes: 0 every document valid, 1 at least one invalid, 2 usage error.
const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env file could not be loaded: %v", err)
	}

	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	maxPages := flags.Int("max-pages", 0, "reject documents with more pages (0 uses MAX_PAGES)")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: validate [-max-pages N] file.pdf [file.pdf ...]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(exitUsage)
	}
	if flags.NArg() == 0 || *maxPages < 0 {
		flags.Usage()
		os.Exit(exitUsage)
	}

	container := config.NewContainer()
	code := run(container.ValidationService, flags.Args(), *maxPages, os.Stdout)
	if syncer, ok := container.Logger.(interface{ Sync() error }); ok {
		_ = syncer.Sync()
	}
	os.Exit(code)
}

// run validates every path and writes one JSON report per line.
func run(svc domain.ValidationService, paths []string, maxPages int, out io.Writer) int {
	enc := json.NewEncoder(out)
	code := exitValid
	for _, path := range paths {
		report := svc.ValidatePath(path, maxPages)
		if !report.Valid {
			code = exitInvalid
		}
		if err := enc.Encode(report); err != nil {
			log.Printf("Failed to write report for %s: %v", path, err)
			return exitUsage
		}
	}
	return code
}
