package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/bloom"
	"github.com/fwojciec/localmind/crawl"
	"github.com/fwojciec/localmind/gemini"
	"github.com/fwojciec/localmind/goquery"
	"github.com/fwojciec/localmind/htmltomarkdown"
	lmhttp "github.com/fwojciec/localmind/http"
	"github.com/fwojciec/localmind/ingest"
	"github.com/fwojciec/localmind/readability"
	"github.com/fwojciec/localmind/search"
	lmslog "github.com/fwojciec/localmind/slog"
	"github.com/fwojciec/localmind/sqlite"
	"github.com/fwojciec/localmind/tfidf"
	"github.com/fwojciec/localmind/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor LOCALMIND_DB is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService localmind.DocumentService
	Index           *tfidf.Index
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("localmind"),
		kong.Description("Personal knowledge assistant with local TF-IDF search."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"version": localmind.Version},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'localmind --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Help output was printed by a subcommand's --help flag.
	if kongCtx.Selected() == nil {
		return nil
	}
	command := kongCtx.Selected().Name

	deps.Logger = newLogger(command, cli.Verbose, stdout, stderr)

	// init only writes files.
	if command == "init" {
		return kongCtx.Run(deps)
	}

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LOCALMIND_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	if err := m.wire(ctx, deps, cli.GeminiAPIKey); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the service graph over m.DB.
func (m *Main) wire(ctx context.Context, deps *Dependencies, geminiKey string) error {
	logger := deps.Logger
	policy := localmind.DefaultUploadPolicy()

	m.Index = tfidf.NewIndex()
	indexed := search.NewIndexedDocuments(
		lmslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), logger),
		m.Index,
	)
	if err := indexed.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}

	processor := ingest.NewProcessor(&ingest.HTMLProcessor{
		Extractors: []localmind.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()},
		Converter:  htmltomarkdown.NewConverter(),
		Metadata:   goquery.NewMetadataReader(),
	})

	ingester := ingest.NewIngester(indexed, processor)
	ingester.Policy = policy
	seen := bloom.NewFilter(bloomCapacity, bloomFalsePositiveRate)
	ingester.Seen = seen
	if err := ingester.Warm(ctx); err != nil {
		return fmt.Errorf("failed to load content hashes: %w", err)
	}

	searchLog := sqlite.NewSearchLog(m.DB)
	searchService := &search.Service{
		Documents: indexed,
		Index:     m.Index,
		Log:       searchLog,
		Web:       search.SimulatedWeb{},
	}

	m.DocumentService = ingest.NewDocumentService(indexed, ingester)

	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.ContentHashes = seen
	deps.Index = m.Index
	deps.Policy = policy
	deps.Ingester = ingester
	deps.Uploader = lmslog.NewLoggingUploader(ingester, logger)
	deps.Search = lmslog.NewLoggingSearchService(searchService, logger)
	deps.Importer = lmslog.NewLoggingImporter(&crawl.Importer{
		Fetcher:     lmhttp.NewFetcher(lmhttp.WithMaxBytes(int64(policy.MaxFileSize))),
		Processor:   processor,
		Uploader:    deps.Uploader,
		RateLimiter: crawl.NewDomainLimiter(importRatePerSecond),
		Policy:      policy,
		RetryDelays: crawl.DefaultRetryDelays(),
		Logger:      logger,
	}, logger)

	if geminiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  geminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		// Without a tokenizer every matching document is sent.
		counter, err := gemini.NewTokenCounter(gemini.Model)
		if err != nil {
			logger.Warn("token counting unavailable", "err", err)
		}
		var tc localmind.TokenCounter
		if counter != nil {
			tc = counter
		}
		deps.Asker = lmslog.NewLoggingAsker(gemini.NewAsker(client, deps.Search, tc), logger)
	}

	deps.Stats = &search.StatsService{
		Documents:  indexed,
		Log:        searchLog,
		Index:      m.Index,
		Policy:     policy,
		AskEnabled: deps.Asker != nil,
	}

	return nil
}

const (
	bloomCapacity          = 100_000
	bloomFalsePositiveRate = 0.01

	// One request per second per imported domain.
	importRatePerSecond = 1.0
)

// newLogger returns a JSON logger on stdout for the server and a text
// logger on stderr for other commands, silent unless verbose.
func newLogger(command string, verbose bool, stdout, stderr io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if command == "serve" {
		return slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{Level: level}))
	}
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "localmind.db"
	}
	return filepath.Join(home, ".localmind", "localmind.db")
}
