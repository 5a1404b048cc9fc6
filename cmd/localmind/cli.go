package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/bloom"
	"github.com/fwojciec/localmind/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB        *sqlite.DB
	Documents localmind.DocumentService
	Index     localmind.Index
	Policy    localmind.UploadPolicy
	Search    localmind.SearchService
	Stats     localmind.StatsService
	Uploader  localmind.Uploader
	Ingester  Ingester
	Importer  localmind.Importer
	Asker     localmind.Asker

	ContentHashes *bloom.Filter
}

// Ingester stores documents that do not arrive through an upload.
type Ingester interface {
	Seed(ctx context.Context, docs []*localmind.Document) (int, error)
	ImportDir(ctx context.Context, dir string) (*localmind.BulkResult, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB           string           `env:"LOCALMIND_DB" help:"Database path (default ~/.localmind/localmind.db)"`
	GeminiAPIKey string           `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Enables question answering with Gemini"`
	Verbose      bool             `short:"v" help:"Log service calls to stderr"`
	Version      kong.VersionFlag `help:"Print version and exit"`

	Serve  ServeCmd  `cmd:"" help:"Run the web server and API"`
	Init   InitCmd   `cmd:"" help:"Create a project directory with the web page and sample documents"`
	Add    AddCmd    `cmd:"" help:"Add files or directories to the knowledge base"`
	Import ImportCmd `cmd:"" help:"Import a web page by URL"`
	List   ListCmd   `cmd:"" help:"List stored documents"`
	Show   ShowCmd   `cmd:"" help:"Show a stored document"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored document"`
	Search SearchCmd `cmd:"" help:"Search the knowledge base"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about your documents"`
	Stats  StatsCmd  `cmd:"" help:"Show knowledge base statistics"`
	Export ExportCmd `cmd:"" help:"Export all documents as Markdown files"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `env:"LOCALMIND_ADDR" help:"Listen address; overrides --port"`
	Port      int    `env:"PORT" default:"8000" help:"Port to listen on all interfaces"`
	WebDir    string `env:"LOCALMIND_WEB_DIR" type:"existingdir" help:"Serve static/index.html and static/ from this directory instead of the built-in page"`
	ImportDir string `env:"LOCALMIND_IMPORT_DIR" type:"existingdir" help:"Ingest supported files from this directory at startup"`
	Seed      bool   `env:"LOCALMIND_SEED" default:"true" negatable:"" help:"Store the sample documents at startup"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Dir  string `arg:"" optional:"" default:"." help:"Project directory"`
	Keep bool   `help:"Keep files that already exist"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Paths []string `arg:"" type:"path" help:"Files or directories to add"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Skip  int `default:"0" help:"Number of documents to skip"`
	Limit int `default:"50" help:"Maximum number of documents to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  []string          `arg:"" help:"Search terms"`
	Limit  int               `short:"n" default:"10" help:"Maximum number of results"`
	Web    bool              `help:"Include web results"`
	Filter map[string]string `short:"f" help:"Filter by type or metadata, e.g. -f category=concrete"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	JSON bool `help:"Print statistics as JSON"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Output directory; replaced atomically"`
}
