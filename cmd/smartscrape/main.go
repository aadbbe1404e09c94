package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/smartscrape"
	"github.com/fwojciec/smartscrape/gemini"
	"github.com/fwojciec/smartscrape/goquery"
	"github.com/fwojciec/smartscrape/graph"
	"github.com/fwojciec/smartscrape/htmltomarkdown"
	ssshttp "github.com/fwojciec/smartscrape/http"
	"github.com/fwojciec/smartscrape/keyring"
	"github.com/fwojciec/smartscrape/openai"
	"github.com/fwojciec/smartscrape/readability"
	"github.com/fwojciec/smartscrape/rod"
	ssslog "github.com/fwojciec/smartscrape/slog"
	"github.com/fwojciec/smartscrape/sqlite"
	"github.com/fwojciec/smartscrape/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// Environ is the environment seen by the env credential source.
	Environ []string

	// SQLite database holding the run history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		Environ: os.Environ(),
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
		kong.Name("smartscrape"),
		kong.Description("Extract structured data from web pages with an LLM."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(Vars()),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'smartscrape --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.needsHistory(cmd) {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = m.DBPath
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SMARTSCRAPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	switch cmd {
	case "serve", "run":
		src, err := NewCredentialSource(&cli.Globals, m.Environ)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check --credentials and the credential file paths")
			return err
		}
		deps.Loader = ssslog.NewLoggingConfigLoader(smartscrape.NewCredentialLoader(src), deps.Logger)

		js, timeout := cli.Serve.JS, cli.Serve.Timeout
		if cmd == "run" {
			js, timeout = cli.Run.JS, cli.Run.Timeout
		}
		scraper, closeFn, err := newScraper(deps.Logger, js, timeout)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --js")
			return err
		}
		defer closeFn()
		deps.Scraper = scraper

	case "secrets":
		deps.Keyring = keyring.NewSource(cli.KeyringService)
	}

	return kongCtx.Run(deps)
}

// newScraper wires the scraper-graph collaborators. The returned function
// releases the browser when JS rendering is enabled.
func newScraper(logger *slog.Logger, js bool, timeout time.Duration) (smartscrape.Scraper, func() error, error) {
	deps := graph.Deps{
		Fetcher: ssslog.NewLoggingFetcher(ssshttp.NewFetcher(), "static", logger),
		Prober:  goquery.NewProber(),
		Extractors: []smartscrape.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
		},
		Converter: htmltomarkdown.NewConverter(),
		LLMs: smartscrape.LLMRouter{
			smartscrape.ProviderAzure:  openai.NewFactory(),
			smartscrape.ProviderGemini: gemini.NewFactory(),
		},
	}

	closeFn := func() error { return nil }
	if js {
		f, err := rod.NewFetcher()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		deps.JSFetcher = ssslog.NewLoggingFetcher(f, "js", logger)
		closeFn = f.Close
	}

	inv := graph.NewInvoker(deps)
	inv.Timeout = timeout
	return ssslog.NewLoggingScraper(inv, logger), closeFn, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SMARTSCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "smartscrape.db"
	}
	dir := filepath.Join(home, ".smartscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "smartscrape.db")
}
