package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/smartscrape"
	"github.com/fwojciec/smartscrape/dotenv"
	"github.com/fwojciec/smartscrape/graph"
	"github.com/fwojciec/smartscrape/keyring"
	"github.com/fwojciec/smartscrape/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Loader  smartscrape.ConfigLoader
	Scraper smartscrape.Scraper
	Runs    smartscrape.RunService
	Keyring *keyring.Source
}

// Globals are flags shared by every command.
type Globals struct {
	Credentials    string `enum:"env,toml,keyring" default:"env" env:"SMARTSCRAPE_CREDENTIALS" help:"Credential source (env, toml, keyring)"`
	EnvFile        string `name:"env-file" type:"path" help:"Read a .env file (default: .env if present)"`
	SecretsFile    string `name:"secrets-file" type:"path" default:"${secrets_file}" help:"Secrets TOML file for --credentials=toml"`
	KeyringService string `name:"keyring-service" default:"${keyring_service}" help:"Keyring service name for --credentials=keyring"`
	DB             string `name:"db" env:"SMARTSCRAPE_DB" help:"Run history database path (default: ~/.smartscrape/smartscrape.db)"`
	Verbose        bool   `short:"v" help:"Enable debug logging"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" help:"Serve the scraper form in the browser"`
	Run     RunCmd     `cmd:"" help:"Scrape one URL and print the result as JSON"`
	History HistoryCmd `cmd:"" help:"List recent scrape runs"`
	Secrets SecretsCmd `cmd:"" help:"Manage credentials in the OS keyring"`
}

// Vars returns the interpolation variables used in CLI defaults.
func Vars() map[string]string {
	return map[string]string{
		"secrets_file":    toml.DefaultPath,
		"keyring_service": keyring.DefaultService,
		"timeout":         graph.DefaultTimeout.String(),
	}
}

// needsHistory reports whether cmd reads or writes the run history.
func (c *CLI) needsHistory(cmd string) bool {
	switch cmd {
	case "serve":
		return !c.Serve.NoHistory
	case "run":
		return !c.Run.NoHistory
	case "history":
		return true
	}
	return false
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string        `default:":8501" env:"SMARTSCRAPE_ADDR" help:"Listen address"`
	Timeout   time.Duration `default:"${timeout}" help:"Per-scrape timeout (0 disables)"`
	JS        bool          `name:"js" help:"Render JavaScript-heavy pages in headless Chrome"`
	NoHistory bool          `name:"no-history" help:"Do not record runs"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Prompt    string        `arg:"" help:"What to extract from the page"`
	URL       string        `arg:"" help:"Page URL"`
	Timeout   time.Duration `default:"${timeout}" help:"Scrape timeout (0 disables)"`
	JS        bool          `name:"js" help:"Render JavaScript-heavy pages in headless Chrome"`
	NoHistory bool          `name:"no-history" help:"Do not record the run"`
	OutDir    string        `name:"out-dir" type:"path" help:"Also save the result to DIR/<host>/<path>.json"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit  int    `short:"n" default:"20" help:"Maximum number of runs to show"`
	URL    string `name:"url" help:"Only show runs for this URL"`
	Failed bool   `help:"Only show failed runs"`
}

// SecretsCmd groups the keyring subcommands.
type SecretsCmd struct {
	Set    SecretsSetCmd    `cmd:"" help:"Store a credential"`
	Get    SecretsGetCmd    `cmd:"" help:"Print a stored credential"`
	Delete SecretsDeleteCmd `cmd:"" help:"Remove a stored credential"`
}

// SecretsSetCmd is the "secrets set" subcommand.
type SecretsSetCmd struct {
	Key   string `arg:"" help:"Credential name, e.g. AZURE_OPENAI_API_KEY"`
	Value string `arg:"" help:"Credential value"`
}

// SecretsGetCmd is the "secrets get" subcommand.
type SecretsGetCmd struct {
	Key string `arg:"" help:"Credential name"`
}

// SecretsDeleteCmd is the "secrets delete" subcommand.
type SecretsDeleteCmd struct {
	Key string `arg:"" help:"Credential name"`
}

// NewCredentialSource returns the CredentialSource selected by the global
// flags. The env source snapshots environ and the .env file once.
func NewCredentialSource(g *Globals, environ []string) (smartscrape.CredentialSource, error) {
	switch g.Credentials {
	case "", "env":
		if g.EnvFile != "" {
			return dotenv.Load(environ, g.EnvFile)
		}
		return dotenv.Load(environ)
	case "toml":
		path := g.SecretsFile
		if path == "" {
			path = toml.DefaultPath
		}
		return toml.NewSource(path), nil
	case "keyring":
		service := g.KeyringService
		if service == "" {
			service = keyring.DefaultService
		}
		return keyring.NewSource(service), nil
	}
	return nil, smartscrape.Errorf(smartscrape.EINVALID, "unknown credential source %q", g.Credentials)
}
