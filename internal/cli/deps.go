package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"

	"github.com/tbckr/catalog/internal/catalog"
	"github.com/tbckr/catalog/internal/config"
	"github.com/tbckr/catalog/internal/endpoints"
	"github.com/tbckr/catalog/internal/httpclient"
	"github.com/tbckr/catalog/internal/output"
	"github.com/tbckr/catalog/internal/ratelimit"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger     *slog.Logger
	cfg        *config.Config
	clientHook func(*req.Client)
}

// buildDeps resolves config and the logger.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("config resolved",
		"file", cfg.ConfigFile,
		"base_url", cfg.BaseURL,
		"proxy", httpclient.ResolveProxy(cfg.Proxy),
		"timeout", cfg.Timeout,
		"rate_limit", cfg.RateLimit,
	)

	return &deps{cfg: cfg, logger: logger}, nil
}

// format returns the validated output format. config.Load already rejected
// anything else.
func (d *deps) format() output.Format {
	return output.Format(d.cfg.Output)
}

// newHTTPClient creates an HTTP client configured with the proxy, user-agent,
// timeout, rate limit and verbosity from the resolved config.
func (d *deps) newHTTPClient() (*req.Client, error) {
	client, err := httpclient.New(httpclient.Options{
		Proxy:     d.cfg.Proxy,
		UserAgent: d.cfg.UserAgent,
		Timeout:   d.cfg.Timeout,
		Logger:    d.logger,
		Debug:     d.cfg.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}
	httpclient.AttachRateLimit(client, ratelimit.New(d.cfg.RateLimit, 0))
	if d.clientHook != nil {
		d.clientHook(client)
	}
	return client, nil
}

// endpointTable resolves logical endpoint names against the configured base URL.
func (d *deps) endpointTable() endpoints.Table {
	return endpoints.NewTable(d.cfg.BaseURL, d.cfg.ServicesPath, d.cfg.BranchesPath)
}

func (d *deps) newCatalogClient() (*catalog.Client, error) {
	client, err := d.newHTTPClient()
	if err != nil {
		return nil, err
	}
	return catalog.NewClient(client, d.endpointTable(), d.logger), nil
}

// writeResult formats and writes a result to stdout.
func writeResult(stdout io.Writer, d *deps, result any) error {
	if err := output.Write(stdout, d.format(), result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// failed reports a failed fetch. With JSON output the envelope carrying the
// error is still written to stdout; the returned error goes to stderr either way.
func failed(stdout io.Writer, d *deps, result any, err error) error {
	if d.format() == output.FormatJSON {
		if werr := writeResult(stdout, d, result); werr != nil {
			return werr
		}
	}
	return err
}
