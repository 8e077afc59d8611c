package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbckr/catalog/internal/apperr"
	"github.com/tbckr/catalog/internal/endpoints"
	"github.com/tbckr/catalog/internal/fetch"
	"github.com/tbckr/catalog/internal/input"
	"github.com/tbckr/catalog/internal/output"
	"github.com/tbckr/catalog/internal/worker"
)

func newFetchCmd(d *deps) *cobra.Command {
	var (
		method  string
		headers []string
		data    string
	)

	cmd := &cobra.Command{
		Use:   "fetch [endpoint|path...]",
		Short: "Request API paths and print the JSON responses",
		Long: `Request endpoint names (services, branches) or paths relative to the base
URL and print the decoded JSON bodies. Targets are read from stdin, one per
line, when none are given. Several targets are requested in parallel, bounded
by --concurrency.

Requests carry "Cache-Control: no-store" and "Content-Type: application/json"
unless overridden with --header.`,
		Example: `  catalog fetch services
  catalog fetch /v2/offers?limit=5 branches -o json
  catalog fetch /bookings -X POST -d '{"service":"s1"}' -H 'X-Request-Id: 42'
  cat targets.txt | catalog fetch`,
		GroupID: "catalog",
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{string(endpoints.Services), string(endpoints.Branches)}, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := input.Resolve(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			hdrs, err := parseHeaders(headers)
			if err != nil {
				return err
			}
			client, err := d.newHTTPClient()
			if err != nil {
				return err
			}

			opts := &fetch.Options{Method: method, Headers: hdrs}
			if data != "" {
				opts.Body = data
			}
			table := d.endpointTable()

			pool := worker.NewPool(d.cfg.Concurrency, d.logger)
			results := worker.Map(cmd.Context(), pool, targets, func(ctx context.Context, target string) fetch.Result[json.RawMessage] {
				address, err := table.Lookup(target)
				if err != nil {
					return fetch.Failure[json.RawMessage](err)
				}
				return fetch.JSON[json.RawMessage](ctx, client, address, opts)
			})

			set := newFetchedSet(targets, results)
			if d.format() == output.FormatJSON || set.err() == nil || len(set) > 1 {
				if err := writeResult(cmd.OutOrStdout(), d, set); err != nil {
					return err
				}
			}
			return set.err()
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra request header as \"Key: value\" (repeatable)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body, sent verbatim")
	_ = cmd.RegisterFlagCompletionFunc("method", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// parseHeaders turns "Key: value" pairs into a header map. Later pairs win.
func parseHeaders(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: header %q must have the form \"Key: value\"", apperr.ErrInvalidInput, p)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// fetched is the outcome of one target. Repeated targets each get their own.
type fetched struct {
	target string
	result fetch.Result[json.RawMessage]
}

// MarshalJSON renders {"target", "data", "error"}.
func (f fetched) MarshalJSON() ([]byte, error) {
	wire := struct {
		Target string          `json:"target"`
		Data   json.RawMessage `json:"data"`
		Error  *string         `json:"error"`
	}{Target: f.target}
	if f.result.OK() {
		wire.Data = f.result.Data()
	} else {
		msg := f.result.Message()
		wire.Error = &msg
	}
	return json.Marshal(wire)
}

// fetchedSet holds one entry per requested target, in request order.
type fetchedSet []fetched

func newFetchedSet(targets []string, results []fetch.Result[json.RawMessage]) fetchedSet {
	set := make(fetchedSet, len(targets))
	for i, t := range targets {
		set[i] = fetched{target: t, result: results[i]}
	}
	return set
}

// err joins the failures. A single target reports its message unchanged;
// several targets prefix each message with the target.
func (s fetchedSet) err() error {
	if len(s) == 1 {
		return s[0].result.Err()
	}
	var errs []error
	for _, f := range s {
		if !f.result.OK() {
			errs = append(errs, fmt.Errorf("%s: %w", f.target, f.result.Err()))
		}
	}
	return errors.Join(errs...)
}

// MarshalJSON renders a single target as its bare result envelope and several
// targets as an array of {"target", "data", "error"} objects.
func (s fetchedSet) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0].result)
	}
	return json.Marshal([]fetched(s))
}

// WriteTable has no tabular form for arbitrary JSON and prints like WritePlain.
func (s fetchedSet) WriteTable(w io.Writer) error {
	return s.WritePlain(w)
}

// WritePlain pretty-prints each successful body. Several targets are each
// preceded by a "==> target <==" line, and failures print their message.
func (s fetchedSet) WritePlain(w io.Writer) error {
	multi := len(s) > 1
	for _, f := range s {
		if multi {
			if _, err := fmt.Fprintf(w, "==> %s <==\n", output.Sanitize(f.target)); err != nil {
				return err
			}
		}
		if !f.result.OK() {
			if multi {
				if _, err := fmt.Fprintf(w, "error: %s\n", output.Sanitize(f.result.Message())); err != nil {
					return err
				}
			}
			continue
		}
		if err := output.WriteRawJSON(w, f.result.Data()); err != nil {
			return err
		}
	}
	return nil
}
