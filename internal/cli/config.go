package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tbckr/catalog/internal/config"
	"github.com/tbckr/catalog/internal/output"
)

func newConfigCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Read and write catalog config file values",
		GroupID: "utility",
	}
	cmd.AddCommand(
		newConfigPathCmd(d),
		newConfigShowCmd(d),
		newConfigGetCmd(d),
		newConfigSetCmd(d),
		newConfigEditCmd(d),
	)
	return cmd
}

func newConfigPathCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), d.cfg.ConfigFile)
			return err
		},
	}
}

// settings is the effective configuration as sorted key/value rows.
// Values come from the fully resolved config, so defaults, env vars and
// flag overrides are all reflected.
type settings [][2]string

func effectiveSettings(cfg *config.Config) (settings, error) {
	keys := config.ValidKeys()
	rows := make(settings, 0, len(keys))
	for _, k := range keys {
		v, err := cfg.Value(k)
		if err != nil {
			return nil, err
		}
		rows = append(rows, [2]string{k, v})
	}
	return rows, nil
}

// MarshalJSON renders the settings as a flat object.
func (s settings) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(s))
	for _, kv := range s {
		m[kv[0]] = kv[1]
	}
	return json.Marshal(m)
}

// WritePlain renders one key=value line per setting.
func (s settings) WritePlain(w io.Writer) error {
	for _, kv := range s {
		if _, err := fmt.Fprintf(w, "%s=%s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable renders a KEY/VALUE table.
func (s settings) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 20, 20)
	table.Header([]string{"Key", "Value"})
	rows := make([][]string, len(s))
	for i, kv := range s {
		rows[i] = []string{kv[0], kv[1]}
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func newConfigShowCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"cat"},
		Short:   "Display all effective config settings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := effectiveSettings(d.cfg)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), d, rows)
		},
	}
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return config.KeyCompletions(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func newConfigGetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a config key",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeKeys(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := d.cfg.Value(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

func newConfigSetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Set a config value and persist it to the config file",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKeys,
		RunE: func(_ *cobra.Command, args []string) error {
			key := config.NormalizeKey(args[0])
			typed, err := config.ParseValue(key, args[1])
			if err != nil {
				return err
			}
			return setFileValue(d.cfg.ConfigFile, key, typed)
		},
	}
}

// setFileValue writes key into the YAML file at path, leaving every other key
// untouched. Only what is already in the file is read back, never the
// resolved config, so a fresh file ends up with exactly one key.
func setFileValue(path, key string, value any) error {
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}

	raw[key] = value

	out, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func newConfigEditCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the config file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vi"
			}
			c := exec.CommandContext(cmd.Context(), editor, d.cfg.ConfigFile) //nolint:gosec // editor comes from the user's own environment
			c.Stdin = cmd.InOrStdin()
			c.Stdout = cmd.OutOrStdout()
			c.Stderr = cmd.ErrOrStderr()
			return c.Run()
		},
	}
}
