// Package output renders catalog results as tables, plain text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/pretty"
)

// Format is the output format requested by the user.
type Format string

// Output format constants supported by the --output flag.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// Formats lists every supported format, in the order shown to users.
func Formats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ParseFormat validates s as an output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatPlain:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be \"table\", \"json\", or \"plain\"", s)
	}
}

// TableFormattable results know how to render themselves as an ASCII table.
type TableFormattable interface {
	WriteTable(w io.Writer) error
}

// PlainFormattable results know how to render themselves as plain text (one record per line).
// Used for piping output to other tools.
type PlainFormattable interface {
	WritePlain(w io.Writer) error
}

// Write dispatches a result to the appropriate formatter.
// JSON uses json.Encoder with indentation. Table requires the result to implement TableFormattable.
// Plain requires the result to implement PlainFormattable.
func Write(w io.Writer, format Format, result any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatTable:
		tf, ok := result.(TableFormattable)
		if !ok {
			return fmt.Errorf("result type %T does not support table output", result)
		}
		return tf.WriteTable(w)
	case FormatPlain:
		pf, ok := result.(PlainFormattable)
		if !ok {
			return fmt.Errorf("result type %T does not support plain output", result)
		}
		return pf.WritePlain(w)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

// WriteRawJSON pretty-prints an already encoded JSON document. Used where the
// payload shape is unknown and must be shown exactly as the server sent it.
func WriteRawJSON(w io.Writer, raw []byte) error {
	_, err := w.Write(pretty.Pretty(raw))
	return err
}
