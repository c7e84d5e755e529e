// Package render provides output rendering for grove's read-only commands.
//
// Format selection rules:
//   - If stdout is a TTY, default to table
//   - If stdout is not a TTY, default to json
//   - --format always overrides the default
//   - Invalid formats are errors
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a format string, returning an error for invalid
// formats. The empty string means "caller decides the default".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	case "yaml":
		return FormatYAML, nil
	case "":
		return "", nil
	default:
		return "", fmt.Errorf("invalid format: %q (must be json, table, or yaml)", s)
	}
}

// Tabular is implemented by responses that can render as a table.
type Tabular interface {
	// TableHeader returns the column names.
	TableHeader() []string
	// TableRows returns one row of cells per record.
	TableRows() [][]string
}

// Renderer writes a response in the selected format.
type Renderer struct {
	format Format
	out    io.Writer
}

// NewRenderer builds a renderer from the command context, applying the
// TTY-dependent default when --format is unset.
func NewRenderer(c *cli.Context) (*Renderer, error) {
	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}
	if format == "" {
		if isStdoutTTY() {
			format = FormatTable
		} else {
			format = FormatJSON
		}
	}
	return &Renderer{format: format, out: os.Stdout}, nil
}

// NewRendererTo builds a renderer with an explicit format and writer.
func NewRendererTo(format Format, out io.Writer) *Renderer {
	return &Renderer{format: format, out: out}
}

// Render writes v in the renderer's format. Table format requires v to
// implement Tabular.
func (r *Renderer) Render(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		_, err = r.out.Write(data)
		return err

	case FormatTable:
		tab, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("%T does not support table output", v)
		}
		return renderTable(r.out, tab)

	default:
		return fmt.Errorf("unknown format: %q", r.format)
	}
}

func renderTable(out io.Writer, tab Tabular) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(tab.TableHeader(), "\t"))
	for _, row := range tab.TableRows() {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func isStdoutTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
