package options

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions selects how command results are rendered.
type OutputOptions struct {
	JSON   bool
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

func AddFormatArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Format, "output", "o", "text",
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// Encoding resolves --json and --output into one of text, json or yaml.
func (o *OutputOptions) Encoding() (string, error) {
	if o.JSON {
		return "json", nil
	}
	switch f := strings.ToLower(o.Format); f {
	case "", "text":
		return "text", nil
	case "json", "yaml":
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", o.Format)
	}
}

// WriteJSON writes v as indented JSON to color.Output.
func (o *OutputOptions) WriteJSON(v interface{}) error {
	return writeJSON(color.Output, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
