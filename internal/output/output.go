// Package output prints the final selection in the format chosen with
// --output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chmouel/lazyselect/internal/picker"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Formats lists the supported output formats.
var Formats = []string{FormatPlain, FormatJSON, FormatYAML, FormatTable}

// Record is one selected item as printed.
type Record struct {
	Text  string `json:"text" yaml:"text"`
	Value any    `json:"value" yaml:"value"`
}

// ValidateFormat returns an error for unknown format names.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (expected one of %s)", format, strings.Join(Formats, ", "))
}

// Records converts entries into printable records. Objects used as their own
// value are printed by text.
func Records(entries []picker.Entry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		value := e.Value
		if obj, ok := value.(*picker.Object); ok {
			value = obj.Text
		}
		records = append(records, Record{Text: e.Text, Value: value})
	}
	return records
}

// Write prints records in format. In single mode structured formats print one
// record (or null) instead of a list.
func Write(w io.Writer, format string, records []Record, multiple bool) error {
	var payload any = records
	if !multiple {
		payload = nil
		if len(records) > 0 {
			payload = records[0]
		}
	}

	switch format {
	case FormatPlain, "":
		for _, r := range records {
			if _, err := fmt.Fprintln(w, r.Text); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		data := make([][]string, 0, len(records))
		for _, r := range records {
			data = append(data, []string{r.Text, fmt.Sprint(r.Value)})
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"TEXT", "VALUE"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetNoWhiteSpace(true)
		table.SetTablePadding("    ")
		table.AppendBulk(data)
		table.Render()
		return nil
	}
	return ValidateFormat(format)
}
