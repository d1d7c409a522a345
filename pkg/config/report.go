package config

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Report formats accepted by WriteRequestReport.
const (
	ReportTable = "table"
	ReportJSON  = "json"
	ReportYAML  = "yaml"
)

// RequestedKey is one row of the requested-keys report.
type RequestedKey struct {
	Key   string `json:"key"             yaml:"key"`
	Set   bool   `json:"set"             yaml:"set"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// RequestedKeys pairs every key in requests with its current value in store.
func RequestedKeys(requests *RequestLog, store Store) []RequestedKey {
	keys := requests.Snapshot()
	rows := make([]RequestedKey, 0, len(keys))
	for _, key := range keys {
		row := RequestedKey{Key: key, Set: store.HasPath(key)}
		if row.Set {
			if text, err := store.Text(key); err == nil {
				row.Value = text
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteRequestReport writes every configuration key requested so far.
func WriteRequestReport(w io.Writer, requests *RequestLog, store Store, format string) error {
	rows := RequestedKeys(requests, store)
	switch format {
	case ReportJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{"requested": rows})
	case ReportYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]any{"requested": rows}); err != nil {
			return err
		}
		return encoder.Close()
	case ReportTable, "":
		return writeReportTable(w, rows)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func writeReportTable(w io.Writer, rows []RequestedKey) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE")
	fmt.Fprintln(tw, "---\t-----")
	for _, row := range rows {
		value := row.Value
		if !row.Set {
			value = "<unset>"
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.Key, value)
	}
	return tw.Flush()
}
