package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"

	"github.com/mattn/go-isatty"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func outputFormat() string {
	if opts.Format != "auto" && opts.Format != "" {
		return opts.Format
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return formatTable
	}
	return formatJSON
}

type limitRecord struct {
	Resource string      `json:"resource"`
	Soft     interface{} `json:"soft"`
	Hard     interface{} `json:"hard"`
	Unit     string      `json:"unit,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func recordOf(entry resourcelimits.Entry) limitRecord {
	record := limitRecord{Resource: entry.Name}
	if r, ok := resourcelimits.Lookup(entry.Name); ok {
		record.Unit = r.Unit
	}
	if entry.Err != nil {
		record.Error = entry.Err.Error()
		return record
	}
	record.Soft = entry.Pair.Soft.Interface()
	record.Hard = entry.Pair.Hard.Interface()
	return record
}

// writeEntries prints one JSON object per line, or an aligned table
func writeEntries(w io.Writer, format string, entries []resourcelimits.Entry) error {
	if format == formatJSON {
		encoder := json.NewEncoder(w)
		for _, entry := range entries {
			if err := encoder.Encode(recordOf(entry)); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RESOURCE\tSOFT\tHARD\tUNIT\t")
	for _, entry := range entries {
		record := recordOf(entry)
		if entry.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%s\t error: %s\n", entry.Name, record.Unit, record.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", entry.Name, entry.Pair.Soft, entry.Pair.Hard, record.Unit)
	}
	return tw.Flush()
}
