// Package output provides annotation result formatters.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/vibe-cnv/internal/cnv"
)

// ResultWriter defines the interface for writing annotation results.
type ResultWriter interface {
	WriteHeader() error
	Write(input string, res *cnv.Result) error
	Flush() error
}

// TabWriter writes annotation results in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Input",
			"Location",
			"Event",
			"Zygosity",
			"HGVS",
			"Cytoband",
			"Genes",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single result row. Empty fields are written as "-".
func (tw *TabWriter) Write(input string, res *cnv.Result) error {
	genes := strings.Join(res.Genes, ",")

	values := []string{
		dash(strings.TrimSpace(input)),
		res.Range.String(),
		res.EventType,
		dash(res.Zygosity),
		res.HGVS,
		dash(res.Cytoband),
		dash(genes),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
