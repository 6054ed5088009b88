package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-cnv/internal/cnv"
)

// TextWriter writes one human-readable block per result.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteHeader is a no-op; the text format has no header.
func (t *TextWriter) WriteHeader() error { return nil }

// Write writes the input echo, the full annotation and the gene line.
func (t *TextWriter) Write(input string, res *cnv.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Input Coordinate: %s\n", strings.TrimSpace(input))
	fmt.Fprintf(&b, "Event Type: %s\n", res.EventType)
	if res.Zygosity != "" {
		fmt.Fprintf(&b, "Zygosity: %s\n", res.Zygosity)
	}
	b.WriteString("\nResult:\n")
	b.WriteString(res.FullAnnotation)
	b.WriteString("\n")

	switch {
	case res.NoGeneData:
		b.WriteString("Genes: (no gene data loaded)\n")
	case len(res.Genes) == 0:
		b.WriteString("Genes: none\n")
	default:
		fmt.Fprintf(&b, "Genes (%d): %s\n", len(res.Genes), strings.Join(res.Genes, ", "))
	}
	if res.NoCytobandData {
		b.WriteString("Note: no cytoband data loaded\n")
	}
	b.WriteString("\n")

	_, err := t.w.WriteString(b.String())
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (t *TextWriter) Flush() error {
	return t.w.Flush()
}

// NewWriter returns the writer for a format name: "text" or "tab".
func NewWriter(format string, w io.Writer) (ResultWriter, error) {
	switch format {
	case "", "text":
		return NewTextWriter(w), nil
	case "tab":
		return NewTabWriter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}
