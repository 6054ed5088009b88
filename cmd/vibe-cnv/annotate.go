package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-cnv/internal/cnv"
	"github.com/inodb/vibe-cnv/internal/output"
)

func (a *app) newAnnotateCmd() *cobra.Command {
	var (
		eventType  string
		zygosity   string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "annotate <coordinate>",
		Short: "Annotate a single CNV call",
		Long: `Annotate one copy-number variant given as [chr]CHROM:START-END.

The result is an HGVS-style notation, the cytoband span covered (when a
cytoband table is available) and the sorted list of overlapping genes (when
a gene table is available).`,
		Example: `  vibe-cnv annotate chr16:15489724-16367962 --cytobands cytoBand.txt
  vibe-cnv annotate chr16:15489724-16367962 -e duplication -z homozygous --genes genes.bed
  vibe-cnv annotate 22:18912231-21465672 -e deletion --db reference.duckdb -f tab`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnnotate(args[0], eventType, zygosity, outputFile)
		},
	}

	cmd.Flags().StringVarP(&eventType, "event", "e", cnv.EventDuplication, "Event type: duplication or deletion")
	cmd.Flags().StringVarP(&zygosity, "zygosity", "z", "", "Zygosity: homozygous or heterozygous (duplications only)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringP("format", "f", "text", "Output format: text, tab")
	_ = a.v.BindPFlag(keyFormat, cmd.Flags().Lookup("format"))

	return cmd
}

func (a *app) runAnnotate(coordinate, eventType, zygosity, outputFile string) error {
	var out io.Writer = a.stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	writer, err := output.NewWriter(a.v.GetString(keyFormat), out)
	if err != nil {
		return usageError{err}
	}

	snap, err := a.loadSnapshot()
	if err != nil {
		return err
	}

	ann := cnv.NewAnnotator(snap)
	ann.SetLogger(a.logger)

	res, err := ann.Annotate(coordinate, eventType, zygosity)
	if err != nil {
		return err
	}

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writer.Write(coordinate, res); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return writer.Flush()
}
