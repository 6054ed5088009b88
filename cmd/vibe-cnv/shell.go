package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-cnv/internal/cnv"
	"github.com/inodb/vibe-cnv/internal/output"
)

const shellHelp = `Enter one CNV per line:
  <coordinate> <duplication|deletion> [homozygous|heterozygous]
e.g.
  chr16:15489724-16367962 duplication homozygous
Type "help" for this message, "quit" to exit.
`

func (a *app) newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactively annotate CNV calls read from stdin",
		Long: `Load the reference tables once and annotate CNV calls typed one per line.
Repeated lookups are answered from an in-memory cache.`,
		Example: `  vibe-cnv shell --cytobands cytoBand.txt --genes genes.bed`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.loadSnapshot()
			if err != nil {
				return err
			}

			ann := cnv.NewAnnotator(snap)
			ann.SetLogger(a.logger)

			memo, err := cnv.NewMemo(ann, a.v.GetInt(keyShellSize))
			if err != nil {
				return usageError{err}
			}

			writer, err := output.NewWriter(a.v.GetString(keyFormat), a.stdout)
			if err != nil {
				return usageError{err}
			}
			return runShell(a.stdin, a.stdout, memo, writer)
		},
	}

	cmd.Flags().Int("cache-size", 256, "Number of annotations kept in the session cache")
	_ = a.v.BindPFlag(keyShellSize, cmd.Flags().Lookup("cache-size"))

	return cmd
}

// runShell answers CNV lookups line by line until EOF or "quit".
// Lookup errors are reported and the session continues.
func runShell(in io.Reader, out io.Writer, memo *cnv.Memo, writer output.ResultWriter) error {
	fmt.Fprint(out, shellHelp)
	if err := writer.WriteHeader(); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			fmt.Fprintln(out)
			return nil
		case "help":
			fmt.Fprint(out, shellHelp)
			continue
		}

		if len(fields) < 2 || len(fields) > 3 {
			fmt.Fprintln(out, "Error: expected <coordinate> <event> [zygosity]")
			continue
		}

		var zygosity string
		if len(fields) == 3 {
			zygosity = fields[2]
		}

		res, err := memo.Annotate(fields[0], fields[1], zygosity)
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", cnv.Message(err))
			continue
		}

		if err := writer.Write(fields[0], res); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		if err := writer.Flush(); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
