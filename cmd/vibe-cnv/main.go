// Package main provides the vibe-cnv command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-cnv/internal/cnv"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Configuration keys.
const (
	keyCytobands = "reference.cytobands"
	keyGenes     = "reference.genes"
	keyDB        = "reference.db"
	keyCacheDir  = "reference.cache_dir"
	keyAssembly  = "reference.assembly"
	keyFormat    = "output.format"
	keyShellSize = "shell.cache_size"
	keyLogLevel  = "log.level"
)

// usageError marks errors caused by bad command-line usage.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// app carries the state shared by all subcommands.
type app struct {
	v       *viper.Viper
	logger  *zap.Logger
	cfgFile string
	verbose bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		v:      viper.New(),
		logger: zap.NewNop(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	defer func() { _ = a.logger.Sync() }()

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		return ExitUsage
	}

	var ce *cnv.Error
	if errors.As(err, &ce) {
		fmt.Fprintf(stderr, "Error: %s\n", cnv.Message(err))
		return ExitError
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibe-cnv",
		Short: "CNV annotator: HGVS-style notation, cytobands and overlapping genes",
		Long: `vibe-cnv annotates a copy-number duplication or deletion given as a
coordinate range (e.g. chr16:15489724-16367962) with an HGVS-style notation,
the cytogenetic band span it covers and the genes it overlaps.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			return a.initLogger()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default: ~/.vibe-cnv.yaml)")
	pf.String("cytobands", "", "Cytoband table (UCSC cytoBand.txt, optionally .gz)")
	pf.String("genes", "", "Gene table (tab-delimited chrom, start, end, name; optionally .gz)")
	pf.String("db", "", "DuckDB reference store created with 'vibe-cnv import'")
	pf.String("cache-dir", "", "Directory for the parsed reference snapshot cache")
	pf.String("assembly", "hg38", "Assembly used to find downloaded cytobands: hg38 or hg19")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	_ = a.v.BindPFlag(keyCytobands, pf.Lookup("cytobands"))
	_ = a.v.BindPFlag(keyGenes, pf.Lookup("genes"))
	_ = a.v.BindPFlag(keyDB, pf.Lookup("db"))
	_ = a.v.BindPFlag(keyCacheDir, pf.Lookup("cache-dir"))
	_ = a.v.BindPFlag(keyAssembly, pf.Lookup("assembly"))

	a.v.SetDefault(keyFormat, "text")
	a.v.SetDefault(keyShellSize, 256)
	a.v.SetDefault(keyLogLevel, "info")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.AddCommand(a.newAnnotateCmd())
	cmd.AddCommand(a.newShellCmd())
	cmd.AddCommand(a.newImportCmd())
	cmd.AddCommand(a.newDownloadCmd())
	cmd.AddCommand(a.newConfigCmd())

	return cmd
}

// initConfig reads the config file and environment into the app's viper.
func (a *app) initConfig() error {
	a.v.SetEnvPrefix("VIBE_CNV")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	a.v.AddConfigPath(home)
	a.v.SetConfigName(".vibe-cnv")
	a.v.SetConfigType("yaml")

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// initLogger builds a console logger on stderr at the configured level.
func (a *app) initLogger() error {
	level := zapcore.InfoLevel
	if a.verbose {
		level = zapcore.DebugLevel
	} else if err := level.UnmarshalText([]byte(a.v.GetString(keyLogLevel))); err != nil {
		return usageError{fmt.Errorf("invalid log level %q", a.v.GetString(keyLogLevel))}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(a.stderr),
		level,
	)
	a.logger = zap.New(core)
	return nil
}

// configPath returns the config file in use, or the default location.
func (a *app) configPath() (string, error) {
	if f := a.v.ConfigFileUsed(); f != "" {
		return f, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".vibe-cnv.yaml"), nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
