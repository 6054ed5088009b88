package main

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// settableKeys lists the keys accepted by "config set" with their value parsers.
var settableKeys = map[string]func(string) (any, error){
	keyCytobands: parsePath,
	keyGenes:     parsePath,
	keyDB:        parsePath,
	keyCacheDir:  parsePath,
	keyAssembly: func(s string) (any, error) {
		if _, err := cytobandURL("", s); err != nil {
			return nil, err
		}
		return s, nil
	},
	keyFormat: func(s string) (any, error) {
		if s != "text" && s != "tab" {
			return nil, fmt.Errorf("unknown output format %q (use text or tab)", s)
		}
		return s, nil
	},
	keyShellSize: func(s string) (any, error) {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("cache size must be a positive integer, got %q", s)
		}
		return n, nil
	},
	keyLogLevel: func(s string) (any, error) {
		if _, err := zapcore.ParseLevel(s); err != nil {
			return nil, err
		}
		return s, nil
	},
}

func parsePath(s string) (any, error) { return s, nil }

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-cnv configuration",
		Long: `Show, get, or set configuration values stored in ~/.vibe-cnv.yaml.

Keys: reference.cytobands, reference.genes, reference.db, reference.cache_dir,
reference.assembly, output.format, shell.cache_size, log.level.`,
		Example: `  vibe-cnv config
  vibe-cnv config set reference.cytobands ~/ref/cytoBand.txt.gz
  vibe-cnv config get shell.cache_size`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setConfig(args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a configuration key",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.getConfig(args[0])
		},
	})

	return cmd
}

// showConfig prints the effective value of every known key.
func (a *app) showConfig() error {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	effective := make(map[string]any, len(keys))
	for _, k := range keys {
		effective[k] = a.v.Get(k)
	}

	out, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if f := a.v.ConfigFileUsed(); f != "" {
		fmt.Fprintf(a.stdout, "# %s\n", f)
	}
	fmt.Fprint(a.stdout, string(out))
	return nil
}

// setConfig validates value for key and writes it to the config file,
// leaving other keys in the file untouched.
func (a *app) setConfig(key, value string) error {
	parse, ok := settableKeys[key]
	if !ok {
		return usageError{fmt.Errorf("unknown config key %q", key)}
	}
	val, err := parse(value)
	if err != nil {
		return usageError{fmt.Errorf("%s: %w", key, err)}
	}

	cfgFile, err := a.configPath()
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(cfgFile)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config %s: %w", cfgFile, err)
	}
	file.Set(key, val)
	if err := file.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(a.stdout, "Set %s = %v in %s\n", key, val, cfgFile)
	return nil
}

func (a *app) getConfig(key string) error {
	if _, ok := settableKeys[key]; !ok {
		return usageError{fmt.Errorf("unknown config key %q", key)}
	}
	val := a.v.Get(key)
	if val == nil || val == "" {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(a.stdout, val)
	return nil
}
