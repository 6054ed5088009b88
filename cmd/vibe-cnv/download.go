package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-cnv/internal/reference"
)

// UCSC download server
const ucscBaseURL = "https://hgdownload.soe.ucsc.edu/goldenPath"

// cytobandFileName is the name UCSC publishes the cytoband table under.
const cytobandFileName = "cytoBand.txt.gz"

// cytobandURL returns the UCSC cytoband URL for the given assembly.
func cytobandURL(baseURL, assembly string) (string, error) {
	switch strings.ToLower(assembly) {
	case "hg38", "grch38":
		return fmt.Sprintf("%s/hg38/database/%s", baseURL, cytobandFileName), nil
	case "hg19", "grch37":
		return fmt.Sprintf("%s/hg19/database/%s", baseURL, cytobandFileName), nil
	}
	return "", fmt.Errorf("unsupported assembly %q (use hg38 or hg19)", assembly)
}

// ucscAssembly maps GRC names to the UCSC directory name.
func ucscAssembly(assembly string) string {
	switch strings.ToLower(assembly) {
	case "grch38":
		return "hg38"
	case "grch37":
		return "hg19"
	}
	return strings.ToLower(assembly)
}

func (a *app) newDownloadCmd() *cobra.Command {
	var (
		outputDir string
		baseURL   string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the UCSC cytoband table",
		Long: `Download the UCSC cytoBand.txt.gz table for an assembly.

Files are stored under ~/.vibe-cnv/<assembly>/ by default. Other commands
use the downloaded table automatically when --cytobands is not given.`,
		Example: `  vibe-cnv download
  vibe-cnv download --assembly hg19
  vibe-cnv download --output /data/reference`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			assembly := a.v.GetString(keyAssembly)
			url, err := cytobandURL(baseURL, assembly)
			if err != nil {
				return usageError{err}
			}

			dir := outputDir
			if dir == "" {
				dir = DefaultReferencePath(assembly)
				if dir == "" {
					return fmt.Errorf("cannot determine home directory")
				}
			} else {
				dir = filepath.Join(dir, ucscAssembly(assembly))
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("cannot create directory %s: %w", dir, err)
			}

			fmt.Fprintf(a.stdout, "Downloading UCSC cytobands for %s...\n", ucscAssembly(assembly))
			fmt.Fprintf(a.stdout, "Destination: %s\n\n", dir)

			if err := fetchCytobands(cmd.Context(), a.stdout, url, filepath.Join(dir, cytobandFileName)); err != nil {
				return fmt.Errorf("downloading cytobands: %w", err)
			}

			fmt.Fprintf(a.stdout, "\nDownload complete!\n")
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default: ~/.vibe-cnv/)")
	cmd.Flags().StringVar(&baseURL, "base-url", ucscBaseURL, "UCSC goldenPath base URL")
	_ = cmd.Flags().MarkHidden("base-url")

	return cmd
}

var httpClient = &http.Client{Timeout: 2 * time.Minute}

// fetchCytobands downloads a cytoband table to destPath. The file is only
// moved into place once it parses as a non-empty cytoband table.
func fetchCytobands(ctx context.Context, out io.Writer, url, destPath string) error {
	if info, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(out, "  %s already exists (%s), skipping\n", filepath.Base(destPath), formatSize(info.Size()))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	// Keep the .gz suffix so the loader decompresses the temp file.
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".cytoBand-*.txt.gz")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}

	bands, err := reference.LoadCytobands(tmp.Name())
	if err != nil {
		return fmt.Errorf("downloaded file is not a cytoband table: %w", err)
	}
	if len(bands) == 0 {
		return fmt.Errorf("downloaded cytoband table is empty")
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "  %s: %d bands (%s)\n", filepath.Base(destPath), len(bands), formatSize(size))
	return nil
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// DefaultReferencePath returns the default directory for downloaded tables.
func DefaultReferencePath(assembly string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vibe-cnv", ucscAssembly(assembly))
}

// FindCytobandFile returns the downloaded cytoband table for an assembly,
// or "" if none has been downloaded.
func FindCytobandFile(assembly string) string {
	dir := DefaultReferencePath(assembly)
	if dir == "" {
		return ""
	}
	for _, name := range []string{cytobandFileName, "cytoBand.txt"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
