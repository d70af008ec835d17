package main

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"amendo/internal/services"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "download <url> [target]",
		Short: "Download a result file",
		Long: "Download a result file from the workflow server. Without a target the\n" +
			"file is stored in paths.download_dir under the URL's base name.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source := strings.TrimSpace(args[0])
			target := ""
			if len(args) == 2 {
				target = strings.TrimSpace(args[1])
			}
			target, err = resolveDownloadTarget(source, target, cfg.Paths.DownloadDir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create download directory: %w", err)
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			written, err := client.DownloadFileToPath(cmd.Context(), source, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d bytes to %s\n", written, target)
			return nil
		},
	}
}

func resolveDownloadTarget(source, target, downloadDir string) (string, error) {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", services.Wrap(services.ErrValidation, "cli", "download", fmt.Sprintf("invalid url %q", source), nil)
	}
	if target != "" {
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			return filepath.Join(target, downloadName(parsed)), nil
		}
		return target, nil
	}
	if strings.TrimSpace(downloadDir) == "" {
		return "", services.Wrap(services.ErrConfiguration, "cli", "download", "no target given and paths.download_dir is empty", nil)
	}
	return filepath.Join(downloadDir, downloadName(parsed)), nil
}

func downloadName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download"
	}
	return name
}
