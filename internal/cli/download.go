package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/senget/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	var (
		version string
		kind    string
	)

	cmd := &cobra.Command{
		Use:   "download NAME [PATH]",
		Short: "Download a package's distributable without installing it",
		Long: `Download the distributable a package would be installed from into PATH,
which defaults to the current directory.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 2 {
				dir = args[1]
			}
			return runDownload(cmd, args[0], dir, version, kind)
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "Version to download (default: latest)")
	cmd.Flags().StringVarP(&kind, "dist-type", "d", "", "Preferred distributable: installer, zip or exe")

	return cmd
}

// resolveDir returns dir as an absolute path, defaulting to the working directory.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return abs, nil
}

func runDownload(cmd *cobra.Command, name, dir, version, kind string) error {
	preferred, err := parseKindFlag(kind)
	if err != nil {
		return err
	}
	dir, err = resolveDir(dir)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	opts := orchestrator.DownloadOptions{Version: version, Kind: preferred, Dir: dir}
	return s.withProgress("Downloading "+name, func() error {
		_, err := s.orch.Download(cmd.Context(), name, opts)
		return err
	})
}
