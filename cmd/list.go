package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"darkstatic/internal/collector"
	"darkstatic/internal/models"
	"darkstatic/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list [paths...]",
	Short: "List the files an upload would send",
	Long: `List every regular file found under the given paths, exactly as the upload
command would collect them, together with the total size.

No credentials are needed and nothing is sent over the network.`,
	Example: `  # List the files in a folder
  darkstatic list ./assets

  # List several paths passed as one argument
  darkstatic list "dist/ favicon.ico"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runList(cmd, args); err != nil {
			utils.PrintError(err, "list")
			return err
		}
		return nil
	},
}

func runList(cmd *cobra.Command, args []string) error {
	pathSpecs, err := getPathSpecs(args)
	if err != nil {
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Collecting files from: %v\n", pathSpecs)
	}

	batch, err := collector.Collect(pathSpecs)
	if err != nil {
		return err
	}

	return utils.PrintJSON(models.ListResult{
		Items:          batch.Entries,
		TotalFiles:     len(batch.Entries),
		TotalSizeBytes: batch.TotalSizeBytes,
		TotalSizeHuman: utils.FormatBytes(batch.TotalSizeBytes),
		OperationTime:  utils.FormatTime(time.Now()),
	})
}
