package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"darkstatic/internal/models"
	"darkstatic/internal/uploader"
	"darkstatic/pkg/utils"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [paths...]",
	Short: "Upload files or folders to a canvas",
	Long: `Upload files or folders to a Dark canvas as static assets.

Each argument is a space-separated list of files or folders. Folders are walked
recursively, following symbolic links, and every regular file found is sent as
one part of a single multipart upload. The part name is the file's base name.

Use --dry-run to authenticate and print the request that would be sent without
uploading anything.`,
	Example: `  # Upload a folder
  darkstatic upload --user alice --password secret --canvas demo ./assets

  # Upload several paths passed as one argument
  darkstatic upload -u alice -c demo "dist/ favicon.ico"

  # Inspect the request without uploading
  darkstatic upload -u alice -c demo ./assets --dry-run

  # Upload to the local development host
  darkstatic upload -u alice -c demo ./assets --dev --verbose`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runUpload(cmd, args); err != nil {
			utils.PrintError(err, "upload")
			return err
		}
		return nil
	},
}

func runUpload(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	pathSpecs, err := getPathSpecs(args)
	if err != nil {
		return err
	}
	host, err := getHostTarget(cmd)
	if err != nil {
		return err
	}
	creds, err := getCredentials(cmd)
	if err != nil {
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Starting upload operation...\n")
		cmd.Printf("  Canvas: %s\n", host.Canvas)
		cmd.Printf("  Host: %s\n", host.BaseURL)
		cmd.Printf("  Paths: %v\n", pathSpecs)
		if dryRun {
			cmd.Println("  DRY RUN MODE: No files will actually be uploaded")
		}
	}

	// No deadline: uploads of any size must be allowed to finish.
	result, err := uploader.NewDefault(cfg.AuthTimeout).Run(context.Background(), uploader.Request{
		Host:        host,
		Credentials: creds,
		PathSpecs:   pathSpecs,
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}

	if err := utils.PrintJSON(result); err != nil {
		return err
	}

	if isVerbose(cmd) {
		cmd.Println(uploadSummary(result))
	}
	return nil
}

func uploadSummary(result *models.UploadResult) string {
	if result.DryRun {
		return "Dry run completed, nothing was uploaded"
	}
	return "Upload operation completed successfully"
}

func init() {
	addAuthFlags(uploadCmd)
	uploadCmd.Flags().Bool("dry-run", false, "Don't upload to the canvas, just print the request")
}
