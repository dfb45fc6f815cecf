package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/backup"
	"github.com/vietdv277/cirrus/internal/engine"
	"github.com/vietdv277/cirrus/internal/ui"
)

var revertCmd = &cobra.Command{
	Use:   "revert",
	Short: "Revert Cache-Control changes from a backup file",
	Long: `Restore the metadata captured in a backup file.

Every record in the backup is applied, regardless of the filters the
original update used: the backup is the authoritative object set.
Objects that have been deleted since the update are reported as errors
but do not stop the rest of the batch.

Examples:
  cirrus revert --bucket my-bucket --backup .cirrus-backups/my-bucket_update_20260314_092653.json
  cirrus revert --bucket my-bucket --backup backup.json --dry-run`,
	RunE: runRevert,
}

var (
	// revert flags
	revertBucket  string
	revertBackup  string
	revertDryRun  bool
	revertWorkers int
	revertYes     bool
)

func init() {
	rootCmd.AddCommand(revertCmd)

	revertCmd.Flags().StringVar(&revertBucket, "bucket", "", "S3 bucket name (required)")
	revertCmd.Flags().StringVar(&revertBackup, "backup", "", "Backup file path (required)")
	revertCmd.Flags().BoolVar(&revertDryRun, "dry-run", false, "Preview changes without making them")
	revertCmd.Flags().IntVar(&revertWorkers, "max-workers", engine.DefaultWorkers, "Number of parallel workers (1-20)")
	revertCmd.Flags().BoolVarP(&revertYes, "yes", "y", false, "Skip confirmation prompt")

	_ = revertCmd.MarkFlagRequired("bucket")
	_ = revertCmd.MarkFlagRequired("backup")
}

func runRevert(cmd *cobra.Command, args []string) error {
	ctx := runContext()

	if !cmd.Flags().Changed("max-workers") && savedConfig.MaxWorkers > 0 {
		revertWorkers = savedConfig.MaxWorkers
	}
	revertWorkers = engine.ClampWorkers(revertWorkers)

	ui.PrintSection("S3 Cache-Control Revert")

	f, err := backup.Load(revertBackup)
	if err != nil {
		return err
	}
	if f.Bucket != revertBucket {
		return fmt.Errorf("backup file is for bucket %q, not %q", f.Bucket, revertBucket)
	}

	fmt.Printf("Bucket:      %s\n", revertBucket)
	fmt.Printf("Backup:      %s (%d records, created %s)\n", revertBackup, len(f.Records), f.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Dry run:     %s\n", onOff(revertDryRun))
	fmt.Printf("Workers:     %d\n", revertWorkers)
	fmt.Println()

	if len(f.Records) == 0 {
		fmt.Println("Backup file contains no records.")
		return nil
	}

	store, err := preflight(ctx, revertBucket)
	if err != nil {
		return err
	}

	if !revertDryRun && !revertYes {
		ok, err := ui.Confirm(fmt.Sprintf("About to revert %d objects to their previous metadata. Continue?", len(f.Records)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	reverter := &engine.Reverter{
		Store:  store,
		Bucket: revertBucket,
		DryRun: revertDryRun,
	}

	fmt.Println("\nReverting objects...")
	summary := engine.Run(ctx, f.Records, revertWorkers, reverter.Apply, ui.PrintProgress)
	fmt.Println()

	title := "Revert complete"
	if revertDryRun {
		title = "Dry run complete"
	}
	ui.PrintSummary(title, [][2]string{
		{"Records in backup", fmt.Sprint(len(f.Records))},
		{"Reverted", fmt.Sprint(summary.Updated)},
		{"Would revert", fmt.Sprint(summary.WouldUpdate)},
		{"Errors", fmt.Sprint(summary.Errored)},
	}, summary.Failures)

	if !summary.Ok() {
		return fmt.Errorf("%d of %d objects failed", summary.Errored, summary.Total())
	}
	return nil
}
