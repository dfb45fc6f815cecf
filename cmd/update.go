package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/backup"
	"github.com/vietdv277/cirrus/internal/engine"
	"github.com/vietdv277/cirrus/internal/filter"
	"github.com/vietdv277/cirrus/internal/ui"
	"github.com/vietdv277/cirrus/pkg/types"
)

// DefaultCacheControl is applied when no target value is given: long
// cache lifetime for immutable assets.
const DefaultCacheControl = "public, max-age=31536000, immutable"

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update Cache-Control headers for objects in a bucket",
	Long: `Update the Cache-Control header of matching objects.

Objects are selected by folder prefix, filename pattern and extension.
With no filters, every image asset in the bucket is updated. All other
metadata (Content-Type, Content-Encoding, custom metadata, ...) is
preserved by the rewrite.

Unless --no-backup is given, the previous metadata of every changed
object is saved to a timestamped backup file for 'cirrus revert'.

Examples:
  cirrus update --bucket my-bucket
  cirrus update --bucket my-bucket --folder assets/ --folder icons/
  cirrus update --bucket my-bucket --file logo --file banner
  cirrus update --bucket my-bucket --no-extension-filter --dry-run
  cirrus update --bucket my-bucket --cache-control "public, max-age=86400"`,
	RunE: runUpdate,
}

var (
	// update flags
	updateBucket       string
	updateCacheControl string
	updateFolders      []string
	updateFiles        []string
	updateNoExtFilter  bool
	updateDryRun       bool
	updateNoBackup     bool
	updateBackupDir    string
	updateWorkers      int
	updateYes          bool
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateBucket, "bucket", "", "S3 bucket name (required)")
	updateCmd.Flags().StringVar(&updateCacheControl, "cache-control", DefaultCacheControl, "Cache-Control header value to apply")
	updateCmd.Flags().StringSliceVar(&updateFolders, "folder", nil, "Filter by folder prefix (repeatable)")
	updateCmd.Flags().StringSliceVar(&updateFiles, "file", nil, "Filter by filename pattern (repeatable)")
	updateCmd.Flags().BoolVar(&updateNoExtFilter, "no-extension-filter", false, "Disable extension filtering (process all files)")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "Preview changes without making them")
	updateCmd.Flags().BoolVar(&updateNoBackup, "no-backup", false, "Skip creating a backup file")
	updateCmd.Flags().StringVar(&updateBackupDir, "backup-dir", backup.DefaultDir, "Directory for backup files")
	updateCmd.Flags().IntVar(&updateWorkers, "max-workers", engine.DefaultWorkers, "Number of parallel workers (1-20)")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "Skip confirmation prompt")

	_ = updateCmd.MarkFlagRequired("bucket")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := runContext()
	log := zerolog.Ctx(ctx)

	// Saved defaults fill in anything the flags left untouched
	if !cmd.Flags().Changed("cache-control") && savedConfig.CacheControl != "" {
		updateCacheControl = savedConfig.CacheControl
	}
	if !cmd.Flags().Changed("max-workers") && savedConfig.MaxWorkers > 0 {
		updateWorkers = savedConfig.MaxWorkers
	}
	if !cmd.Flags().Changed("backup-dir") && savedConfig.BackupDir != "" {
		updateBackupDir = savedConfig.BackupDir
	}
	updateWorkers = engine.ClampWorkers(updateWorkers)

	ui.PrintSection("S3 Cache-Control Update")
	fmt.Printf("Bucket:           %s\n", updateBucket)
	fmt.Printf("Cache-Control:    %s\n", updateCacheControl)
	fmt.Printf("Dry run:          %s\n", onOff(updateDryRun))
	fmt.Printf("Workers:          %d\n", updateWorkers)
	if len(updateFolders) > 0 {
		fmt.Printf("Folder filters:   %v\n", updateFolders)
	}
	if len(updateFiles) > 0 {
		fmt.Printf("File filters:     %v\n", updateFiles)
	}
	fmt.Printf("Extension filter: %s\n", onOff(!updateNoExtFilter))
	fmt.Println()

	store, err := preflight(ctx, updateBucket)
	if err != nil {
		return err
	}

	// A single folder filter doubles as the listing prefix so we never
	// pull keys the classifier would discard anyway.
	prefix := ""
	if len(updateFolders) == 1 {
		prefix = updateFolders[0]
	}

	fmt.Println("Listing objects...")
	var keys []string
	err = store.ListObjects(ctx, updateBucket, prefix, func(o types.Object) bool {
		keys = append(keys, o.Key)
		return true
	})
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No objects found in bucket.")
		return nil
	}
	fmt.Printf("Found %d objects\n", len(keys))

	filterCfg := filter.NewConfig(updateFolders, updateFiles, !updateNoExtFilter, nil, nil)
	var selected []string
	skipReasons := make(map[filter.Reason]int)
	for _, key := range keys {
		if d := filter.Classify(key, filterCfg); d.Include {
			selected = append(selected, key)
		} else {
			skipReasons[d.Reason]++
		}
	}

	fmt.Printf("Objects to process: %d (filtered out: %d)\n", len(selected), len(keys)-len(selected))
	ui.PrintSkipReasons(skipReasons)
	if len(selected) == 0 {
		fmt.Println("\nNo matching objects found to update.")
		return nil
	}

	if !updateDryRun && !updateYes {
		ok, err := ui.Confirm(fmt.Sprintf("About to update Cache-Control for %d objects. Continue?", len(selected)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	var sink *backup.Sink
	if !updateDryRun && !updateNoBackup {
		sink = backup.NewSink()
	}

	updater := &engine.Updater{
		Store:        store,
		Bucket:       updateBucket,
		CacheControl: updateCacheControl,
		DryRun:       updateDryRun,
		Sink:         sink,
	}

	fmt.Println("\nProcessing objects...")
	summary := engine.Run(ctx, selected, updateWorkers, updater.Apply, ui.PrintProgress)
	fmt.Println()

	if sink.Len() > 0 {
		path := backup.Path(updateBackupDir, updateBucket, time.Now())
		if _, err := backup.SaveSink(*log, sink, updateBucket, updateCacheControl, path); err != nil {
			// The updates themselves succeeded; losing the backup is a
			// warning, not a run failure.
			log.Warn().Err(err).Msg("could not save backup file")
		} else {
			ui.PrintHint(
				"To revert these changes, run:",
				fmt.Sprintf("  cirrus revert --bucket %s --backup %s", updateBucket, path),
			)
		}
	}

	title := "Update complete"
	if updateDryRun {
		title = "Dry run complete"
	}
	ui.PrintSummary(title, [][2]string{
		{"Objects in bucket", fmt.Sprint(len(keys))},
		{"Objects processed", fmt.Sprint(summary.Total())},
		{"Updated", fmt.Sprint(summary.Updated)},
		{"Would update", fmt.Sprint(summary.WouldUpdate)},
		{"Already correct", fmt.Sprint(summary.AlreadyCorrect)},
		{"Errors", fmt.Sprint(summary.Errored)},
		{"Filtered out", fmt.Sprint(len(keys) - len(selected))},
	}, summary.Failures)

	if !summary.Ok() {
		return fmt.Errorf("%d of %d objects failed", summary.Errored, summary.Total())
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
