package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/aws"
	"github.com/vietdv277/cirrus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show AWS identity and bucket access",
	Long: `Verify AWS credentials and, optionally, access to a bucket.

This runs the same checks update and revert run before touching
anything, without performing any operation.

Examples:
  cirrus status
  cirrus status --bucket my-bucket`,
	RunE: runStatus,
}

var statusBucket string

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusBucket, "bucket", "", "Also check access to this bucket")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := runContext()

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	if GetProfile() != "" {
		fmt.Printf("Profile:  %s\n", ui.HeaderStyle.Render(GetProfile()))
	} else {
		fmt.Println("Profile:  " + ui.MutedStyle.Render("(default)"))
	}
	if GetRegion() != "" {
		fmt.Printf("Region:   %s\n", GetRegion())
	}

	client, err := aws.NewClient(ctx, aws.WithProfile(GetProfile()), aws.WithRegion(GetRegion()))
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Account:  %s\n", identity.Account)
	fmt.Printf("Identity: %s\n", identity.Arn)

	if statusBucket != "" {
		store := aws.NewStore(client)
		if err := store.HeadBucket(ctx, statusBucket); err != nil {
			return err
		}
		fmt.Printf("Bucket:   %s %s\n", statusBucket, ui.UpdatedStyle.Render("accessible"))
	}

	return nil
}
