package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/cirrus/internal/config"
)

var (
	// Global flags
	profile string
	region  string
	verbose bool

	// Saved defaults from ~/.cirrus/config.yaml, loaded once at startup
	savedConfig = &config.Config{}

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cirrus",
	Short: "Cirrus - S3 Cache-Control management tool",
	Long: `Cirrus rewrites the Cache-Control metadata of objects in an S3
bucket, selectively and reversibly.

An update run lists the bucket, filters objects by folder prefix,
filename pattern and extension, then rewrites the Cache-Control header
of every match via a metadata-preserving copy. The previous metadata of
each changed object is written to a backup file, and a revert run
restores it exactly.

Examples:
  cirrus update --bucket my-bucket                         # All images
  cirrus update --bucket my-bucket --folder assets/images/ # One folder
  cirrus update --bucket my-bucket --file logo --dry-run   # Preview
  cirrus revert --bucket my-bucket --backup .cirrus-backups/my-bucket_update_20260314_092653.json`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// Read from environment variables
	viper.SetEnvPrefix("CIRRUS")
	viper.AutomaticEnv()

	if cfg, err := config.LoadConfig(); err == nil {
		savedConfig = cfg
	}

	// Priority for profile: --profile flag > ~/.cirrus/config.yaml > AWS_PROFILE env
	if profile == "" {
		if savedConfig.AWSProfile != "" {
			profile = savedConfig.AWSProfile
		} else {
			profile = os.Getenv("AWS_PROFILE")
		}
	}

	// Use AWS_REGION if --region not specified
	if region == "" {
		if savedConfig.AWSRegion != "" {
			region = savedConfig.AWSRegion
		} else if region = os.Getenv("AWS_REGION"); region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}

	level := zerolog.InfoLevel
	if verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

// runContext returns the context commands pass down, with the logger
// attached for zerolog.Ctx consumers.
func runContext() context.Context {
	return logger.WithContext(context.Background())
}

// GetProfile returns the AWS profile
func GetProfile() string {
	return profile
}

// GetRegion returns the AWS region
func GetRegion() string {
	return region
}
