package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vietdv277/cirrus/internal/aws"
)

// preflight builds the object store and verifies credentials and bucket
// access. Any failure here aborts the run before a single mutation.
func preflight(ctx context.Context, bucket string) (*aws.Store, error) {
	log := zerolog.Ctx(ctx)

	client, err := aws.NewClient(ctx, aws.WithProfile(GetProfile()), aws.WithRegion(GetRegion()))
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}

	fmt.Println("Verifying AWS credentials and bucket access...")
	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("account", identity.Account).Str("arn", identity.Arn).Msg("credentials verified")

	store := aws.NewStore(client)
	if err := store.HeadBucket(ctx, bucket); err != nil {
		return nil, err
	}
	fmt.Printf("Authenticated as %s\n\n", identity.Arn)

	return store, nil
}
