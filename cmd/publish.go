package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitrina-piezas/catalog/internal/config"
	"github.com/vitrina-piezas/catalog/internal/publish"
)

func newPublishCmd() *cobra.Command {
	var dir string
	var bucket string
	var prefix string
	var region string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload an exported catalog to S3",
		Long: `Uploads the output of "catalog export" to an S3 bucket, keeping the
directory layout under an optional key prefix. Credentials come from the
default AWS chain (environment, shared config, instance role).`,
		Example: `  # Export and publish to a website bucket
  catalog export --out docs
  catalog publish --dir docs --bucket my-shop-site

  # Publish below a prefix
  catalog publish --bucket my-shop-site --prefix catalogo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.FromEnv()
			if bucket == "" {
				bucket = settings.S3Bucket
			}
			if prefix == "" {
				prefix = settings.S3Prefix
			}
			if region == "" {
				region = settings.AWSRegion
			}
			if bucket == "" {
				return fmt.Errorf("--bucket is required (or set CATALOG_S3_BUCKET)")
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("export directory not found: %s\n\nRun the export first:\n  catalog export --out %s", dir, dir)
			}

			client, err := publish.NewS3Client(cmd.Context(), region)
			if err != nil {
				return err
			}

			result, err := publish.New(client, bucket, prefix).PublishDir(cmd.Context(), dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Published %s to s3://%s/%s\n", result, bucket, prefix)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "docs", "Export directory to upload")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Target S3 bucket (default $CATALOG_S3_BUCKET)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket (default $CATALOG_S3_PREFIX)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default $AWS_REGION or us-east-1)")

	return cmd
}
