// internal/common/aws/clients.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// NewClients loads the default credential chain for region and returns
// SES and SNS clients.
func NewClients(ctx context.Context, region string) (*ses.Client, *sns.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, nil, fmt.Errorf("load AWS config: %w", err)
	}
	return ses.NewFromConfig(cfg), sns.NewFromConfig(cfg), nil
}
