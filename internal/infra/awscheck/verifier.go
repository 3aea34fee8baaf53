// Where: vmm/internal/infra/awscheck/verifier.go
// What: AWS credential preflight via STS GetCallerIdentity.
// Why: Catch revoked or mistyped access keys before a source is created with them.
package awscheck

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
)

// CallerIdentityAPI is the subset of the STS client used for verification.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// ClientFactory builds an STS client for a region and static credentials.
type ClientFactory func(ctx context.Context, region string, creds source.Credentials) (CallerIdentityAPI, error)

// Verifier implements ports.CredentialVerifier.
type Verifier struct {
	Endpoint string
	factory  ClientFactory
}

// NewVerifier returns a Verifier using the AWS SDK default config chain with
// static credentials. endpoint overrides the STS endpoint when set.
func NewVerifier(endpoint string) *Verifier {
	v := &Verifier{Endpoint: endpoint}
	v.factory = v.newSTSClient
	return v
}

func newVerifierWithFactory(factory ClientFactory) *Verifier {
	return &Verifier{factory: factory}
}

// Verify returns the AWS account id the credentials belong to.
func (v *Verifier) Verify(ctx context.Context, region string, creds source.Credentials) (string, error) {
	if v == nil || v.factory == nil {
		return "", fmt.Errorf("aws verifier is not configured")
	}
	client, err := v.factory(ctx, region, creds)
	if err != nil {
		return "", fmt.Errorf("build sts client: %w", err)
	}
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("verify aws credentials: %w", err)
	}
	return aws.ToString(out.Account), nil
}

func (v *Verifier) newSTSClient(ctx context.Context, region string, creds source.Credentials) (CallerIdentityAPI, error) {
	cfg, err := loadAWSConfig(ctx, region, creds)
	if err != nil {
		return nil, err
	}
	return sts.NewFromConfig(cfg, func(options *sts.Options) {
		if v.Endpoint != "" {
			options.BaseEndpoint = aws.String(v.Endpoint)
		}
	}), nil
}

func loadAWSConfig(ctx context.Context, region string, creds source.Credentials) (aws.Config, error) {
	if region == "" {
		return aws.Config{}, fmt.Errorf("aws region is required")
	}
	provider := credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, "")
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(provider),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}
