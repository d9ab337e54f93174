package gql

//go:generate go tool github.com/Khan/genqlient genqlient.yaml

import (
	"context"
	"fmt"
	"net/http"
	"time"

	genqlientgraphql "github.com/Khan/genqlient/graphql"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"postpage/internal/config"
)

const requestTimeout = 15 * time.Second

func NewClient(ctx context.Context, cfg config.Config) (genqlientgraphql.Client, error) {
	transport := &authTransport{
		base:   http.DefaultTransport,
		apiKey: cfg.GraphQLAPIKey,
	}

	if cfg.GraphQLAuthMode == config.AuthModeIAM {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		transport.signer = newIAMSigner(awsCfg.Credentials, awsCfg.Region)
	}

	client := &http.Client{
		Timeout:   requestTimeout,
		Transport: transport,
	}

	return genqlientgraphql.NewClient(cfg.GraphQLEndpoint, client), nil
}
