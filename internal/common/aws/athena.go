package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
)

type AthenaClient struct {
	client *athena.Client
}

func NewAthenaClient(ctx context.Context, region string) (*AthenaClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &AthenaClient{client: athena.NewFromConfig(cfg)}, nil
}

func (a *AthenaClient) StartQueryExecution(ctx context.Context, input *athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error) {
	return a.client.StartQueryExecution(ctx, input)
}

func (a *AthenaClient) GetQueryExecution(ctx context.Context, input *athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error) {
	return a.client.GetQueryExecution(ctx, input)
}

func (a *AthenaClient) GetQueryResults(ctx context.Context, input *athena.GetQueryResultsInput) (*athena.GetQueryResultsOutput, error) {
	return a.client.GetQueryResults(ctx, input)
}
