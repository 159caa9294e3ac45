// Package query implements the asynchronous analytical query engine and
// the slash-command dispatch over the accumulated audit log.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/google/uuid"

	stderrors "letterbot/internal/common/errors"
	"letterbot/internal/common/logger"
	"letterbot/internal/common/metrics"
)

// ResultSet is the materialized output of one query execution. The first
// row is the header row.
type ResultSet struct {
	Rows [][]string
}

// AthenaAPI is the slice of the Athena client the engine uses.
type AthenaAPI interface {
	StartQueryExecution(ctx context.Context, input *athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, input *athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, input *athena.GetQueryResultsInput) (*athena.GetQueryResultsOutput, error)
}

// Engine submits queries to Athena and polls them to a terminal state.
type Engine struct {
	client         AthenaAPI
	database       string
	workgroup      string
	outputLocation string
	pollInterval   time.Duration
	log            logger.Logger
}

func NewEngine(client AthenaAPI, database, workgroup, outputLocation string, pollInterval time.Duration, log logger.Logger) *Engine {
	return &Engine{
		client:         client,
		database:       database,
		workgroup:      workgroup,
		outputLocation: outputLocation,
		pollInterval:   pollInterval,
		log:            log,
	}
}

// Execute runs one query to a terminal state and materializes its result
// set. The poll loop has no deadline of its own: it runs until the engine
// reports a terminal state or ctx is cancelled. Results are fetched once,
// without pagination.
func (e *Engine) Execute(ctx context.Context, queryText string) (*ResultSet, error) {
	e.log.Info("running Athena query", map[string]interface{}{
		"query": queryText,
	})

	input := &athena.StartQueryExecutionInput{
		QueryString:        aws.String(queryText),
		ClientRequestToken: aws.String(uuid.NewString()),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(e.database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(e.outputLocation),
		},
	}
	if e.workgroup != "" {
		input.WorkGroup = aws.String(e.workgroup)
	}

	started, err := e.client.StartQueryExecution(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start query execution: %w", err)
	}
	executionID := started.QueryExecutionId

	status, err := e.waitForTerminalState(ctx, executionID)
	if err != nil {
		return nil, err
	}

	switch status.State {
	case types.QueryExecutionStateFailed:
		metrics.QueriesExecuted.WithLabelValues(string(status.State)).Inc()
		return nil, stderrors.NewQueryFailedError(aws.ToString(status.StateChangeReason))
	case types.QueryExecutionStateCancelled:
		metrics.QueriesExecuted.WithLabelValues(string(status.State)).Inc()
		return nil, stderrors.NewQueryCancelledError()
	}
	metrics.QueriesExecuted.WithLabelValues(string(types.QueryExecutionStateSucceeded)).Inc()

	results, err := e.client.GetQueryResults(ctx, &athena.GetQueryResultsInput{
		QueryExecutionId: executionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get query results: %w", err)
	}

	rows := make([][]string, 0, len(results.ResultSet.Rows))
	for _, row := range results.ResultSet.Rows {
		cells := make([]string, 0, len(row.Data))
		for _, d := range row.Data {
			cells = append(cells, aws.ToString(d.VarCharValue))
		}
		rows = append(rows, cells)
	}

	return &ResultSet{Rows: rows}, nil
}

func (e *Engine) waitForTerminalState(ctx context.Context, executionID *string) (*types.QueryExecutionStatus, error) {
	for {
		out, err := e.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: executionID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get query execution: %w", err)
		}

		status := out.QueryExecution.Status
		e.log.Debug("query state", map[string]interface{}{
			"executionId": aws.ToString(executionID),
			"state":       string(status.State),
		})

		switch status.State {
		case types.QueryExecutionStateSucceeded,
			types.QueryExecutionStateFailed,
			types.QueryExecutionStateCancelled:
			return status, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}
