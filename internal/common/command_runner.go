package common

import (
	"context"
	"fmt"

	"resumelens/internal/errors"
)

// CreateInputFunc builds an operation input from the file contents read
// for the command's positional arguments.
type CreateInputFunc[Input any] func(contents []string) (Input, error)

// LogDetailsFunc logs the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// AnalysisOperationFunc is the shape of every analysis operation.
type AnalysisOperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// RunAnalysisCommand is the shared read-analyze-output flow behind the
// file-based CLI commands.
func RunAnalysisCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	createInput CreateInputFunc[Input],
	operation AnalysisOperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	input, err := createInput(contents)
	if err != nil {
		return fmt.Errorf("failed to create input from file contents: %w", err)
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
