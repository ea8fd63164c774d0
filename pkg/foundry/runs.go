package foundry

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/theapemachine/a2a-foundry/pkg/tools"
)

// DefaultMaxToolRetry is how many rounds of failing tool outputs a run gets.
const DefaultMaxToolRetry = 10

type AutoCallOption func(*Client)

/*
WithMaxToolRetry bounds the rounds in which a tool output is an error. The
round after the last one cancels the run. Zero cancels on the first error.
*/
func WithMaxToolRetry(rounds int) AutoCallOption {
	return func(client *Client) {
		client.maxToolRetry = max(rounds, 0)
	}
}

/*
EnableAutoFunctionCalls makes CreateAndProcessRun serve function calls from
the toolset instead of stopping at them.
*/
func (client *Client) EnableAutoFunctionCalls(toolset *tools.Toolset, options ...AutoCallOption) {
	client.toolset = toolset
	client.maxToolRetry = DefaultMaxToolRetry

	for _, option := range options {
		option(client)
	}
}

/*
CreateAndProcessRun starts a run of the agent on the thread and drives it to
a terminal status. A failed run is not an error here, its status and last
error are on the returned run.
*/
func (client *Client) CreateAndProcessRun(
	ctx context.Context, threadID, agentID string,
) (*openai.Run, error) {
	run, err := client.conn.Beta.Threads.Runs.New(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: agentID,
	})

	if err != nil {
		return nil, fmt.Errorf("create run on %s: %w", threadID, err)
	}

	failedRounds := 0

	return poll(ctx, client.cfg.PollInterval, func(ctx context.Context) (*openai.Run, bool, error) {
		log.Debug("run status", "id", run.ID, "status", run.Status)

		switch run.Status {
		case openai.RunStatusQueued, openai.RunStatusInProgress, openai.RunStatusCancelling:
			next, err := client.conn.Beta.Threads.Runs.Get(ctx, threadID, run.ID)

			if err != nil {
				return run, true, fmt.Errorf("poll run %s: %w", run.ID, err)
			}

			run = next
			return run, false, nil
		case openai.RunStatusRequiresAction:
			next, err := client.requiredAction(ctx, threadID, run, &failedRounds)

			if err != nil {
				return run, true, err
			}

			run = next
			return run, false, nil
		}

		return run, true, nil
	})
}

/*
requiredAction serves one round of function calls. failedRounds counts the
rounds so far with at least one failing tool, across the whole run.
*/
func (client *Client) requiredAction(
	ctx context.Context, threadID string, run *openai.Run, failedRounds *int,
) (*openai.Run, error) {
	if client.toolset == nil {
		log.Warn("run requires action but no function tools are enabled, cancelling", "id", run.ID)
		return client.cancelRun(ctx, threadID, run.ID)
	}

	calls := run.RequiredAction.SubmitToolOutputs.ToolCalls

	if len(calls) == 0 {
		log.Warn("run requires action without tool calls, cancelling", "id", run.ID)
		return client.cancelRun(ctx, threadID, run.ID)
	}

	outputs := make([]openai.BetaThreadRunSubmitToolOutputsParamsToolOutput, 0, len(calls))
	failed := false

	for _, call := range calls {
		output, err := client.toolset.Execute(ctx, call.Function.Name, call.Function.Arguments)

		if err != nil {
			log.Error("function tool failed", "name", call.Function.Name, "error", err)
			output = fmt.Sprintf("Error: %v", err)
			failed = true
		}

		outputs = append(outputs, openai.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openai.String(call.ID),
			Output:     openai.String(output),
		})
	}

	if failed {
		if *failedRounds >= client.maxToolRetry {
			log.Warn("function tools keep failing, cancelling", "id", run.ID, "rounds", *failedRounds)
			return client.cancelRun(ctx, threadID, run.ID)
		}

		*failedRounds++
	}

	next, err := client.conn.Beta.Threads.Runs.SubmitToolOutputs(
		ctx, threadID, run.ID, openai.BetaThreadRunSubmitToolOutputsParams{ToolOutputs: outputs},
	)

	if err != nil {
		return nil, fmt.Errorf("submit tool outputs for run %s: %w", run.ID, err)
	}

	return next, nil
}

func (client *Client) cancelRun(ctx context.Context, threadID, runID string) (*openai.Run, error) {
	next, err := client.conn.Beta.Threads.Runs.Cancel(ctx, threadID, runID)

	if err != nil {
		return nil, fmt.Errorf("cancel run %s: %w", runID, err)
	}

	return next, nil
}

/*
RunError describes why a run did not complete, or returns nil when it did.
*/
func RunError(run *openai.Run) error {
	switch run.Status {
	case openai.RunStatusCompleted:
		return nil
	case openai.RunStatusFailed:
		return fmt.Errorf("%s: %s", run.LastError.Code, run.LastError.Message)
	}

	return fmt.Errorf("run ended %s", run.Status)
}
