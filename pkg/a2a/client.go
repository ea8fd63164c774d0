package a2a

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	fiberClient "github.com/gofiber/fiber/v3/client"
	"github.com/theapemachine/a2a-foundry/pkg/auth"
	"github.com/theapemachine/a2a-foundry/pkg/errors"
	"github.com/theapemachine/a2a-foundry/pkg/jsonrpc"
)

/*
Client represents an A2A protocol client bound to one agent URL. The URL is
used as is, query included, so it can carry the service's api-version.
*/
type Client struct {
	agentURL string
	conn     *fiberClient.Client
	limiter  *auth.RateLimiter
}

type ClientOption func(*Client)

/*
WithAuth authenticates every call through the asynchronous token path.
*/
func WithAuth(tokenAuth *auth.TokenAuth) ClientOption {
	return func(client *Client) {
		client.conn.AddRequestHook(tokenAuth.RequestHook)
	}
}

/*
WithRateLimiter makes each call wait for a token before it is sent.
*/
func WithRateLimiter(limiter *auth.RateLimiter) ClientOption {
	return func(client *Client) {
		client.limiter = limiter
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		client.conn.SetTimeout(timeout)
	}
}

/*
NewClient creates a new A2A client.
*/
func NewClient(agentURL string, options ...ClientOption) *Client {
	client := &Client{
		agentURL: agentURL,
		conn:     fiberClient.New(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

/*
SendMessage sends a message to the agent and returns the task or message it
answered with.
*/
func (client *Client) SendMessage(
	ctx context.Context, req SendMessageRequest,
) (*SendMessageResponse, error) {
	rpcReq, err := jsonrpc.NewRequest("message/send", req.Params)

	if err != nil {
		return nil, err
	}

	if req.ID != "" {
		rpcReq.ID = req.ID
	}

	res, err := client.doRequest(ctx, rpcReq)

	if err != nil {
		return nil, err
	}

	out := &SendMessageResponse{JSONRPC: res.JSONRPC, ID: res.ID}

	if err := res.Decode(&out.Result); err != nil {
		return nil, err
	}

	return out, nil
}

/*
GetTask retrieves the current state of a task.
*/
func (client *Client) GetTask(ctx context.Context, params TaskQueryParams) (*Task, error) {
	return client.taskCall(ctx, "tasks/get", params)
}

/*
CancelTask cancels a task.
*/
func (client *Client) CancelTask(ctx context.Context, params TaskIDParams) (*Task, error) {
	return client.taskCall(ctx, "tasks/cancel", params)
}

func (client *Client) taskCall(ctx context.Context, method string, params any) (*Task, error) {
	rpcReq, err := jsonrpc.NewRequest(method, params)

	if err != nil {
		return nil, err
	}

	res, err := client.doRequest(ctx, rpcReq)

	if err != nil {
		return nil, err
	}

	task := &Task{}

	if err := res.Decode(task); err != nil {
		return nil, err
	}

	return task, nil
}

/*
doRequest is a helper method to send a JSON-RPC request and return a
jsonrpc.Response.
*/
func (client *Client) doRequest(ctx context.Context, req jsonrpc.Request) (*jsonrpc.Response, error) {
	if client.limiter != nil {
		if err := client.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	log.Debug("a2a request", "method", req.Method, "id", req.ID, "url", client.agentURL)

	res, err := client.conn.Post(
		client.agentURL,
		fiberClient.Config{
			Ctx:  ctx,
			Body: req,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("a2a %s: %w", req.Method, err)
	}

	defer res.Close()

	switch res.StatusCode() {
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("a2a %s: unauthorized (401), check the credential and scopes", req.Method)
	case http.StatusForbidden:
		return nil, fmt.Errorf("a2a %s: forbidden (403), the identity has no access to this agent", req.Method)
	}

	out := &jsonrpc.Response{}

	if err := res.JSON(out); err != nil {
		return nil, errors.NewError(
			fmt.Errorf("a2a %s: unexpected %d response: %w", req.Method, res.StatusCode(), err),
		)
	}

	return out, nil
}
