/*
Package foundry talks to the hosted agent service. The service speaks the
assistants REST dialect, so the openai-go client does the wire work, pointed
at the project endpoint and authenticated through auth.TokenAuth.
*/
package foundry

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/theapemachine/a2a-foundry/pkg/auth"
	"github.com/theapemachine/a2a-foundry/pkg/errors"
	"github.com/theapemachine/a2a-foundry/pkg/tools"
)

type Client struct {
	cfg     Config
	auth    *auth.TokenAuth
	conn    openai.Client
	toolset *tools.Toolset

	maxToolRetry int
}

type ClientOption func(*clientOptions)

type clientOptions struct {
	authOptions    []auth.TokenAuthOption
	requestOptions []option.RequestOption
}

/*
WithTokenAuthOptions is passed on to the TokenAuth guarding every call.
*/
func WithTokenAuthOptions(options ...auth.TokenAuthOption) ClientOption {
	return func(opts *clientOptions) {
		opts.authOptions = append(opts.authOptions, options...)
	}
}

func WithRequestOptions(options ...option.RequestOption) ClientOption {
	return func(opts *clientOptions) {
		opts.requestOptions = append(opts.requestOptions, options...)
	}
}

/*
NewClient builds an agent service client. The credential serves the
synchronous token path for the first configured scope.
*/
func NewClient(
	cfg Config, credential azcore.TokenCredential, options ...ClientOption,
) (*Client, error) {
	cfg, err := cfg.validate()

	if err != nil {
		return nil, err
	}

	// Token errors surface from the transport, where openai-go would retry
	// them as connection failures.
	if credential == nil {
		return nil, errors.NewErrMissingCredential("synchronous")
	}

	opts := &clientOptions{}

	for _, opt := range options {
		opt(opts)
	}

	tokenAuth := auth.NewTokenAuth(
		cfg.Scopes,
		append([]auth.TokenAuthOption{auth.WithCredential(credential)}, opts.authOptions...)...,
	)

	requestOptions := append([]option.RequestOption{
		option.WithBaseURL(cfg.Endpoint + "/"),
		option.WithQuery("api-version", cfg.APIVersion),
		option.WithHTTPClient(tokenAuth.HTTPClient()),
	}, opts.requestOptions...)

	return &Client{
		cfg:  cfg,
		auth: tokenAuth,
		conn: openai.NewClient(requestOptions...),
	}, nil
}

func (client *Client) CredentialScopes() []string {
	return client.cfg.Scopes
}

func (client *Client) APIVersion() string {
	return client.cfg.APIVersion
}

func (client *Client) Endpoint() string {
	return client.cfg.Endpoint
}

/*
A2AURL is where the service exposes an agent over A2A.
*/
func (client *Client) A2AURL(agentID string) string {
	return fmt.Sprintf(
		"%s/workflows/a2a/agents/%s?api-version=%s",
		client.cfg.Endpoint, url.PathEscape(agentID), url.QueryEscape(client.cfg.APIVersion),
	)
}

/*
poll calls fetch every interval until it reports done, fails, or ctx ends.
fetch is called once right away.
*/
func poll[T any](
	ctx context.Context, interval time.Duration, fetch func(context.Context) (T, bool, error),
) (T, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		value, done, err := fetch(ctx)

		if err != nil || done {
			return value, err
		}

		select {
		case <-ctx.Done():
			return value, ctx.Err()
		case <-ticker.C:
		}
	}
}
