/*
Package auth attaches bearer tokens to outgoing requests.

A TokenAuth holds the authorization scopes of the target service and up to
two token providers: a blocking azcore.TokenCredential, used by the net/http
transport, and an AsyncTokenCredential, used by the fiber client request
hook. Each path only works when its provider was supplied.
*/
package auth

import (
	"context"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/charmbracelet/log"
	fiberClient "github.com/gofiber/fiber/v3/client"
	"github.com/theapemachine/a2a-foundry/pkg/errors"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

/*
TokenAuth is the bearer token authenticator shared by every client in this
module.
*/
type TokenAuth struct {
	scopes          []string
	credential      azcore.TokenCredential
	asyncCredential AsyncTokenCredential
	base            http.RoundTripper
}

type TokenAuthOption func(*TokenAuth)

func NewTokenAuth(scopes []string, options ...TokenAuthOption) *TokenAuth {
	auth := &TokenAuth{
		scopes: scopes,
		base:   http.DefaultTransport,
	}

	for _, option := range options {
		option(auth)
	}

	return auth
}

/*
WithCredential supplies the provider for the synchronous path.
*/
func WithCredential(credential azcore.TokenCredential) TokenAuthOption {
	return func(auth *TokenAuth) {
		auth.credential = credential
	}
}

/*
WithAsyncCredential supplies the provider for the asynchronous path.
*/
func WithAsyncCredential(credential AsyncTokenCredential) TokenAuthOption {
	return func(auth *TokenAuth) {
		auth.asyncCredential = credential
	}
}

/*
WithBaseTransport replaces the transport the synchronous path delegates to.
*/
func WithBaseTransport(base http.RoundTripper) TokenAuthOption {
	return func(auth *TokenAuth) {
		auth.base = base
	}
}

/*
Token fetches a token for the first scope through the synchronous provider.
*/
func (auth *TokenAuth) Token(ctx context.Context) (string, error) {
	if auth.credential == nil {
		return "", errors.NewErrMissingCredential("synchronous")
	}

	options, err := auth.tokenRequest()

	if err != nil {
		return "", err
	}

	token, err := auth.credential.GetToken(ctx, options)

	if err != nil {
		return "", err
	}

	return token.Token, nil
}

/*
TokenAsync starts the fetch through the asynchronous provider and waits for
it to resolve, or for ctx to end.
*/
func (auth *TokenAuth) TokenAsync(ctx context.Context) (string, error) {
	if auth.asyncCredential == nil {
		return "", errors.NewErrMissingCredential("asynchronous")
	}

	options, err := auth.tokenRequest()

	if err != nil {
		return "", err
	}

	select {
	case result := <-auth.asyncCredential.GetTokenAsync(ctx, options):
		if result.Err != nil {
			return "", result.Err
		}

		return result.Token.Token, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

/*
RoundTrip implements http.RoundTripper. The request is cloned before the
header is set, the caller's request is never modified.
*/
func (auth *TokenAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := auth.Token(req.Context())

	if err != nil {
		closeBody(req)
		return nil, err
	}

	authed := req.Clone(req.Context())
	authed.Header.Set(headerAuthorization, bearerPrefix+token)

	return auth.base.RoundTrip(authed)
}

/*
HTTPClient returns a net/http client that authenticates every request.
*/
func (auth *TokenAuth) HTTPClient() *http.Client {
	return &http.Client{Transport: auth}
}

/*
RequestHook is a fiber client request hook for the asynchronous path.
*/
func (auth *TokenAuth) RequestHook(_ *fiberClient.Client, req *fiberClient.Request) error {
	token, err := auth.TokenAsync(req.Context())

	if err != nil {
		log.Error("failed to authorize request", "url", req.URL(), "error", err)
		return err
	}

	req.SetHeader(headerAuthorization, bearerPrefix+token)
	return nil
}

func (auth *TokenAuth) tokenRequest() (policy.TokenRequestOptions, error) {
	if len(auth.scopes) == 0 {
		return policy.TokenRequestOptions{}, errors.NewErrMissingConfig("foundry.scopes", "")
	}

	// Only the first scope is ever requested.
	return policy.TokenRequestOptions{Scopes: auth.scopes[:1]}, nil
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		req.Body.Close()
	}
}
