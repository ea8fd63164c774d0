package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/theapemachine/a2a-foundry/pkg/errors"
)

/*
TokenResult is what an AsyncTokenCredential resolves to.
*/
type TokenResult struct {
	Token azcore.AccessToken
	Err   error
}

/*
AsyncTokenCredential starts a token fetch and returns immediately. The
returned channel receives exactly one result.
*/
type AsyncTokenCredential interface {
	GetTokenAsync(ctx context.Context, options policy.TokenRequestOptions) <-chan TokenResult
}

type asyncCredential struct {
	credential azcore.TokenCredential
}

/*
Async runs a blocking credential on its own goroutine. A nil credential
gives a nil AsyncTokenCredential, so the asynchronous path reports it as
missing.
*/
func Async(credential azcore.TokenCredential) AsyncTokenCredential {
	if credential == nil {
		return nil
	}

	return &asyncCredential{credential: credential}
}

func (async *asyncCredential) GetTokenAsync(
	ctx context.Context, options policy.TokenRequestOptions,
) <-chan TokenResult {
	out := make(chan TokenResult, 1)

	if async.credential == nil {
		out <- TokenResult{Err: errors.NewErrMissingCredential("asynchronous")}
		close(out)
		return out
	}

	go func() {
		defer close(out)
		token, err := async.credential.GetToken(ctx, options)
		out <- TokenResult{Token: token, Err: err}
	}()

	return out
}

/*
NewDefaultCredential returns the azidentity default credential chain:
environment, workload identity, managed identity, Azure CLI and Azure
Developer CLI, in that order.
*/
func NewDefaultCredential() (azcore.TokenCredential, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)

	if err != nil {
		return nil, fmt.Errorf("failed to create default credential: %w", err)
	}

	return credential, nil
}

/*
StaticCredential serves a bearer token that was issued ahead of time, for
example by `az account get-access-token`. The token is never refreshed.
*/
type StaticCredential struct {
	token     string
	expiresOn time.Time
}

/*
NewStaticCredential reads the expiry from the token's exp claim. The
signature is not verified, the token is only forwarded.
*/
func NewStaticCredential(token string) (*StaticCredential, error) {
	claims := jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("static token is not a JWT: %w", err)
	}

	credential := &StaticCredential{token: token}

	if claims.ExpiresAt != nil {
		credential.expiresOn = claims.ExpiresAt.Time
	}

	return credential, nil
}

func (credential *StaticCredential) ExpiresOn() time.Time {
	return credential.expiresOn
}

/*
Expired reports whether the exp claim has passed. A token without exp
never expires here.
*/
func (credential *StaticCredential) Expired() bool {
	return !credential.expiresOn.IsZero() && time.Now().After(credential.expiresOn)
}

func (credential *StaticCredential) GetToken(
	_ context.Context, _ policy.TokenRequestOptions,
) (azcore.AccessToken, error) {
	if credential.Expired() {
		return azcore.AccessToken{}, fmt.Errorf(
			"static token expired at %s", credential.expiresOn.Format(time.RFC3339),
		)
	}

	return azcore.AccessToken{
		Token:     credential.token,
		ExpiresOn: credential.expiresOn,
	}, nil
}
