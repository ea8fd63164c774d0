package cmd

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/theapemachine/a2a-foundry/pkg/a2a"
	"github.com/theapemachine/a2a-foundry/pkg/auth"
)

/*
remoteAgents holds what every A2A call of a scenario shares: the token auth
on the asynchronous path and the client options. The rate limiter is shared
too, so the bound holds across calls.
*/
type remoteAgents struct {
	auth    *auth.TokenAuth
	options []a2a.ClientOption
}

func newRemoteAgents(
	cfg *settings, scopes []string, credential azcore.TokenCredential,
) (*remoteAgents, error) {
	remote := &remoteAgents{
		auth: auth.NewTokenAuth(scopes, auth.WithAsyncCredential(auth.Async(credential))),
	}

	if cfg.A2ATimeout > 0 {
		remote.options = append(remote.options, a2a.WithTimeout(cfg.A2ATimeout))
	}

	if cfg.RateRequests > 0 {
		limiter, err := auth.NewRateLimiter(cfg.RateRequests, cfg.RateInterval)

		if err != nil {
			return nil, err
		}

		remote.options = append(remote.options, a2a.WithRateLimiter(limiter))
	}

	return remote, nil
}

func (remote *remoteAgents) client(agentURL string) *a2a.Client {
	return a2a.NewClient(agentURL, append([]a2a.ClientOption{a2a.WithAuth(remote.auth)}, remote.options...)...)
}
