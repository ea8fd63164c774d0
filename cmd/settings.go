package cmd

import (
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/spf13/viper"
	"github.com/theapemachine/a2a-foundry/pkg/assets"
	"github.com/theapemachine/a2a-foundry/pkg/auth"
	"github.com/theapemachine/a2a-foundry/pkg/errors"
	"github.com/theapemachine/a2a-foundry/pkg/foundry"
)

type agentSettings struct {
	Name         string
	Instructions string
	Prompt       string
}

/*
settings is everything a scenario reads from viper, resolved once up front
so a missing value fails before any resource is created.
*/
type settings struct {
	Foundry      foundry.Config
	Model        string
	Token        string
	A2ATimeout   time.Duration
	RateRequests int64
	RateInterval time.Duration
	AssetPath    string
	S3           assets.S3Config
	VectorStore  string
	Basic        agentSettings
	Search       agentSettings
	Router       agentSettings
}

func loadSettings(v *viper.Viper) (*settings, error) {
	out := &settings{
		Foundry: foundry.Config{
			Endpoint:     v.GetString("foundry.endpoint"),
			APIVersion:   v.GetString("foundry.apiVersion"),
			Scopes:       v.GetStringSlice("foundry.scopes"),
			PollInterval: v.GetDuration("foundry.pollInterval"),
		},
		Model:        v.GetString("foundry.model"),
		Token:        v.GetString("foundry.token"),
		A2ATimeout:   v.GetDuration("a2a.timeout"),
		RateRequests: v.GetInt64("a2a.rateLimit.requests"),
		RateInterval: v.GetDuration("a2a.rateLimit.interval"),
		AssetPath:    v.GetString("assets.path"),
		S3: assets.S3Config{
			Endpoint:  v.GetString("assets.s3.endpoint"),
			AccessKey: v.GetString("assets.s3.accessKey"),
			SecretKey: v.GetString("assets.s3.secretKey"),
			Region:    v.GetString("assets.s3.region"),
			UseSSL:    v.GetBool("assets.s3.useSSL"),
		},
		VectorStore: v.GetString("agents.search.vectorStore"),
		Basic:       agentSettingsAt(v, "agents.basic"),
		Search:      agentSettingsAt(v, "agents.search"),
		Router:      agentSettingsAt(v, "agents.router"),
	}

	if out.Foundry.Endpoint == "" {
		return nil, errors.NewErrMissingConfig("foundry.endpoint", "PROJECT_ENDPOINT")
	}

	if out.Model == "" {
		return nil, errors.NewErrMissingConfig("foundry.model", "MODEL_DEPLOYMENT_NAME")
	}

	if out.AssetPath == "" {
		out.AssetPath = assets.DefaultPath
	}

	return out, nil
}

func agentSettingsAt(v *viper.Viper, key string) agentSettings {
	return agentSettings{
		Name:         v.GetString(key + ".name"),
		Instructions: v.GetString(key + ".instructions"),
		Prompt:       v.GetString(key + ".prompt"),
	}
}

/*
credential picks the pre-issued token when one is configured, the default
Azure credential chain otherwise.
*/
func (cfg *settings) credential() (azcore.TokenCredential, error) {
	if cfg.Token != "" {
		credential, err := auth.NewStaticCredential(cfg.Token)

		if err != nil {
			return nil, err
		}

		if credential.Expired() {
			return nil, fmt.Errorf(
				"foundry.token expired at %s", credential.ExpiresOn().Format(time.RFC3339),
			)
		}

		return credential, nil
	}

	return auth.NewDefaultCredential()
}
