package cmd

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/theapemachine/a2a-foundry/pkg/assets"
	"github.com/theapemachine/a2a-foundry/pkg/auth"
	"github.com/theapemachine/a2a-foundry/pkg/errors"
)

func newEmbeddedViper(t *testing.T) *viper.Viper {
	buf, err := embedded.ReadFile("cfg/config.yml")

	if err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(strings.NewReader(string(buf))); err != nil {
		t.Fatal(err)
	}

	bindEnv(v)
	return v
}

func TestLoadSettings(t *testing.T) {
	Convey("Given the embedded default config", t, func() {
		t.Setenv("PROJECT_ENDPOINT", "")
		t.Setenv("MODEL_DEPLOYMENT_NAME", "")
		v := newEmbeddedViper(t)

		Convey("When PROJECT_ENDPOINT is not set", func() {
			_, err := loadSettings(v)

			Convey("Then loading fails naming the variable", func() {
				var missing *errors.ErrMissingConfig
				So(stderrors.As(err, &missing), ShouldBeTrue)
				So(missing.Env, ShouldEqual, "PROJECT_ENDPOINT")
			})
		})

		Convey("When only the endpoint is set", func() {
			t.Setenv("PROJECT_ENDPOINT", "https://example.services.ai.azure.com/api/projects/p1")
			_, err := loadSettings(v)

			Convey("Then the model deployment is still required", func() {
				var missing *errors.ErrMissingConfig
				So(stderrors.As(err, &missing), ShouldBeTrue)
				So(missing.Env, ShouldEqual, "MODEL_DEPLOYMENT_NAME")
			})
		})

		Convey("When both variables are set", func() {
			t.Setenv("PROJECT_ENDPOINT", "https://example.services.ai.azure.com/api/projects/p1")
			t.Setenv("MODEL_DEPLOYMENT_NAME", "gpt-4o")
			cfg, err := loadSettings(v)
			So(err, ShouldBeNil)

			Convey("Then the environment and the defaults are combined", func() {
				So(cfg.Foundry.Endpoint, ShouldEqual, "https://example.services.ai.azure.com/api/projects/p1")
				So(cfg.Model, ShouldEqual, "gpt-4o")
				So(cfg.Foundry.APIVersion, ShouldEqual, "2025-05-15-preview")
				So(cfg.Foundry.Scopes, ShouldResemble, []string{"https://ai.azure.com/.default"})
				So(cfg.Foundry.PollInterval, ShouldEqual, time.Second)
				So(cfg.A2ATimeout, ShouldEqual, time.Minute)
				So(cfg.AssetPath, ShouldEqual, assets.DefaultPath)
				So(cfg.VectorStore, ShouldEqual, "my_vectorstore")
				So(cfg.Basic.Instructions, ShouldEqual, "You are helpful agent")
				So(cfg.Basic.Prompt, ShouldEqual, "Hello, tell me a joke")
				So(cfg.Router.Prompt, ShouldEqual, "Hello, what Contoso products do you know?")
				So(cfg.Router.Instructions, ShouldStartWith, "Hello, you are helpful agent. When asked about Contoso project")
			})
		})
	})
}

func TestSettingsCredential(t *testing.T) {
	Convey("Given a configured pre-issued token", t, func() {
		cfg := &settings{Token: "not-a-jwt"}

		Convey("Then it is parsed as a JWT", func() {
			_, err := cfg.credential()
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a pre-issued token that has already expired", t, func() {
		cfg := &settings{Token: signedToken(t, time.Now().Add(-time.Minute))}

		Convey("Then it is refused before any client is built", func() {
			credential, err := cfg.credential()
			So(credential, ShouldBeNil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "foundry.token expired")
		})
	})

	Convey("Given a valid pre-issued token", t, func() {
		cfg := &settings{Token: signedToken(t, time.Now().Add(time.Hour))}

		Convey("Then a static credential is used", func() {
			credential, err := cfg.credential()
			So(err, ShouldBeNil)
			_, ok := credential.(*auth.StaticCredential)
			So(ok, ShouldBeTrue)
		})
	})
}
