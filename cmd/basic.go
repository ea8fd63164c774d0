package cmd

import (
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/a2a-foundry/pkg/a2a"
	"github.com/theapemachine/a2a-foundry/pkg/foundry"
)

var basicCmd = &cobra.Command{
	Use:   "basic",
	Short: "Create an agent and talk to it over A2A",
	Long:  longBasic,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSettings(viper.GetViper())

		if err != nil {
			return err
		}

		credential, err := cfg.credential()

		if err != nil {
			return err
		}

		return runBasic(cmd.Context(), cfg, credential, cmd.OutOrStdout())
	},
}

func runBasic(
	ctx context.Context, cfg *settings, credential azcore.TokenCredential, out io.Writer,
) (err error) {
	client, err := foundry.NewClient(cfg.Foundry, credential)

	if err != nil {
		return err
	}

	remote, err := newRemoteAgents(cfg, client.CredentialScopes(), credential)

	if err != nil {
		return err
	}

	p := newPrinter(out)
	resources := &cleanup{}
	defer finish(ctx, resources, &err)

	agent, err := client.CreateAgent(ctx, foundry.AgentParams{
		Model:        cfg.Model,
		Name:         cfg.Basic.Name,
		Instructions: cfg.Basic.Instructions,
	})

	if err != nil {
		return err
	}

	p.field("Created agent, agent ID", agent.ID)
	resources.push("agent "+agent.ID, deleteAgent(client, p, agent.ID))

	agentURL := client.A2AURL(agent.ID)
	log.Debug("calling agent over a2a", "url", agentURL)

	res, err := remote.client(agentURL).SendMessage(
		ctx, a2a.NewSendMessageRequest(a2a.NewTextMessage(a2a.RoleUser, cfg.Basic.Prompt)),
	)

	if err != nil {
		return err
	}

	dump, err := res.Dump()

	if err != nil {
		return err
	}

	p.block(dump)

	if res.Result.Task != nil {
		p.block(res.Result.Task.String())
	}
	return nil
}

var longBasic = `
Creates an agent, sends it one message over the A2A protocol with a bearer
authenticated client, prints the A2A response and deletes the agent.
`
