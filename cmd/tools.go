package cmd

import (
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/openai/openai-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/a2a-foundry/pkg/assets"
	"github.com/theapemachine/a2a-foundry/pkg/foundry"
	"github.com/theapemachine/a2a-foundry/pkg/tools"
	"github.com/theapemachine/a2a-foundry/pkg/tools/remote"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Bridge a function tool to a file search agent over A2A",
	Long:  longTools,
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

		return runTools(cmd.Context(), cfg, credential, cmd.OutOrStdout())
	},
}

func runTools(
	ctx context.Context, cfg *settings, credential azcore.TokenCredential, out io.Writer,
) (err error) {
	client, err := foundry.NewClient(cfg.Foundry, credential)

	if err != nil {
		return err
	}

	a2aAgents, err := newRemoteAgents(cfg, client.CredentialScopes(), credential)

	if err != nil {
		return err
	}

	p := newPrinter(out)
	resources := &cleanup{}
	defer finish(ctx, resources, &err)

	asset, err := assets.NewLoader(cfg.S3).Open(ctx, cfg.AssetPath)

	if err != nil {
		return err
	}

	defer asset.Close()

	file, err := client.UploadFileAndPoll(ctx, asset.Name, asset)

	if err != nil {
		return err
	}

	p.field("Uploaded file, file ID", file.ID)
	resources.push("file "+file.ID, func(ctx context.Context) error {
		if err := client.DeleteFile(ctx, file.ID); err != nil {
			return err
		}

		p.done("Deleted file")
		return nil
	})

	store, err := client.CreateVectorStoreAndPoll(ctx, cfg.VectorStore, []string{file.ID})

	if err != nil {
		return err
	}

	p.field("Created vector store, vector store ID", store.ID)
	resources.push("vector store "+store.ID, func(ctx context.Context) error {
		if err := client.DeleteVectorStore(ctx, store.ID); err != nil {
			return err
		}

		p.done("Deleted vector store")
		return nil
	})

	searchAgent, err := client.CreateAgent(ctx, foundry.AgentParams{
		Model:          cfg.Model,
		Name:           cfg.Search.Name,
		Instructions:   cfg.Search.Instructions,
		VectorStoreIDs: []string{store.ID},
	})

	if err != nil {
		return err
	}

	p.field("Created agent for file search, agent ID", searchAgent.ID)
	resources.push("agent "+searchAgent.ID, deleteAgent(client, p, searchAgent.ID))

	toolset, err := tools.NewToolset(
		remote.NewAgentTool(client.A2AURL(searchAgent.ID), a2aAgents.auth, a2aAgents.options...),
	)

	if err != nil {
		return err
	}

	client.EnableAutoFunctionCalls(toolset)

	agent, err := client.CreateAgent(ctx, foundry.AgentParams{
		Model:        cfg.Model,
		Name:         cfg.Router.Name,
		Instructions: cfg.Router.Instructions,
		Toolset:      toolset,
	})

	if err != nil {
		return err
	}

	p.field("Created agent, agent ID", agent.ID)
	resources.push("agent "+agent.ID, deleteAgent(client, p, agent.ID))

	thread, err := client.CreateThread(ctx)

	if err != nil {
		return err
	}

	p.field("Created thread, ID", thread.ID)
	resources.push("thread "+thread.ID, func(ctx context.Context) error {
		if err := client.DeleteThread(ctx, thread.ID); err != nil {
			return err
		}

		p.done("Deleted thread")
		return nil
	})

	message, err := client.CreateMessage(ctx, thread.ID, openai.BetaThreadMessageNewParamsRoleUser, cfg.Router.Prompt)

	if err != nil {
		return err
	}

	p.field("Created message, ID", message.ID)

	run, err := client.CreateAndProcessRun(ctx, thread.ID, agent.ID)

	if err != nil {
		return err
	}

	p.field("Run finished with status", string(run.Status))

	if run.Status == openai.RunStatusFailed {
		// "Rate limit is exceeded." here means the deployment needs more quota.
		p.fail("Run failed", foundry.RunError(run))
	}

	messages, err := client.ListMessages(ctx, thread.ID, openai.BetaThreadMessageListParamsOrderAsc)

	if err != nil {
		return err
	}

	for _, msg := range messages {
		if msg.Text != "" {
			p.message(msg.Role, msg.Text)
		}
	}

	return nil
}

func deleteAgent(client *foundry.Client, p *printer, agentID string) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.DeleteAgent(ctx, agentID); err != nil {
			return err
		}

		p.done("Deleted agent")
		return nil
	}
}

var longTools = `
Uploads a reference file, indexes it in a vector store and creates a file
search agent over it. A second agent gets a get_a2a_response function tool
that forwards questions to the file search agent over A2A. One conversation
runs against the second agent with function calls served automatically, the
thread is printed and every created resource is deleted.
`
