package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"
)

/*
Handler runs a function tool. The request carries the decoded arguments, so
the mcp-go accessors (RequireString and friends) work on it.
*/
type Handler func(ctx context.Context, request mcp.CallToolRequest) (string, error)

/*
FunctionTool pairs a tool schema with the local code that serves it.
*/
type FunctionTool struct {
	Tool    mcp.Tool
	Handler Handler
}

/*
Toolset is an ordered registry of function tools. Definitions are handed to
the agent service, Execute serves the calls it sends back.
*/
type Toolset struct {
	tools   []FunctionTool
	schemas []map[string]any
	index   map[string]int
}

func NewToolset(tools ...FunctionTool) (*Toolset, error) {
	toolset := &Toolset{index: make(map[string]int)}

	for _, tool := range tools {
		if err := toolset.Add(tool); err != nil {
			return nil, err
		}
	}

	return toolset, nil
}

func (toolset *Toolset) Add(tool FunctionTool) error {
	if tool.Tool.Name == "" {
		return fmt.Errorf("function tool has no name")
	}

	if tool.Handler == nil {
		return fmt.Errorf("function tool %s has no handler", tool.Tool.Name)
	}

	if _, ok := toolset.index[tool.Tool.Name]; ok {
		return fmt.Errorf("function tool %s registered twice", tool.Tool.Name)
	}

	schema, err := schemaOf(tool.Tool)

	if err != nil {
		return fmt.Errorf("function tool %s: invalid input schema: %w", tool.Tool.Name, err)
	}

	toolset.index[tool.Tool.Name] = len(toolset.tools)
	toolset.tools = append(toolset.tools, tool)
	toolset.schemas = append(toolset.schemas, schema)

	return nil
}

func (toolset *Toolset) Names() []string {
	names := make([]string, 0, len(toolset.tools))

	for _, tool := range toolset.tools {
		names = append(names, tool.Tool.Name)
	}

	return names
}

/*
Definitions converts every tool schema into an agent function tool.
*/
func (toolset *Toolset) Definitions() []openai.AssistantToolUnionParam {
	out := make([]openai.AssistantToolUnionParam, 0, len(toolset.tools))

	for i, tool := range toolset.tools {
		out = append(out, openai.AssistantToolUnionParam{
			OfFunction: &openai.FunctionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        tool.Tool.Name,
					Description: openai.String(tool.Tool.Description),
					Parameters:  openai.FunctionParameters(toolset.schemas[i]),
				},
			},
		})
	}

	return out
}

/*
Execute decodes the JSON arguments of a call and runs the matching handler.
*/
func (toolset *Toolset) Execute(ctx context.Context, name, arguments string) (string, error) {
	idx, ok := toolset.index[name]

	if !ok {
		return "", fmt.Errorf("unknown function tool %s", name)
	}

	tool := toolset.tools[idx]
	args := map[string]any{}

	if strings.TrimSpace(arguments) != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("function tool %s: invalid arguments: %w", name, err)
		}
	}

	for _, required := range tool.Tool.InputSchema.Required {
		if _, ok := args[required]; !ok {
			return "", fmt.Errorf("function tool %s: missing argument %s", name, required)
		}
	}

	log.Debug("executing function tool", "name", name)

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	return tool.Handler(ctx, request)
}

func schemaOf(tool mcp.Tool) (map[string]any, error) {
	raw := []byte(tool.RawInputSchema)

	if tool.RawInputSchema == nil {
		buf, err := json.Marshal(tool.InputSchema)

		if err != nil {
			return nil, err
		}

		raw = buf
	}

	var schema map[string]any

	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}

	if schema == nil {
		return nil, fmt.Errorf("schema is not a JSON object")
	}

	return schema, nil
}
