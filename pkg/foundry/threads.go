package foundry

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

/*
ThreadMessage is a message reduced to what gets printed: its role and the
value of its last text block.
*/
type ThreadMessage struct {
	ID   string
	Role string
	Text string
}

func (client *Client) CreateThread(ctx context.Context) (*openai.Thread, error) {
	thread, err := client.conn.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})

	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}

	return thread, nil
}

func (client *Client) DeleteThread(ctx context.Context, threadID string) error {
	if _, err := client.conn.Beta.Threads.Delete(ctx, threadID); err != nil {
		return fmt.Errorf("delete thread %s: %w", threadID, err)
	}

	return nil
}

func (client *Client) CreateMessage(
	ctx context.Context, threadID string, role openai.BetaThreadMessageNewParamsRole, content string,
) (*openai.Message, error) {
	message, err := client.conn.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: role,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(content),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("create message on %s: %w", threadID, err)
	}

	return message, nil
}

/*
ListMessages walks every page of the thread in the given order.
*/
func (client *Client) ListMessages(
	ctx context.Context, threadID string, order openai.BetaThreadMessageListParamsOrder,
) ([]ThreadMessage, error) {
	pager := client.conn.Beta.Threads.Messages.ListAutoPaging(ctx, threadID, openai.BetaThreadMessageListParams{
		Order: order,
	})

	out := []ThreadMessage{}

	for pager.Next() {
		message := pager.Current()
		out = append(out, ThreadMessage{
			ID:   message.ID,
			Role: string(message.Role),
			Text: messageText(message),
		})
	}

	if err := pager.Err(); err != nil {
		return nil, fmt.Errorf("list messages on %s: %w", threadID, err)
	}

	return out, nil
}

func messageText(message openai.Message) string {
	text := ""

	// The last text block is the one shown for a message.
	for _, content := range message.Content {
		if content.Type == "text" {
			text = content.Text.Value
		}
	}

	return text
}
