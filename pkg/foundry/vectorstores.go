package foundry

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
)

/*
CreateVectorStoreAndPoll creates a vector store over already uploaded files
and waits until indexing completes.
*/
func (client *Client) CreateVectorStoreAndPoll(
	ctx context.Context, name string, fileIDs []string,
) (*openai.VectorStore, error) {
	store, err := client.conn.VectorStores.New(ctx, openai.VectorStoreNewParams{
		Name:    openai.String(name),
		FileIDs: fileIDs,
	})

	if err != nil {
		return nil, fmt.Errorf("create vector store %s: %w", name, err)
	}

	log.Debug("created vector store", "id", store.ID, "status", store.Status)

	return poll(ctx, client.cfg.PollInterval, func(ctx context.Context) (*openai.VectorStore, bool, error) {
		if done, err := vectorStoreDone(store); done || err != nil {
			return store, true, err
		}

		next, err := client.conn.VectorStores.Get(ctx, store.ID)

		if err != nil {
			return store, true, fmt.Errorf("poll vector store %s: %w", store.ID, err)
		}

		store = next
		done, err := vectorStoreDone(store)
		return store, done, err
	})
}

func vectorStoreDone(store *openai.VectorStore) (bool, error) {
	switch store.Status {
	case openai.VectorStoreStatusCompleted:
		return true, nil
	case openai.VectorStoreStatusExpired:
		return true, fmt.Errorf("vector store %s expired before indexing completed", store.ID)
	}

	return false, nil
}

func (client *Client) DeleteVectorStore(ctx context.Context, vectorStoreID string) error {
	if _, err := client.conn.VectorStores.Delete(ctx, vectorStoreID); err != nil {
		return fmt.Errorf("delete vector store %s: %w", vectorStoreID, err)
	}

	return nil
}
