package foundry

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
)

/*
UploadFileAndPoll uploads a file for agent use and waits until the service
has processed it.
*/
func (client *Client) UploadFileAndPoll(
	ctx context.Context, name string, content io.Reader,
) (*openai.FileObject, error) {
	contentType := mime.TypeByExtension(filepath.Ext(name))

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := client.conn.Files.New(ctx, openai.FileNewParams{
		File:    openai.File(content, filepath.Base(name), contentType),
		Purpose: openai.FilePurposeAssistants,
	})

	if err != nil {
		return nil, fmt.Errorf("upload file %s: %w", name, err)
	}

	log.Debug("uploaded file", "id", file.ID, "status", file.Status)

	return poll(ctx, client.cfg.PollInterval, func(ctx context.Context) (*openai.FileObject, bool, error) {
		if done, err := fileDone(file); done || err != nil {
			return file, true, err
		}

		next, err := client.conn.Files.Get(ctx, file.ID)

		if err != nil {
			return file, true, fmt.Errorf("poll file %s: %w", file.ID, err)
		}

		file = next
		done, err := fileDone(file)
		return file, done, err
	})
}

func fileDone(file *openai.FileObject) (bool, error) {
	switch file.Status {
	case openai.FileObjectStatusProcessed:
		return true, nil
	case openai.FileObjectStatusError:
		return true, fmt.Errorf("file %s failed processing: %s", file.ID, file.StatusDetails)
	}

	return false, nil
}

func (client *Client) DeleteFile(ctx context.Context, fileID string) error {
	if _, err := client.conn.Files.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}

	return nil
}
