package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

/*
S3Config reaches any S3 compatible object store.
*/
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

type Conn struct {
	client *minio.Client
}

func NewConn(cfg S3Config) (*Conn, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("no object store endpoint configured (assets.s3.endpoint)")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})

	if err != nil {
		return nil, err
	}

	return &Conn{client: client}, nil
}

/*
Get reads the whole object, so a missing object fails here and not on the
first read.
*/
func (conn *Conn) Get(
	ctx context.Context,
	bucketName string,
	objectKey string,
) (io.ReadCloser, error) {
	object, err := conn.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})

	if err != nil {
		return nil, err
	}

	defer object.Close()

	buf := bytes.NewBuffer([]byte{})

	if _, err := io.Copy(buf, object); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			log.Error("object does not exist", "bucket", bucketName, "key", objectKey)
		}

		return nil, err
	}

	return io.NopCloser(buf), nil
}
