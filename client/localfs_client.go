package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFSClient writes renamed files under a base directory. The directory
// is created on the first Save.
type LocalFSClient struct {
	basePath string
}

func NewLocalFSClient(basePath string) *LocalFSClient {
	if basePath == "" {
		basePath = "./renamed"
	}
	return &LocalFSClient{basePath: basePath}
}

func (c *LocalFSClient) Save(ctx context.Context, key string, data io.Reader, _ int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid file name %q", key)
	}
	if err := os.MkdirAll(c.basePath, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(c.basePath, key)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

func (c *LocalFSClient) Destination() string {
	return c.basePath
}
