package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"
)

// S3Downloader is the subset of the S3 client used to fetch seed files.
type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Read loads the raw seed document from a local path (optionally prefixed
// with file://) or from s3://bucket/key.
func Read(ctx context.Context, source string, client S3Downloader) ([]byte, error) {
	if !strings.HasPrefix(source, "s3://") {
		return os.ReadFile(strings.TrimPrefix(source, "file://"))
	}
	if client == nil {
		return nil, fmt.Errorf("seed: no S3 client for %s", source)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("seed: invalid S3 URL: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("seed: S3 source must be s3://bucket/key, got %q", source)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("seed: get %s: %w", source, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Parse decodes a seed document: a JSON array of flat records, or the same
// list written as YAML.
func Parse(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("seed: empty document")
	}

	var records []map[string]any
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("seed: malformed JSON: %w", err)
		}
		return records, nil
	}
	if err := yaml.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("seed: malformed YAML: %w", err)
	}
	return records, nil
}
