package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/pkg/seed"
	"github.com/raywall/storefront/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memoryConfig = `
service:
  name: cli-test
  runtime: local
  port: 8080
logging:
  enabled: false
store:
  backend: memory
`

const seedJSON = `[
  {"PK": "USER#u1", "SK": "PROFILE", "userId": "u1", "userName": "Ana"},
  {"PK": "PRODUCT#p1", "SK": "METADATA", "productId": "p1", "name": "Widget", "price": 9.99, "amountInStock": 5}
]`

type stubS3 struct{ body string }

func (s stubS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(s.body))}, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunValidate_HappyPath(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"validate", "-config", writeFile(t, "config.yaml", memoryConfig)}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "configuration valid: service cli-test")
}

func TestRunValidate_JSON(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "json")
	var out bytes.Buffer
	err := run(context.Background(), []string{"validate", "-config", writeFile(t, "config.yaml", memoryConfig)}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"valid":true`)
}

func TestRunValidate_Invalid(t *testing.T) {
	bad := strings.Replace(memoryConfig, "runtime: local", "runtime: lambda", 1)
	err := run(context.Background(), []string{"validate", "-config", writeFile(t, "config.yaml", bad)}, io.Discard)
	assert.ErrorContains(t, err, "memory")
}

func TestRunReset_LocalFile(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{
		"reset",
		"-config", writeFile(t, "config.yaml", memoryConfig),
		"-source", writeFile(t, "seed.json", seedJSON),
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0 records deleted, 2 written")
}

func TestRunReset_S3(t *testing.T) {
	original := newS3Client
	newS3Client = func(ctx context.Context, region string) (seed.S3Downloader, error) {
		return stubS3{body: seedJSON}, nil
	}
	defer func() { newS3Client = original }()

	var out bytes.Buffer
	err := run(context.Background(), []string{
		"reset",
		"-config", writeFile(t, "config.yaml", memoryConfig),
		"-source", "s3://seeds/seed.json",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "2 written")
}

func TestRunReset_NeedsSource(t *testing.T) {
	t.Setenv("SEED_SOURCE", "")
	err := run(context.Background(), []string{"reset", "-config", writeFile(t, "config.yaml", memoryConfig)}, io.Discard)
	assert.ErrorContains(t, err, "-source is required")
}

func TestCleanup(t *testing.T) {
	table := dyndb.NewMemoryTable()
	require.NoError(t, table.Put(context.Background(), dyndb.KeyAttributes(keys.CartKey("broken"))))

	var out bytes.Buffer
	require.NoError(t, cleanup(context.Background(), shop.New(table, nil), &out))
	assert.Contains(t, out.String(), "deleted CART#broken/CART#broken")
	assert.Contains(t, out.String(), "1 invalid cart records removed")
	assert.Zero(t, table.Len())
}

func TestRun_UnknownCommand(t *testing.T) {
	assert.ErrorContains(t, run(context.Background(), nil, io.Discard), "usage")
	err := run(context.Background(), []string{"migrate", "-config", writeFile(t, "config.yaml", memoryConfig)}, io.Discard)
	assert.ErrorContains(t, err, `unknown command "migrate"`)
}

func TestRunCleanup_EmptyTable(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"cleanup", "-config", writeFile(t, "config.yaml", memoryConfig)}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0 invalid cart records removed")
}
