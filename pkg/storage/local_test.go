package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/pkg/storage"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	d, err := storage.NewLocalDisk(t.TempDir(), "http://cdn.test/storage/")
	require.NoError(t, err)

	require.NoError(t, d.PutStream(ctx, "product-images/a.png", strings.NewReader("png"), "image/png"))

	ok, err := d.Exists(ctx, "product-images/a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := d.Get(ctx, "product-images/a.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "png", string(body))

	assert.Equal(t, "http://cdn.test/storage/product-images/a.png", d.URL("product-images/a.png"))

	require.NoError(t, d.Delete(ctx, "product-images/a.png"))
	require.NoError(t, d.Delete(ctx, "product-images/a.png"))
	_, err = d.Get(ctx, "product-images/a.png")
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestLocalDiskStaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := storage.NewLocalDisk(root, "http://x")
	require.NoError(t, err)

	require.NoError(t, d.PutStream(ctx, "../../escape.txt", strings.NewReader("x"), ""))
	ok, err := d.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUseUnknownDisk(t *testing.T) {
	_, err := storage.Use("ftp")
	assert.Error(t, err)
}
