package oss

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	key := objectKey("/tmp/upload/Clip.MP4", now)
	assert.True(t, strings.HasPrefix(key, "2026/03/09/"))
	assert.True(t, strings.HasSuffix(key, ".mp4"))
	assert.NotEqual(t, key, objectKey("/tmp/upload/Clip.MP4", now))
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://cdn:9000/vidtube/a/b.png", objectURL("http://cdn:9000/", "vidtube", "a/b.png"))
	assert.Equal(t, "https://s3.local", publicBaseURL(Config{Endpoint: "s3.local", UseSSL: true}))
	assert.Equal(t, "http://public", publicBaseURL(Config{Endpoint: "s3.local", PublicBaseURL: "http://public"}))
}

func TestEmptyInputsFailWithoutNetwork(t *testing.T) {
	store := &MinioStore{breaker: newBreaker()}
	asset, ok := store.Upload(context.Background(), "")
	assert.Nil(t, asset)
	assert.False(t, ok)
	assert.False(t, store.Delete(context.Background(), ""))
}
