package oss

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sony/gobreaker/v2"
)

type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	breaker *gobreaker.CircuitBreaker[interface{}]
}

// Upload 上传本地临时文件 无论成功与否都会删除本地文件
// 失败时返回 (nil, false) 由调用方决定如何处理
func (m *MinioStore) Upload(ctx context.Context, localPath string) (*model.Asset, bool) {
	if localPath == "" {
		return nil, false
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s: %v", localPath, err)
		}
	}()

	objectName := objectKey(localPath, time.Now())
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.breaker.Execute(func() (interface{}, error) {
		return m.client.FPutObject(ctx, m.bucket, objectName, localPath, minio.PutObjectOptions{ContentType: contentType})
	})
	if err != nil {
		metrics.MediaOperations.WithLabelValues("upload", "error").Inc()
		hlog.CtxErrorf(ctx, "upload %s to minio failed: %v", localPath, err)
		return nil, false
	}
	metrics.MediaOperations.WithLabelValues("upload", "ok").Inc()
	return &model.Asset{ID: objectName, URL: objectURL(m.baseURL, m.bucket, objectName)}, true
}

// Delete 删除失败只记录日志
func (m *MinioStore) Delete(ctx context.Context, assetID string) bool {
	if assetID == "" {
		return false
	}
	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.client.RemoveObject(ctx, m.bucket, assetID, minio.RemoveObjectOptions{})
	})
	if err != nil {
		metrics.MediaOperations.WithLabelValues("delete", "error").Inc()
		hlog.CtxErrorf(ctx, "delete %s from minio failed: %v", assetID, err)
		return false
	}
	metrics.MediaOperations.WithLabelValues("delete", "ok").Inc()
	return true
}

func objectKey(localPath string, now time.Time) string {
	return now.Format("2006/01/02/") + uuid.NewString() + strings.ToLower(filepath.Ext(localPath))
}

func objectURL(baseURL, bucket, objectName string) string {
	return strings.TrimRight(baseURL, "/") + "/" + bucket + "/" + objectName
}
