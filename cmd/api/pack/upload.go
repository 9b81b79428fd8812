package pack

import (
	"os"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SaveUpload 把multipart文件保存到临时目录 字段不存在时返回空路径
func SaveUpload(c *app.RequestContext, field, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create temp dir %s", dir)
	}
	dst := filepath.Join(dir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err = c.SaveUploadedFile(fh, dst); err != nil {
		return "", errors.Wrapf(err, "save upload %s", field)
	}
	return dst, nil
}

// RemoveUploads 清理未被上传的临时文件
func RemoveUploads(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
