package service

import (
	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var errNotFound = gorm.ErrRecordNotFound

func parseID(raw, what string) (model.ID, error) {
	id, err := model.ParseID(raw)
	if err != nil {
		return "", errno.ParamErr.WithMessage("invalid " + what + " id")
	}
	return id, nil
}

// storeErr 将记录不存在映射为NotFound 其余错误保持为内部错误
func storeErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if db.IsNotFound(err) {
		return errno.NotFoundErr.WithMessage(what + " not found")
	}
	return errors.WithMessage(err, what)
}

// mutationErr 影响0行的写操作按失败处理
func mutationErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, db.ErrNoRowsAffected) {
		return errors.WithMessage(errno.ServiceErr.WithMessage("failed to "+what), err.Error())
	}
	return errors.WithMessage(err, what)
}

func paramErr(msg string) error {
	return errno.ParamErr.WithMessage(msg)
}
