package service

import (
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
)

// authorizeOwner 所有修改与删除操作在写入前必须通过该检查
func authorizeOwner(principal, owner model.ID) error {
	if !principal.Equal(owner) {
		return errno.ForbiddenErr
	}
	return nil
}
