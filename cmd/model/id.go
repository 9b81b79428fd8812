package model

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ID 所有实体共用的标识 存储为规范的UUID字符串
type ID string

var ErrInvalidID = errors.New("invalid id")

func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID accepts only canonical UUIDs.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidID, "%q", s)
	}
	return ID(u.String()), nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

// Equal 零值ID与任何ID都不相等
func (id ID) Equal(other ID) bool {
	return !id.IsZero() && id == other
}

func Strings(ids []ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
