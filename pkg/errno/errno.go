package errno

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// 错误码直接使用HTTP状态码 便于在边界层统一映射
const (
	SuccessCode                = http.StatusOK
	CreatedCode                = http.StatusCreated
	ParamErrCode               = http.StatusBadRequest
	AuthorizationFailedErrCode = http.StatusUnauthorized
	ForbiddenErrCode           = http.StatusForbidden
	NotFoundErrCode            = http.StatusNotFound
	TooManyRequestsErrCode     = http.StatusTooManyRequests
	ServiceErrCode             = http.StatusInternalServerError
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// StatusCode is the HTTP status the error maps to.
func (e ErrNo) StatusCode() int {
	return int(e.ErrCode)
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	Created                = NewErrNo(CreatedCode, "Created")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedErrCode, "Unauthorized request")
	TokenInvalidErr        = NewErrNo(AuthorizationFailedErrCode, "Invalid or expired token")
	ForbiddenErr           = NewErrNo(ForbiddenErrCode, "not authorized")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Resource not found")
	TooManyRequestsErr     = NewErrNo(TooManyRequestsErrCode, "Too many requests")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}

// IsServerError reports whether err maps to a 5xx status.
func IsServerError(err error) bool {
	return ConvertErr(err).ErrCode >= ServiceErrCode
}
