package errno

import (
	"errors"
	"fmt"
)

// Error codes double as the HTTP status of the response envelope.
const (
	SuccessCode         = 200
	MalformedInputCode  = 400
	TokenInvalidCode    = 401
	UnauthorizedCode    = 403
	NotFoundCode        = 404
	TooManyRequestsCode = 429
	ServiceErrCode      = 500
	UpstreamFailureCode = 500
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
	Errors  []string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

// WithMessage returns a copy of e carrying msg.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// WithErrors returns a copy of e carrying extra error details.
func (e ErrNo) WithErrors(details ...string) ErrNo {
	e.Errors = append(append([]string(nil), e.Errors...), details...)
	return e
}

var (
	Success            = NewErrNo(SuccessCode, "Success")
	MalformedInputErr  = NewErrNo(MalformedInputCode, "Malformed input")
	TokenInvalidErr    = NewErrNo(TokenInvalidCode, "Token is invalid or expired")
	UnauthorizedErr    = NewErrNo(UnauthorizedCode, "You are not the owner of this resource")
	NotFoundErr        = NewErrNo(NotFoundCode, "Resource not found")
	TooManyRequestsErr = NewErrNo(TooManyRequestsCode, "Too many requests, please retry later")
	ServiceErr         = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	UpstreamErr        = NewErrNo(UpstreamFailureCode, "Upstream media service failed")
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
	s := ServiceErr.WithMessage("Internal server error")
	return s.WithErrors(err.Error())
}
