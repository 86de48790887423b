package errno

import (
	"github.com/cloudwego/hertz/pkg/app"
)

// Response is the envelope of every API reply.
type Response struct {
	Code    int64       `json:"code"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// BuildResponse wraps err (nil for success) and data. A failure never carries data.
func BuildResponse(err error, data interface{}) Response {
	Err := ConvertErr(err)
	resp := Response{
		Code:    Err.ErrCode,
		Success: Err.ErrCode < 400,
		Message: Err.ErrMsg,
		Errors:  Err.Errors,
	}
	if resp.Success {
		resp.Data = data
	}
	return resp
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	resp := BuildResponse(err, data)
	c.JSON(int(resp.Code), resp)
}
