package errno

import (
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/test/assert"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.DeepEqual(t, Success, ConvertErr(nil))
	})

	t.Run("wrapped errno keeps its code", func(t *testing.T) {
		err := fmt.Errorf("lookup video: %w", NotFoundErr.WithMessage("Video not found"))
		got := ConvertErr(err)
		assert.DeepEqual(t, int64(NotFoundCode), got.ErrCode)
		assert.DeepEqual(t, "Video not found", got.ErrMsg)
	})

	t.Run("unknown errors become service errors", func(t *testing.T) {
		got := ConvertErr(fmt.Errorf("connection refused"))
		assert.DeepEqual(t, int64(ServiceErrCode), got.ErrCode)
		assert.DeepEqual(t, []string{"connection refused"}, got.Errors)
	})
}

func TestBuildResponse(t *testing.T) {
	ok := BuildResponse(nil, map[string]bool{"is_liked": true})
	assert.True(t, ok.Success)
	assert.DeepEqual(t, int64(200), ok.Code)
	assert.NotNil(t, ok.Data)

	failed := BuildResponse(MalformedInputErr.WithMessage("Invalid video id"), map[string]bool{"x": true})
	assert.False(t, failed.Success)
	assert.DeepEqual(t, int64(400), failed.Code)
	assert.DeepEqual(t, "Invalid video id", failed.Message)
	assert.Nil(t, failed.Data)
}

func TestWithErrorsDoesNotShareBacking(t *testing.T) {
	base := MalformedInputErr.WithErrors("a")
	first := base.WithErrors("b")
	second := base.WithErrors("c")
	assert.DeepEqual(t, []string{"a", "b"}, first.Errors)
	assert.DeepEqual(t, []string{"a", "c"}, second.Errors)
}
