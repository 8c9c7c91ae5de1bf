package core_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/compozy/uafixtures/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("Should unwrap the cause", func(t *testing.T) {
		err := core.NewError(fs.ErrNotExist, "SOURCE_ROOT_MISSING", map[string]any{"root": "/tmp/x"})
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, "SOURCE_ROOT_MISSING: file does not exist", err.Error())
		var coded *core.Error
		assert.True(t, errors.As(error(err), &coded))
		assert.Equal(t, "SOURCE_ROOT_MISSING", coded.Code)
	})
	t.Run("Should use the code as message without cause", func(t *testing.T) {
		err := core.NewError(nil, "UNKNOWN_SOURCE", nil)
		assert.Equal(t, "UNKNOWN_SOURCE", err.Error())
		assert.Equal(t, map[string]any{"code": "UNKNOWN_SOURCE", "message": "UNKNOWN_SOURCE"}, err.AsMap())
	})
}
