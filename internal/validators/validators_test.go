package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phRequest struct {
	Ph *float64 `binding:"omitempty,ph"`
	TZ string   `binding:"omitempty,timezone"`
}

func TestRegister_PhTag(t *testing.T) {
	require.NoError(t, Register())

	ok, bad := 7.2, 14.5
	assert.NoError(t, binding.Validator.ValidateStruct(phRequest{Ph: &ok, TZ: "Europe/Berlin"}))
	assert.Error(t, binding.Validator.ValidateStruct(phRequest{Ph: &bad}))
	assert.Error(t, binding.Validator.ValidateStruct(phRequest{TZ: "Nowhere/Land"}))
	assert.NoError(t, binding.Validator.ValidateStruct(phRequest{}))
}
