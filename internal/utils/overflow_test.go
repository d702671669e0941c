package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateBufferSize(t *testing.T) {
	require.NoError(t, ValidateBufferSize(10, 100, "list length"))
	require.NoError(t, ValidateBufferSize(0, 100, "list length"))

	err := ValidateBufferSize(101, 100, "list length")
	require.Error(t, err)
	require.Contains(t, err.Error(), "list length")
}
