package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_Plain(t *testing.T) {
	assert.NoError(t, Compare("secret", "secret"))
	assert.ErrorIs(t, Compare("secret", "wrong"), ErrMismatch)
	assert.ErrorIs(t, Compare("", "secret"), ErrInvalidPassword)
	assert.ErrorIs(t, Compare("secret", ""), ErrInvalidPassword)
}

func TestCompare_Bcrypt(t *testing.T) {
	hashed, err := Hash("secret")
	require.NoError(t, err)

	assert.NoError(t, Compare(hashed, "secret"))
	assert.ErrorIs(t, Compare(hashed, "wrong"), ErrMismatch)
}
