package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("pluto_pass")
	require.NoError(t, err)
	assert.True(t, Verify("pluto_pass", encoded))
	assert.False(t, Verify("mickey_pass", encoded))
}

func TestVerify_MalformedEncoding(t *testing.T) {
	assert.False(t, Verify("secret", ""))
	assert.False(t, Verify("secret", "not-a-hash"))
	assert.False(t, Verify("secret", "$argon2id$v=19$m=65536,t=1$short"))
}
