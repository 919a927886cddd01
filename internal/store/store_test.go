// internal/store/store_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The key scheme is a wire contract shared with other tooling reading the
// same Redis instance, so the exact strings are pinned here.
func TestKeyScheme(t *testing.T) {
	assert.Equal(t, "uno:game42", stateKey("game42"))
	assert.Equal(t, "uno:game42:lock", lockKey("game42"))
	assert.Equal(t, "uno:game42:turns", turnChannel("game42"))
}
