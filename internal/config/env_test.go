package config

import (
	"os"
	"testing"
)

// unsetEnv removes variables for the duration of the test.
// It must be called after t.Setenv for the same keys so the originals are restored.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}
