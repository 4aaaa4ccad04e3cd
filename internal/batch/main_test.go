package batch

import (
	"testing"

	"go.uber.org/goleak"
)

// Worker pools must not outlive Process.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
