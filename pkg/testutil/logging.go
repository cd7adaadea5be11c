package testutil

import (
	"testing"

	"github.com/rs/zerolog"
)

// QuietLogs raises the global log level to error for the duration of the
// test and restores the previous level afterwards.
func QuietLogs(t *testing.T) {
	t.Helper()
	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })
}
