// Package testutil holds small helpers shared across test packages.
package testutil

import (
	"io"
	"log/slog"
)

// Logger returns a logger that swallows output, keeping test logs readable.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
