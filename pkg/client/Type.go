package client

import (
	"io"
	"sync"

	"github.com/delta-vision/deltaterm/pkg/version"
)

type Adapter struct {
	Host string
	Port int

	Version *version.Version

	// Streams default to the process stdio and are swappable in tests.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	terminal   *Terminal
	writeMutex sync.Mutex
}
