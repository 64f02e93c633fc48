package autodiff

import (
	"sync"
	"sync/atomic"

	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/internal/backend/cpu"
	"github.com/born-ml/gradgraph/internal/tensor"
)

// Process-wide execution mode. Every Call reads it; it is only changed
// through the scoped helpers below.
var (
	recording atomic.Bool

	backendMu      sync.RWMutex
	defaultBackend tensor.Backend = cpu.New()
)

func init() {
	recording.Store(true)
}

// GradientRecording reports whether Calls currently record provenance.
func GradientRecording() bool {
	return recording.Load()
}

// SetGradientRecording sets the gradient recording mode and returns a
// function that restores the previous mode. Use it with defer:
//
//	defer autodiff.SetGradientRecording(false)()
func SetGradientRecording(enabled bool) (restore func()) {
	previous := recording.Swap(enabled)
	klog.V(1).Infof("autodiff: gradient recording %t -> %t", previous, enabled)
	return func() {
		recording.Store(previous)
		klog.V(1).Infof("autodiff: gradient recording restored to %t", previous)
	}
}

// NoGrad runs fn with gradient recording disabled. Nodes produced inside fn
// carry no provenance, so nothing they depend on is kept alive for a
// backward pass. The previous mode is restored when fn returns or panics.
func NoGrad(fn func()) {
	defer SetGradientRecording(false)()
	fn()
}

// NoGradE is NoGrad for functions that return an error.
func NoGradE(fn func() error) error {
	defer SetGradientRecording(false)()
	return fn()
}

// DefaultBackend returns the backend used by Call.
func DefaultBackend() tensor.Backend {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return defaultBackend
}

// SetDefaultBackend replaces the backend used by Call and returns a function
// that restores the previous one.
func SetDefaultBackend(backend tensor.Backend) (restore func()) {
	backendMu.Lock()
	previous := defaultBackend
	defaultBackend = backend
	backendMu.Unlock()
	return func() {
		backendMu.Lock()
		defaultBackend = previous
		backendMu.Unlock()
	}
}
