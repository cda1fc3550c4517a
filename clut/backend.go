package clut

import (
	"golang.org/x/sys/cpu"
)

// Backend is the vector unit the F32x4 arithmetic of Vector is expected to
// be lowered to on this machine.
type Backend int

const (
	BackendGeneric Backend = iota
	BackendSSE2
	BackendAVX2
	BackendNEON
)

func (b Backend) String() string {
	switch b {
	case BackendSSE2:
		return "sse2"
	case BackendAVX2:
		return "avx2"
	case BackendNEON:
		return "neon"
	case BackendGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ActiveBackend reports which vector unit was detected at startup.
var ActiveBackend Backend

func VectorBackend() Backend { return ActiveBackend }

func detect_backend() Backend {
	switch {
	case cpu.X86.HasAVX2:
		return BackendAVX2
	case cpu.X86.HasSSE2:
		return BackendSSE2
	case cpu.ARM64.HasASIMD:
		return BackendNEON
	}
	return BackendGeneric
}

func init() {
	ActiveBackend = detect_backend()
}
