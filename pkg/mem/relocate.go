package mem

import (
	"unsafe"

	"github.com/collectkit/optres/internal/caps"
)

// RelocateSlice moves min(len(dst), len(src)) values from src into dst and
// returns the count. For relocatable T the whole run moves as raw bytes and
// the source is zeroed in bulk; otherwise each value is taken and destroyed
// element-wise. Both paths leave identical destinations and emptied sources
// for any T the classifier accepts.
func RelocateSlice[T any](dst, src []T) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}

	rec := caps.For[T]()
	if rec.Relocatable && rec.PointerFree && rec.FullSize > 0 {
		relocateBytes(dst[:n], src[:n], rec.FullSize)
		return n
	}

	if rec.Relocatable {
		// Pointer-bearing but relocatable (plain assignment semantics):
		// copy through typed slots so the collector sees every store.
		copy(dst[:n], src[:n])
		clear(src[:n])
		return n
	}

	for i := 0; i < n; i++ {
		dst[i] = TakeAndDestroy(&src[i])
	}
	return n
}

func relocateBytes[T any](dst, src []T, size uintptr) {
	total := uintptr(len(src)) * size

	db := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), total)
	sb := unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), total)

	copy(db, sb)
	clear(src)
}
