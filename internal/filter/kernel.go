package filter

import (
	"math"

	"github.com/gogpu/canvas/internal/cache"
)

// KernelRadius returns the blur radius ceil(3*sigma) for a Gaussian of
// standard deviation sigma.
func KernelRadius(sigma float64) int {
	if !(sigma > 0) {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// GaussianKernel samples a Gaussian of standard deviation sigma at the
// integer offsets -r..r, r = KernelRadius(sigma), and renormalizes the
// samples to sum to 1. For sigma <= 0 it returns the identity kernel.
func GaussianKernel(sigma float64) []float32 {
	half := KernelRadius(sigma)
	if half == 0 {
		return []float32{1}
	}
	kernel := make([]float32, 2*half+1)
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernels caches Gaussian kernels keyed by the bits of sigma.
var kernels = cache.New[uint64, []float32](64)

// CachedGaussianKernel is GaussianKernel backed by a process-wide cache.
// The result is shared and must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	return kernels.GetOrCreate(math.Float64bits(sigma), func() []float32 { return GaussianKernel(sigma) })
}
