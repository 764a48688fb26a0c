// Package cache provides a generic thread-safe LRU cache for derived
// rendering data: Gaussian kernels and glyph outlines.
//
//	c := cache.New[int, []float32](64)
//	k := c.GetOrCreate(key, func() []float32 { return build(key) })
//
// A Cache must not be copied after creation.
package cache
