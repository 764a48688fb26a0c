// Package filter compiles CSS filter function lists into instruction
// programs and runs them over premultiplied layers.
//
// A program is an ordered list of instructions:
//   - ColorMatrix: a 4x5 matrix over unpremultiplied RGBA in [0,1]
//   - Blur: separable Gaussian blur with radius ceil(3*sigma)
//   - MakeShadow: replace the layer by its blurred silhouette in a color
//   - DropShadow: draw a blurred, offset silhouette behind the layer
//   - NoOp: a clamping boundary between two color matrices
//
// Consecutive color matrices are composed into one unless the earlier
// matrix can produce values outside [0,1], in which case its output is
// clamped first and a NoOp marks the boundary.
package filter
