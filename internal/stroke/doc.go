// Package stroke expands stroked paths into fill paths.
//
// A stroke is converted to a set of closed polygons that all wind in the
// same direction, so the union of the pieces is obtained by filling the
// result with the nonzero rule:
//   - every flattened segment becomes a rectangle of the line width
//   - every corner gets a bevel, miter or round piece on its outer side
//   - open subpath ends get butt, round or square caps
//
// Dash patterns are applied to the flattened subpaths before expansion.
// Each subpath restarts the pattern at the dash offset.
package stroke
