// Package element implements the drawable content of a document page.
//
// All page content implements the [Element] interface. The concrete types
// are:
//
//   - [Stroke] - freehand strokes made of pressure-tagged points
//   - [Image] - embedded raster images
//   - [TexImage] - rendered LaTeX formulas
//   - [Text] - text runs
//
// # Geometry cache
//
// Every element caches its size and snapping bounds. The cache is filled
// lazily by the first read of X, Y, ElementWidth, ElementHeight,
// SnappedBounds or BoundingRect after a shape-changing mutation, so callers
// never have to trigger a recomputation themselves. Translations (Move,
// SetX, SetY) shift the cached rectangle instead of invalidating it.
//
// # Transforms
//
// Scale and Rotate are destructive for strokes (point coordinates are
// rewritten) and representational for images (the placement matrix is
// updated, pixels are never resampled).
//
// # Serialization
//
// Elements implement [serial.Serializable]. [ReadElement] restores an element
// of whatever kind comes next on the stream; [WriteElements] and
// [ReadElements] handle lists.
package element
