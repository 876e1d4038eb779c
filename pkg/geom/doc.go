// Package geom provides the geometric primitives shared by elements, the
// document container and the export backends.
//
// All coordinates are page coordinates in points with the origin at the
// top-left corner of the page and y growing downward.
//
// # Matrices
//
// [Matrix] uses the PDF convention: a point (x, y) maps to
// (a*x + c*y + e, b*x + d*y + f), and m.Multiply(n) applies m first and
// n second.
package geom
