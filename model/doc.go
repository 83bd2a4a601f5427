// Package model provides the data structures produced by table extraction.
//
// The types in this package are the user-facing result of scanning a
// raster image for a ruled table: pixel rectangles, grid intervals, and a
// row-major matrix of recognized cells.
//
// # Geometry
//
// Geometric primitives use integer pixel coordinates with the origin in the
// upper-left corner of the image:
//
//   - [Rect] - rectangle with inset, intersection and containment helpers
//   - [Interval] - a pair of grid line positions on one axis
//
// # Tables
//
// The [Table] type holds rows of [Cell] values. Rows may differ in length;
// [Table.ColCount] reports the longest. Export methods:
//
//   - ToMarkdown()
//   - ToCSV()
//   - ToHTML()
//
// Recognition confidence can be summarized with [Table.ConfidenceStats].
package model
