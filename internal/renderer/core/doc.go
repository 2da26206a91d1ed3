// Package core provides shared value types for the renderer subsystem:
// sizes, points, rectangles, scale factors, colors and cells.
// This package breaks import cycles between renderer, console and backend.
package core
