// Package sheet implements sprite sheets: a single bitmap together with a
// table of named rectangles ("parts") inside that bitmap.
//
// The table is read from a descriptor, a text file with one part per line:
//
//	<name> <width> <height> <x> <y>
//
// Lines that do not have that shape are ignored. A Sheet can then draw any
// named part onto a draw.Image, optionally rotated or scaled.
//
// A Sheet is not safe for concurrent use; callers sharing one Sheet between
// goroutines need to lock around it. Distinct Sheets are independent.
package sheet
