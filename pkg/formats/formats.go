// Package formats encodes scenes into the MHFC model, skeleton and animation
// file formats.
//
// Each export builds and validates the complete body in memory before the
// destination file is created. Recoverable problems are recorded on the
// report and the export continues; fatal problems abort it.
//
// All numbers are big-endian. Strings are UTF-8 followed by a single NUL.
package formats
