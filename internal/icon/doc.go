// Package icon derives a fixed-size square bitmap for a registered file.
//
// Extraction prefers a real image (the file itself when it is a raster
// image, the Icon= of a freedesktop shortcut, the IconFile= of a web
// shortcut) and otherwise renders a deterministic glyph tile from the file
// name. Results are RGBA pixel buffers; the Cached extractor memoizes them
// in memory for the lifetime of the process only.
package icon
