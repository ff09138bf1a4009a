// Package archive assembles the .ankiaddon zip file.
//
// Selected project files are written under their relative POSIX paths in
// the order the selector produced, followed by the refreshed manifest
// entry. Compression is Deflate, backed by klauspost/compress.
package archive
