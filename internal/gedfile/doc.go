// Package gedfile opens genealogy files from disk.
//
// Plain files and xz-compressed files (".xz" suffix) are supported. A
// leading UTF-8 byte order mark is dropped so the first line classifies
// like any other.
package gedfile
