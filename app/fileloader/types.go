// Package fileloader provides input handling for part lists: file type and
// compression detection, raw reading and XLSX table extraction. The
// analysis pipeline itself never touches the filesystem; it consumes what
// this package hands over.
package fileloader

// FileType represents the type of part-list file being processed.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeXLSX
)

// String returns the string representation of FileType.
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeXLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// CompressionType represents the compression format of a file.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// String returns the string representation of CompressionType.
func (ct CompressionType) String() string {
	switch ct {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}
