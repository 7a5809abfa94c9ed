package fileloader

import "strings"

// compressionExtensions maps compression extensions to their CompressionType.
var compressionExtensions = map[string]CompressionType{
	".gz":  CompressionGzip,
	".bz2": CompressionBzip2,
	".xz":  CompressionXZ,
}

// DetectFileType determines the file type from the extension. Anything that
// is not .xlsx is treated as CSV: historic part lists show up with .csv,
// .txt or no extension at all, and the sniffer sorts out the details.
func DetectFileType(filePath string) FileType {
	if filePath == "" {
		return FileTypeUnknown
	}
	if strings.HasSuffix(strings.ToLower(filePath), ".xlsx") {
		return FileTypeXLSX
	}
	return FileTypeCSV
}

// DetectFileTypeAndCompression determines both the inner file type and the
// compression type. Double extensions (e.g. .csv.gz) are checked first;
// magic-byte detection covers compressed files without a compression
// extension.
func DetectFileTypeAndCompression(filePath string) (FileType, CompressionType) {
	if filePath == "" {
		return FileTypeUnknown, CompressionNone
	}

	lower := strings.ToLower(filePath)

	compressionType := CompressionNone
	innerPath := lower
	for ext, ct := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			compressionType = ct
			innerPath = strings.TrimSuffix(lower, ext)
			break
		}
	}

	if compressionType == CompressionNone {
		if magicType, err := DetectCompressionByMagic(filePath); err == nil && magicType != CompressionNone {
			// No extension hint for the inner type; CSV is the safe default.
			return FileTypeCSV, magicType
		}
	}

	return DetectFileType(innerPath), compressionType
}
