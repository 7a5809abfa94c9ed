package fileloader

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// Magic byte signatures for compression detection.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// DecompressionResult contains the decompressed data and any warning.
type DecompressionResult struct {
	Data    []byte
	Warning string // non-empty if decompression was incomplete
}

// DetectCompressionByMagic reads the first few bytes of a file and detects
// the compression type.
func DetectCompressionByMagic(filePath string) (CompressionType, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return CompressionNone, err
	}
	defer f.Close()

	// XZ has the longest magic (6 bytes)
	header := make([]byte, 6)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return CompressionNone, err
	}

	if n >= 2 && bytes.HasPrefix(header, gzipMagic) {
		return CompressionGzip, nil
	}
	if n >= 3 && bytes.HasPrefix(header, bzip2Magic) {
		return CompressionBzip2, nil
	}
	if n >= 6 && bytes.HasPrefix(header, xzMagic) {
		return CompressionXZ, nil
	}

	return CompressionNone, nil
}

// DecompressFile reads a compressed file and returns the decompressed data.
// If decompression fails mid-stream, it returns the partial data with a
// warning message rather than failing the whole load.
func DecompressFile(filePath string, compressionType CompressionType) (*DecompressionResult, error) {
	if compressionType == CompressionNone {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		return &DecompressionResult{Data: data}, nil
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader
	switch compressionType {
	case CompressionGzip:
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader

	case CompressionBzip2:
		reader = bzip2.NewReader(f)

	case CompressionXZ:
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		reader = xzReader

	default:
		return nil, fmt.Errorf("unsupported compression type: %v", compressionType)
	}

	var buf bytes.Buffer
	_, decompressErr := io.Copy(&buf, reader)

	result := &DecompressionResult{Data: buf.Bytes()}
	if decompressErr != nil {
		if len(result.Data) == 0 {
			return nil, fmt.Errorf("decompression failed: %w", decompressErr)
		}
		result.Warning = fmt.Sprintf("décompression incomplète: %v, données possiblement tronquées", decompressErr)
	}

	return result, nil
}

// ReadRaw loads a part-list file as raw bytes, decompressing transparently
// when the file is compressed. The warning is non-empty for a partial
// decompression.
func ReadRaw(filePath string) ([]byte, string, error) {
	if filePath == "" {
		return nil, "", fmt.Errorf("file path is empty")
	}
	_, compression := DetectFileTypeAndCompression(filePath)
	result, err := DecompressFile(filePath, compression)
	if err != nil {
		return nil, "", err
	}
	return result.Data, result.Warning, nil
}
