// Package romloader reads NES ROM images from disk, including images
// packed in ZIP, 7z, gzip, tar.gz and RAR archives.
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicNES    = []byte{'N', 'E', 'S', 0x1A}
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Largest image accepted. The biggest licensed NES carts are 1MB.
const maxROMSize = 4 * 1024 * 1024

var (
	// ErrNoNESFile is returned when an archive holds no .nes member.
	ErrNoNESFile = errors.New("no .nes file found in archive")

	// ErrUnsupportedFormat is returned for unrecognized file formats.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileTooLarge is returned when a ROM exceeds maxROMSize.
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")
)

type formatType int

const (
	formatUnknown formatType = iota
	formatRawNES
	formatZIP
	format7z
	formatGzip
	formatRAR
)

func (f formatType) String() string {
	switch f {
	case formatRawNES:
		return "nes"
	case formatZIP:
		return "zip"
	case format7z:
		return "7z"
	case formatGzip:
		return "gzip"
	case formatRAR:
		return "rar"
	default:
		return "unknown"
	}
}

// LoadROM loads a ROM image from path, unpacking it from an archive when
// needed. It returns the image and the file name of the ROM inside the
// archive (or of path itself).
func LoadROM(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	switch detectFormat(header, path) {
	case formatRawNES:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, "", fmt.Errorf("failed to seek file: %w", err)
		}
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read ROM: %w", err)
		}
		return data, filepath.Base(path), nil
	case formatZIP:
		return extractFromZIP(path)
	case format7z:
		return extractFrom7z(path)
	case formatGzip:
		return extractFromGzip(path)
	case formatRAR:
		return extractFromRAR(path)
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// detectFormat prefers magic bytes and falls back to the file extension.
func detectFormat(header []byte, path string) formatType {
	switch {
	case bytes.HasPrefix(header, magicNES):
		return formatRawNES
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEnd):
		return formatZIP
	case bytes.HasPrefix(header, magicRAR):
		return formatRAR
	case bytes.HasPrefix(header, magic7z):
		return format7z
	case bytes.HasPrefix(header, magicGzip):
		return formatGzip
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".tar.gz") {
		return formatGzip
	}
	switch filepath.Ext(lower) {
	case ".nes":
		return formatRawNES
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}
	return formatUnknown
}

// isNESFile checks for a .nes extension (case-insensitive).
func isNESFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".nes")
}

// limitedRead reads all of r, failing once more than maxROMSize bytes arrive.
func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxROMSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxROMSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
