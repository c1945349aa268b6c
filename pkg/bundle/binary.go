package bundle

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// binarySniffLen is how many leading bytes are inspected.
const binarySniffLen = 512

// BinaryExtensions are skipped without reading the file.
var BinaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true, ".o": true, ".obj": true,
	".lib": true, ".bin": true, ".class": true, ".jar": true, ".pyc": true, ".pdb": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true, ".webp": true,
	".pdf": true, ".zip": true, ".gz": true, ".tar": true, ".7z": true, ".rar": true,
	".mp3": true, ".mp4": true, ".wav": true, ".avi": true, ".mov": true,
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true,
}

// isBinaryFile reports whether a file looks binary: a known binary
// extension, a NUL byte in the first bytes, or more than 30% non-printable
// bytes there.
func isBinaryFile(path string) (bool, error) {
	if BinaryExtensions[strings.ToLower(filepath.Ext(path))] {
		return true, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, binarySniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return looksBinary(buffer[:n]), nil
}

func looksBinary(buffer []byte) bool {
	if len(buffer) == 0 {
		return false
	}
	if bytes.IndexByte(buffer, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3
}

// isPrintable treats ASCII text, common whitespace and any byte of a
// multi-byte UTF-8 sequence as printable.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
