// Package content reads file contents with a hard size cap, sniffing out
// binary files and preserving both ends of oversized ones.
package content

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
)

const (
	// sniffLen is the prefix read for binary detection.
	sniffLen = 512

	// BinarySentinel replaces the content of files identified as binary.
	BinarySentinel = "[binary file omitted]"

	// TruncationMarker is spliced between the head and tail of capped files.
	TruncationMarker = "\n[... truncated ...]\n"
)

// LoadCapped reads path into a string bounded by maxBytes.
//
// A NUL byte in the first 512 bytes marks the file as binary and yields
// BinarySentinel instead of content. Files within the cap are read whole;
// larger files contribute a head block and a tail block of maxBytes/2 each,
// joined by TruncationMarker, so arbitrarily large files still yield a
// bounded representation that keeps both structural ends. Invalid byte
// sequences are replaced, never fatal.
func LoadCapped(path string, maxBytes int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	size := info.Size()

	sniff := make([]byte, sniffLen)
	n, err := f.Read(sniff)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if bytes.IndexByte(sniff[:n], 0) >= 0 {
		return BinarySentinel, nil
	}

	if size <= maxBytes {
		rest, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return decode(append(sniff[:n], rest...)), nil
	}

	headLen := maxBytes / 2
	tailLen := maxBytes - headLen

	head := make([]byte, headLen)
	if _, err := f.ReadAt(head, 0); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	tail := make([]byte, tailLen)
	if _, err := f.ReadAt(tail, size-tailLen); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return decode(head) + TruncationMarker + decode(tail), nil
}

func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
