package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// fingerprintTail is how much of the end of a file feeds its fingerprint.
// History files are append-only, so the tail changes on every write.
const fingerprintTail = int64(2048)

// CalculateFileFingerprint returns the file size and a CRC32 of its last 2KB
func CalculateFileFingerprint(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	size := stat.Size()
	readSize := min(fingerprintTail, size)

	if _, err := file.Seek(-readSize, io.SeekEnd); err != nil {
		return "", err
	}

	data := make([]byte, readSize)
	if _, err := io.ReadFull(file, data); err != nil {
		return "", err
	}

	crc := crc32.ChecksumIEEE(data)
	return fmt.Sprintf("%d-%08x", size, crc), nil
}
