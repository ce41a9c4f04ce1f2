package util

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
)

// SHA1Hex returns the hex-encoded SHA1 of b.
func SHA1Hex(b []byte) string {
	h := sha1.Sum(b)
	return hex.EncodeToString(h[:])
}

// SHA1FileHex returns the hex-encoded SHA1 of the file at path, streaming
// it so a large input never needs to fit in memory at once.
func SHA1FileHex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
