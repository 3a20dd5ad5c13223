package filesystem

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gofrs/flock"
)

// DefaultChecksumAlgorithm is used when no algorithm is configured
const DefaultChecksumAlgorithm = "sha256"

// checksumChunkSize is the read buffer used while hashing
const checksumChunkSize = 8192

var hashAlgorithms = map[string]func() hash.Hash{
	"sha256":  sha256.New,
	"sha-256": sha256.New,
	"sha1":    sha1.New,
	"sha-1":   sha1.New,
	"sha512":  sha512.New,
	"sha-512": sha512.New,
	"md5":     md5.New,
}

// Checksummer computes file digests under a shared lock
type Checksummer struct {
	algorithm string
	newHash   func() hash.Hash
}

// NewChecksummer creates a checksummer for the named algorithm
func NewChecksummer(algorithm string) (*Checksummer, error) {
	if algorithm == "" {
		algorithm = DefaultChecksumAlgorithm
	}
	name := strings.ToLower(algorithm)
	newHash, ok := hashAlgorithms[name]
	if !ok {
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
	return &Checksummer{algorithm: name, newHash: newHash}, nil
}

// Algorithm returns the normalized algorithm name
func (c *Checksummer) Algorithm() string {
	return c.algorithm
}

// Sum returns the lowercase hex digest of the file at path. A file that no
// longer exists yields an empty digest and no error.
func (c *Checksummer) Sum(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	// Shared lock for the whole read; writers honoring the lock wait for us
	lock := flock.New(path, flock.SetFlag(os.O_RDONLY))
	if err := lock.RLock(); err != nil {
		return "", fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer lock.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := c.newHash()
	buf := make([]byte, checksumChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
