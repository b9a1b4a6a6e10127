// Package artifact names, checks and removes the temporary per-page images
// produced while rendering a document.
package artifact

import (
	"encoding/base32"
	"encoding/binary"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// IDLength is the length of identifiers produced by RandomIDGenerator.
const IDLength = 10

// IDGenerator produces base names for artifact sets.
type IDGenerator interface {
	NewID() string
}

var idEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// RandomIDGenerator hashes a random UUID together with the current time and
// process id. Identifiers are lowercase base32, safe in file names.
type RandomIDGenerator struct{}

// NewID returns a fresh IDLength-character identifier.
func (RandomIDGenerator) NewID() string {
	seed := uuid.New()

	var entropy [16]byte
	binary.LittleEndian.PutUint64(entropy[:8], uint64(time.Now().UnixNano()))
	binary.LittleEndian.PutUint64(entropy[8:], uint64(os.Getpid()))

	h := xxhash.New()
	_, _ = h.Write(seed[:])
	_, _ = h.Write(entropy[:])

	return idEncoding.EncodeToString(h.Sum(nil))[:IDLength]
}
