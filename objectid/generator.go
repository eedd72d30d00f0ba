package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/arloliu/docwire/endian"
	"github.com/arloliu/docwire/internal/hash"
)

const counterMask = 0x00FFFFFF

var defaultGenerator = NewGenerator()

// Generator produces ObjectIDs. It is safe for concurrent use; the counter is
// advanced with a single atomic add so concurrent callers never observe the
// same value.
type Generator struct {
	discriminator [5]byte
	counter       atomic.Uint32
	now           func() time.Time
}

// NewGenerator creates a generator with a random discriminator and a random
// counter seed.
//
// If the system random source is unavailable the discriminator is derived
// from the host name, process id and start time instead.
func NewGenerator() *Generator {
	g := &Generator{now: time.Now}

	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		binary.LittleEndian.PutUint64(seed[:], hostSeed())
	}
	copy(g.discriminator[:], seed[:5])
	g.counter.Store(uint32(seed[5])<<16 | uint32(seed[6])<<8 | uint32(seed[7]))

	return g
}

// Generate returns the next ObjectID.
func (g *Generator) Generate() ObjectID {
	var id ObjectID

	be := endian.GetBigEndianEngine()
	be.PutUint32(id[0:4], uint32(g.now().Unix())) //nolint:gosec
	copy(id[4:9], g.discriminator[:])

	c := g.counter.Add(1) & counterMask
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)

	return id
}

// Discriminator returns the fixed per-process bytes of generated identifiers.
func (g *Generator) Discriminator() [5]byte {
	return g.discriminator
}

func hostSeed() uint64 {
	host, _ := os.Hostname()
	pid := strconv.Itoa(os.Getpid())
	started := strconv.FormatInt(time.Now().UnixNano(), 10)

	return hash.Parts([]byte(host), []byte{0}, []byte(pid), []byte{0}, []byte(started))
}
