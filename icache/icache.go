// Package icache models the instruction cache as seen by the control unit:
// a per-tick hit signal, a refill countdown armed by the memory-read-request
// pulse, and a one-tick refill-completed pulse when the missed block
// arrives. Tag and way bookkeeping use the Akita cache directory.
package icache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds the instruction-cache parameters.
type Config struct {
	// Size in bytes.
	Size int
	// Associativity (number of ways).
	Associativity int
	// BlockSize in bytes (cache line size).
	BlockSize int
	// RefillLatency is the number of ticks between the memory-read-request
	// pulse and the refill-completed pulse.
	RefillLatency uint64
}

// DefaultConfig returns a small instruction-cache configuration suited to a
// classic five-stage RV32 core: 4KB, 2-way, 32B lines, 4-tick refill.
func DefaultConfig() Config {
	return Config{
		Size:          4 * 1024,
		Associativity: 2,
		BlockSize:     32,
		RefillLatency: 4,
	}
}

// Statistics holds instruction-cache counters.
type Statistics struct {
	Lookups uint64
	Hits    uint64
	Misses  uint64
	Refills uint64
}

// Cache is the instruction-cache model. A lookup reports hit or miss
// without side effects on the refill machinery; StartRefill and Retry react
// to the control unit's pulses; Tick advances the refill countdown once per
// clock tick.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl

	// Outstanding refill, armed by the memory-read-request pulse.
	refillPending   bool
	refillAddr      uint64
	refillCountdown uint64

	// Fill buffer: the refilled block waits here until the retry pulse
	// re-issues the read. The retried read takes a full cycle through the
	// tag array, so the block becomes visible to lookups the tick after.
	fillValid    bool
	installDelay int

	stats Statistics
}

// New creates an instruction cache with the given configuration.
func New(config Config) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// blockAddr aligns an address down to its cache line.
func (c *Cache) blockAddr(addr uint32) uint64 {
	return uint64(addr) / uint64(c.config.BlockSize) * uint64(c.config.BlockSize)
}

// Lookup reports whether the block holding addr is present. It updates LRU
// state and hit/miss counters but never changes block contents.
func (c *Cache) Lookup(addr uint32) bool {
	c.stats.Lookups++

	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		c.directory.Visit(block)
		c.stats.Hits++
		return true
	}

	c.stats.Misses++
	return false
}

// StartRefill reacts to the memory-read-request pulse: it arms the refill
// countdown for the block holding addr. A request arriving while a refill
// is outstanding restarts the countdown for the new address.
func (c *Cache) StartRefill(addr uint32) {
	c.refillPending = true
	c.refillAddr = c.blockAddr(addr)
	c.refillCountdown = c.config.RefillLatency
	c.fillValid = false
}

// Retry reacts to the cache-retry pulse: the buffered block is re-read and
// scheduled for install. Without a buffered block the pulse is ignored.
func (c *Cache) Retry() {
	if !c.fillValid {
		return
	}
	c.installDelay = 2
}

// Tick advances the refill machinery by one clock tick. It returns true for
// exactly one tick when the refill data arrives.
func (c *Cache) Tick() bool {
	if c.installDelay > 0 {
		c.installDelay--
		if c.installDelay == 0 {
			c.install()
		}
	}

	if !c.refillPending {
		return false
	}

	c.refillCountdown--
	if c.refillCountdown == 0 {
		c.refillPending = false
		c.fillValid = true
		return true
	}

	return false
}

// install places the buffered block into the directory.
func (c *Cache) install() {
	victim := c.directory.FindVictim(c.refillAddr)
	if victim == nil {
		return
	}

	victim.Tag = c.refillAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	c.stats.Refills++
	c.fillValid = false
}

// Stats returns the accumulated statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// Reset invalidates every line and clears the refill machinery and
// statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.refillPending = false
	c.refillCountdown = 0
	c.fillValid = false
	c.installDelay = 0
	c.stats = Statistics{}
}
