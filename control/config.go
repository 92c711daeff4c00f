package control

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the tunable parameters of the control unit and of the
// simulation collaborators built around it.
type Config struct {
	// RetryWindow is the number of ticks between the cache-retry pulse and
	// the earliest stall release. Default: 2.
	RetryWindow int `json:"retry_window"`

	// BHTSize is the number of branch-history-table entries.
	// Must be a power of 2. Default: 1024.
	BHTSize uint32 `json:"bht_size"`

	// BTBSize is the number of branch-target-buffer entries.
	// Must be a power of 2. Default: 256.
	BTBSize uint32 `json:"btb_size"`

	// ICacheSize is the instruction-cache capacity in bytes. Default: 4KB.
	ICacheSize int `json:"icache_size"`

	// ICacheAssociativity is the number of instruction-cache ways. Default: 2.
	ICacheAssociativity int `json:"icache_associativity"`

	// ICacheBlockSize is the instruction-cache line size in bytes. Default: 32.
	ICacheBlockSize int `json:"icache_block_size"`

	// RefillLatency is the number of ticks between the memory-read-request
	// pulse and the refill-complete pulse. Default: 4.
	RefillLatency uint64 `json:"refill_latency"`
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		RetryWindow:         DefaultRetryWindow,
		BHTSize:             1024,
		BTBSize:             256,
		ICacheSize:          4 * 1024,
		ICacheAssociativity: 2,
		ICacheBlockSize:     32,
		RefillLatency:       4,
	}
}

// LoadConfig loads a Config from a JSON file. Missing fields keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.RetryWindow < 1 {
		return fmt.Errorf("retry_window must be >= 1")
	}
	if c.BHTSize == 0 || c.BHTSize&(c.BHTSize-1) != 0 {
		return fmt.Errorf("bht_size must be a power of 2")
	}
	if c.BTBSize == 0 || c.BTBSize&(c.BTBSize-1) != 0 {
		return fmt.Errorf("btb_size must be a power of 2")
	}
	if c.ICacheBlockSize <= 0 {
		return fmt.Errorf("icache_block_size must be > 0")
	}
	if c.ICacheAssociativity <= 0 {
		return fmt.Errorf("icache_associativity must be > 0")
	}
	if c.ICacheSize < c.ICacheAssociativity*c.ICacheBlockSize {
		return fmt.Errorf("icache_size must hold at least one set")
	}
	if c.RefillLatency == 0 {
		return fmt.Errorf("refill_latency must be > 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
