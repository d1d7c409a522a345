package config

import (
	"fmt"
	"math"

	"github.com/docker/go-units"
	"github.com/shopspring/decimal"
)

// Path is a filesystem path read from configuration. Paths are kept exactly
// as configured.
type Path string

func (p Path) String() string {
	return string(p)
}

// Cores is a positive, possibly fractional, number of CPU cores.
type Cores struct {
	value decimal.Decimal
}

// NewCores returns the core count n, which must be positive.
func NewCores(n float64) (Cores, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return Cores{}, fmt.Errorf("core count must be positive, got %v", n)
	}
	return Cores{value: decimal.NewFromFloat(n)}, nil
}

// Decimal returns the exact core count.
func (c Cores) Decimal() decimal.Decimal {
	return c.value
}

// Float64 returns the core count as a float.
func (c Cores) Float64() float64 {
	f, _ := c.value.Float64()
	return f
}

func (c Cores) String() string {
	return c.value.String()
}

// Memory is an amount of memory in bytes.
type Memory int64

// ParseMemory parses sizes such as "512M", "2g", "1.5GiB" or "1048576".
// Unit prefixes are binary multiples.
func ParseMemory(s string) (Memory, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid memory size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid memory size %q: must not be negative", s)
	}
	return Memory(n), nil
}

// Bytes returns the size in bytes.
func (m Memory) Bytes() int64 {
	return int64(m)
}

func (m Memory) String() string {
	return units.BytesSize(float64(m))
}
