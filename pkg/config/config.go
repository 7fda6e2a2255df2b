package config

import "fmt"

// Config carries the per-run knobs of one compilation. A fresh run gets a
// fresh Config; nothing in it is global.
type Config struct {
	WordSize   int  // bytes per machine word, drives frame offset arithmetic
	FrameAlign int  // stack frame alignment in bytes
	DumpQuads  bool // dump the normalized quad stream after translation
}

func Default() *Config {
	c := &Config{}
	c.SetTarget(64)
	return c
}

// SetTarget fixes the frame-layout properties for a word width in bits.
func (c *Config) SetTarget(bits int) error {
	switch bits {
	case 64:
		c.WordSize, c.FrameAlign = 8, 16
	case 32:
		c.WordSize, c.FrameAlign = 4, 8
	case 16:
		c.WordSize, c.FrameAlign = 2, 2
	default:
		return fmt.Errorf("unsupported target word width %d, supported: 16, 32, 64", bits)
	}
	return nil
}
