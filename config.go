package xtype

import (
	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/internal/options"
)

type config struct {
	pref endian.Preference
}

func defaultConfig() *config {
	return &config{pref: endian.Auto}
}

// Option configures a File at Open time.
type Option = options.Option[*config]

// WithLittleEndian forces little-endian encoding, ignoring any BOM footnote
// found on read.
func WithLittleEndian() Option {
	return options.NoError(func(c *config) { c.pref = endian.Little })
}

// WithBigEndian forces big-endian encoding, ignoring any BOM footnote found
// on read.
func WithBigEndian() Option {
	return options.NoError(func(c *config) { c.pref = endian.Big })
}

// WithAutoEndian resolves byte order from the file's BOM footnote on read,
// and writes big-endian (the format's conventional default) otherwise. This
// is the default when no byte-order option is given.
func WithAutoEndian() Option {
	return options.NoError(func(c *config) { c.pref = endian.Auto })
}
