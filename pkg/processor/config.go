// Package processor implements the top-level object manager facade: the
// process-wide handle every key, certificate, and derivation operation is
// issued against.
package processor

import (
	"github.com/joseinweb/rdkcryptoapi/pkg/container"
)

// DefaultDeviceID is the 8-byte device identifier used when a
// ProcessorConfig supplies none, matching the fixed test-vector device id.
var DefaultDeviceID = [8]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}

// DefaultRootKey is the 16-byte device root key used when a
// ProcessorConfig supplies none, matching the fixed 00..0F test-vector root
// key. Hard-coded defaults are injectable, not mandatory — callers needing
// real device-bound secrecy must supply their own RootKey.
var DefaultRootKey = [16]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F}

// ProcessorConfig configures a Processor instance.
type ProcessorConfig struct {
	// KeyDir, CertDir, BundleDir are the on-disk roots for the three
	// object kinds' file tier. Left empty, each defaults to a
	// subdirectory of DataDir.
	DataDir   string
	KeyDir    string
	CertDir   string
	BundleDir string

	// DeviceID and RootKey seed the key-derivation ladder. Zero values
	// fall back to DefaultDeviceID / DefaultRootKey.
	DeviceID [8]byte
	RootKey  [16]byte

	// Debug enables verbose logging.
	Debug bool

	// UnknownContainerHandler extends key-container provisioning with an
	// application-specific container type. Processor-scoped, not a
	// package-level registration hook.
	UnknownContainerHandler container.UnknownContainerHandler
}

// Validate fills in defaults and checks the configuration is usable.
func (c *ProcessorConfig) Validate() error {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.KeyDir == "" {
		c.KeyDir = c.DataDir + "/keys"
	}
	if c.CertDir == "" {
		c.CertDir = c.DataDir + "/certs"
	}
	if c.BundleDir == "" {
		c.BundleDir = c.DataDir + "/bundles"
	}
	if c.DeviceID == [8]byte{} {
		c.DeviceID = DefaultDeviceID
	}
	if c.RootKey == [16]byte{} {
		c.RootKey = DefaultRootKey
	}
	return nil
}

// DefaultProcessorConfig returns a ProcessorConfig with every field at its
// platform default.
func DefaultProcessorConfig() *ProcessorConfig {
	cfg := &ProcessorConfig{}
	_ = cfg.Validate()
	return cfg
}
