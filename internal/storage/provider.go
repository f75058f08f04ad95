// Package storage defines the registry file abstraction.
package storage

// Provider is the interface for reading and replacing a single document file.
type Provider interface {
	// Location returns the path of the underlying file.
	Location() string
	// Exists reports whether the file is present.
	Exists() (bool, error)
	// Read returns the raw bytes of the file.
	Read() ([]byte, error)
	// Write atomically replaces the file with content.
	Write(content []byte) error
}
