// Package models defines the domain types for zz.
package models

// Bucket is a named base directory under which dated working directories
// are created.
type Bucket struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Registry is the persisted document holding all buckets and the optional
// default-bucket name. DefaultBucket is nil when no default is set.
type Registry struct {
	DefaultBucket *string  `json:"default_bucket"`
	Buckets       []Bucket `json:"buckets"`
}

// Entry is one immediate child of a bucket's base directory, with its name
// split into the date prefix and the rest.
type Entry struct {
	Bucket string `json:"bucket"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}
