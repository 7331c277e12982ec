package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	EnvDocumentsStore          = "DOCUMENTS_STORE"
	EnvDocumentsMaxContentSize = "DOCUMENTS_MAX_CONTENT_SIZE"
)

// Document and thread store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// DocumentsConfig selects the document and thread store and bounds content size.
type DocumentsConfig struct {
	// Store is "postgres" or "memory". Default: "postgres"
	Store string `toml:"store"`

	// MaxContentSize is a human-readable size such as "1MB".
	MaxContentSize    string `toml:"max_content_size"`
	maxContentSizeVal int64
}

// MaxContentBytes returns the parsed content limit.
func (c *DocumentsConfig) MaxContentBytes() int64 {
	return c.maxContentSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the documents configuration.
func (c *DocumentsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *DocumentsConfig) Merge(overlay *DocumentsConfig) {
	if overlay.Store != "" {
		c.Store = overlay.Store
	}
	if size, err := units.FromHumanSize(overlay.MaxContentSize); err == nil {
		c.MaxContentSize = overlay.MaxContentSize
		c.maxContentSizeVal = size
	}
}

func (c *DocumentsConfig) loadDefaults() {
	if c.Store == "" {
		c.Store = StorePostgres
	}
	if c.MaxContentSize == "" {
		c.MaxContentSize = "1MB"
	}
}

func (c *DocumentsConfig) loadEnv() {
	if v := os.Getenv(EnvDocumentsStore); v != "" {
		c.Store = v
	}
	if v := os.Getenv(EnvDocumentsMaxContentSize); v != "" {
		c.MaxContentSize = v
	}
}

func (c *DocumentsConfig) validate() error {
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q (must be postgres or memory)", c.Store)
	}

	size, err := units.FromHumanSize(c.MaxContentSize)
	if err != nil {
		return fmt.Errorf("invalid max_content_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_content_size must be positive")
	}
	c.maxContentSizeVal = size

	return nil
}
