package cache

import (
	"encoding/hex"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sourceprism/prism/pkg/parser"
	"github.com/zeebo/blake3"
)

// ParseCache is an in-memory LRU of parse results keyed by file path and
// validated by a content hash, so an edited file reads as a miss. A miss
// is functionally identical to a cold parse; callers use the cache
// opportunistically.
type ParseCache struct {
	lru     *lru.Cache[string, entry]
	enabled bool
}

type entry struct {
	hash   string
	result *parser.ParseResult
}

// New creates a parse cache holding at most size entries. A disabled
// cache misses on every lookup.
func New(size int, enabled bool) (*ParseCache, error) {
	if !enabled {
		return &ParseCache{enabled: false}, nil
	}
	if size <= 0 {
		size = 512
	}
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &ParseCache{lru: l, enabled: true}, nil
}

// HashBytes computes a BLAKE3 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Get returns the cached parse result for path if the content hash matches.
func (c *ParseCache) Get(path, hash string) (*parser.ParseResult, bool) {
	if !c.enabled {
		return nil, false
	}
	e, ok := c.lru.Get(path)
	if !ok || e.hash != hash {
		return nil, false
	}
	return e.result, true
}

// Set stores a parse result under path with its content hash.
func (c *ParseCache) Set(path, hash string, result *parser.ParseResult) {
	if !c.enabled {
		return
	}
	c.lru.Add(path, entry{hash: hash, result: result})
}

// Parse reads and parses path through the cache: a hit with a matching
// content hash skips the parse entirely.
func (c *ParseCache) Parse(p *parser.Parser, path string) (*parser.ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	hash := HashBytes(source)
	if result, ok := c.Get(path, hash); ok {
		return result, nil
	}

	lang := parser.DetectLanguage(path)
	result, err := p.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}

	c.Set(path, hash, result)
	return result, nil
}

// Len returns the number of cached entries.
func (c *ParseCache) Len() int {
	if !c.enabled {
		return 0
	}
	return c.lru.Len()
}

// Purge drops all cached entries.
func (c *ParseCache) Purge() {
	if c.enabled {
		c.lru.Purge()
	}
}
