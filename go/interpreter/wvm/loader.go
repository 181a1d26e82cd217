// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package wvm

import (
	"github.com/Fantom-foundation/wordvm/go/tosca"
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize is the number of decoded programs retained by a Loader if
// no cache size is configured.
const defaultCacheSize = 1 << 12

// maxCachedCodeLength is the maximum length of a code in bytes that is
// retained in the cache. Longer codes are decoded on every load.
const maxCachedCodeLength = 1<<14 + 1<<13 // = 24_576 bytes

// Loader creates interpreters for program texts. Decoded byte code is kept in
// an LRU cache keyed by the hash of the program text, so repeated loads of the
// same program skip the decoding. Cached code is immutable and shared by all
// interpreters created for it. A Loader is safe for concurrent use.
type Loader struct {
	cache *lru.Cache[tosca.Hash, []byte]
}

// NewLoader creates a loader caching up to cacheSize decoded programs. If
// cacheSize is 0 a default size is used, if it is negative no cache is used.
func NewLoader(cacheSize int) (*Loader, error) {
	if cacheSize == 0 {
		cacheSize = defaultCacheSize
	}
	if cacheSize < 0 {
		return &Loader{}, nil
	}
	cache, err := lru.New[tosca.Hash, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache}, nil
}

// Load decodes the given program text, or fetches it from the cache, and
// returns a new interpreter for it.
func (l *Loader) Load(program string, config Config) (*Interpreter, error) {
	code, err := l.decode(program)
	if err != nil {
		return nil, err
	}
	return newInterpreter(code, config)
}

// decode converts the program text into byte code, using the cache if
// available. Invalid programs are never cached.
func (l *Loader) decode(program string) ([]byte, error) {
	if l.cache == nil {
		return DecodeProgram(program)
	}

	hash := Keccak256([]byte(program))
	if code, exists := l.cache.Get(hash); exists {
		return code, nil
	}

	code, err := DecodeProgram(program)
	if err != nil {
		return nil, err
	}
	if len(code) <= maxCachedCodeLength {
		l.cache.Add(hash, code)
	}
	return code, nil
}

// Len returns the number of cached programs.
func (l *Loader) Len() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}
