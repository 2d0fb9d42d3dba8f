// elMap: interpreting CIGAR strings and optional fields of SAM records.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elmap/blob/master/LICENSE.txt>.

package mapping

import (
	"fmt"
	"sync"

	"github.com/exascience/elmap/utils"
)

// A Source gives access to the raw text of a mapping record. Any
// record representation that implements Source can be interpreted
// with a Cache.
type Source interface {
	// IsUnmapped reports whether the record has no alignment.
	IsUnmapped() bool

	// CigarStr returns the raw CIGAR field.
	CigarStr() string

	// TagText returns the whole text of the named optional field,
	// for example "NM:i:0" for name "NM", and false if the record
	// has no such field.
	TagText(name string) (text string, found bool)
}

/*
A Cache holds the interpreted CIGAR string and optional fields of a
single mapping record. Entries are computed on first request and
never recomputed or evicted. The zero Cache is valid and empty.

A Cache must not be copied after first use, and must only ever be
used with the Source it belongs to.

It is safe to use a Cache from multiple goroutines. Parsing happens
outside the lock, so concurrent first requests may parse the same
text more than once, but all of them return the value that was
stored first.
*/
type Cache struct {
	mutex     sync.Mutex
	alignment []AlignOp
	tags      map[utils.Symbol]TagValue
}

// Alignment returns the operations of the record's CIGAR string.
//
// It fails with ErrIllegalState if the record is unmapped, and with
// a *FormatError if the CIGAR string is malformed.
func (cache *Cache) Alignment(src Source) ([]AlignOp, error) {
	if src.IsUnmapped() {
		return nil, fmt.Errorf("%w: alignment of an unmapped record", ErrIllegalState)
	}
	cache.mutex.Lock()
	alignment := cache.alignment
	cache.mutex.Unlock()
	if alignment != nil {
		return alignment, nil
	}
	alignment, err := ScanCigar(src.CigarStr())
	if err != nil {
		return nil, err
	}
	cache.mutex.Lock()
	if cache.alignment == nil {
		cache.alignment = alignment
	} else {
		alignment = cache.alignment
	}
	cache.mutex.Unlock()
	return alignment, nil
}

func (cache *Cache) lookup(key utils.Symbol) (value TagValue, found bool) {
	cache.mutex.Lock()
	value, found = cache.tags[key]
	cache.mutex.Unlock()
	return
}

// Tag returns the type and payload of the named optional field.
//
// It fails with ErrNoSuchField if the record has no such field, and
// with a *FormatError if the field's text is malformed.
func (cache *Cache) Tag(src Source, name string) (TagValue, error) {
	key := utils.Intern(name)
	if value, found := cache.lookup(key); found {
		return value, nil
	}
	text, found := src.TagText(name)
	if !found {
		return TagValue{}, fmt.Errorf("%w: no tag with name %v", ErrNoSuchField, name)
	}
	_, value, err := ParseTagText(text)
	if err != nil {
		return TagValue{}, err
	}
	cache.mutex.Lock()
	if cached, found := cache.tags[key]; found {
		value = cached
	} else {
		if cache.tags == nil {
			cache.tags = make(map[utils.Symbol]TagValue)
		}
		cache.tags[key] = value
	}
	cache.mutex.Unlock()
	return value, nil
}

// HasTag reports whether the record has the named optional field,
// without interpreting it.
func (cache *Cache) HasTag(src Source, name string) bool {
	if _, found := cache.lookup(utils.Intern(name)); found {
		return true
	}
	_, found := src.TagText(name)
	return found
}

// IntTag returns the value of the named Integer field.
func (cache *Cache) IntTag(src Source, name string) (int64, error) {
	value, err := cache.Tag(src, name)
	if err != nil {
		return 0, err
	}
	return value.Int()
}

// FloatTag returns the value of the named Float or Integer field.
func (cache *Cache) FloatTag(src Source, name string) (float64, error) {
	value, err := cache.Tag(src, name)
	if err != nil {
		return 0, err
	}
	return value.Float()
}

// CharTag returns the value of the named Char field.
func (cache *Cache) CharTag(src Source, name string) (byte, error) {
	value, err := cache.Tag(src, name)
	if err != nil {
		return 0, err
	}
	return value.Char()
}

// StringTag returns the payload of the named field, whatever its type.
func (cache *Cache) StringTag(src Source, name string) (string, error) {
	value, err := cache.Tag(src, name)
	if err != nil {
		return "", err
	}
	return value.Payload, nil
}

// A Mapping pairs a Source with its Cache.
type Mapping struct {
	src   Source
	cache Cache
}

// New returns a Mapping with empty caches for the given record.
func New(src Source) *Mapping {
	return &Mapping{src: src}
}

// Source returns the record the Mapping interprets.
func (m *Mapping) Source() Source { return m.src }

// Alignment is Cache.Alignment for the Mapping's record.
func (m *Mapping) Alignment() ([]AlignOp, error) { return m.cache.Alignment(m.src) }

// Tag is Cache.Tag for the Mapping's record.
func (m *Mapping) Tag(name string) (TagValue, error) { return m.cache.Tag(m.src, name) }

// HasTag is Cache.HasTag for the Mapping's record.
func (m *Mapping) HasTag(name string) bool { return m.cache.HasTag(m.src, name) }

// IntTag is Cache.IntTag for the Mapping's record.
func (m *Mapping) IntTag(name string) (int64, error) { return m.cache.IntTag(m.src, name) }

// FloatTag is Cache.FloatTag for the Mapping's record.
func (m *Mapping) FloatTag(name string) (float64, error) { return m.cache.FloatTag(m.src, name) }

// CharTag is Cache.CharTag for the Mapping's record.
func (m *Mapping) CharTag(name string) (byte, error) { return m.cache.CharTag(m.src, name) }

// StringTag is Cache.StringTag for the Mapping's record.
func (m *Mapping) StringTag(name string) (string, error) { return m.cache.StringTag(m.src, name) }

// Fields is a Source that keeps a record's raw text in memory.
type Fields struct {
	Unmapped bool
	Cigar    string
	Tags     []string
}

// IsUnmapped implements Source.
func (f *Fields) IsUnmapped() bool { return f.Unmapped }

// CigarStr implements Source.
func (f *Fields) CigarStr() string { return f.Cigar }

// TagText implements Source.
func (f *Fields) TagText(name string) (string, bool) { return FindTagText(f.Tags, name) }
