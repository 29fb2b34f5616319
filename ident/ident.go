// Package ident issues the numeric ids and UUIDs that identify scene nodes
// and geometries.
package ident

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Allocator hands out increasing ids starting at 0. Each scene owns one, so
// ids are only unique within the allocator that issued them.
type Allocator struct {
	next atomic.Uint64
}

// NewAllocator returns an allocator whose first id is 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a fresh id.
func (a *Allocator) Next() uint64 {
	return a.next.Add(1) - 1
}

// Peek returns the id the next call to Next will return.
func (a *Allocator) Peek() uint64 {
	return a.next.Load()
}

// Reset restarts numbering at 0.
func (a *Allocator) Reset() {
	a.next.Store(0)
}

// NewUUID returns a random RFC 4122 UUID string.
func NewUUID() string {
	return uuid.NewString()
}
