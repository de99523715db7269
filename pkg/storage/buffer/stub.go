package buffer

import (
	"sync"

	"lockengine/pkg/primitives"
)

// Stub is an in-memory Manager backed by two plain maps. It is meant for
// tests, where there is no real page cache to decode
// addresses against — callers register the mappings they want ahead of
// time with Register and RegisterRow.
type Stub struct {
	mu    sync.RWMutex
	pages map[primitives.TableSource]primitives.PageHandle
	rows  map[primitives.RowAddress]rowLocation
}

type rowLocation struct {
	page   primitives.PageHandle
	offset primitives.RowOffset
}

// NewStub returns an empty Stub.
func NewStub() *Stub {
	return &Stub{
		pages: make(map[primitives.TableSource]primitives.PageHandle),
		rows:  make(map[primitives.RowAddress]rowLocation),
	}
}

// Register associates a TableSource with the page holding its index root.
func (s *Stub) Register(source primitives.TableSource, page primitives.PageHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[source] = page
}

// RegisterRow associates a RowAddress with the page and offset it decodes
// to.
func (s *Stub) RegisterRow(address primitives.RowAddress, page primitives.PageHandle, offset primitives.RowOffset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[address] = rowLocation{page: page, offset: offset}
}

// GetIndexPage implements Manager.
func (s *Stub) GetIndexPage(source primitives.TableSource) (primitives.PageHandle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[source]
	return page, ok
}

// DecodePointer implements Manager.
func (s *Stub) DecodePointer(address primitives.RowAddress) (primitives.PageHandle, primitives.RowOffset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.rows[address]
	return loc.page, loc.offset, ok
}

var _ Manager = (*Stub)(nil)
