package pdfexport

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// BlobStore hands out short-lived handles to rendered blobs. Every handle
// created must be revoked; Live reports the ones that were not.
type BlobStore struct {
	mu    sync.Mutex
	seq   uint64
	blobs map[string][]byte
}

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

func (s *BlobStore) Create(data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	handle := fmt.Sprintf("blob:%d", s.seq)
	s.blobs[handle] = data
	return handle
}

func (s *BlobStore) Open(handle string) (io.Reader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[handle]
	if !ok {
		return nil, fmt.Errorf("blob handle %q is not live", handle)
	}
	return bytes.NewReader(data), nil
}

// Revoke drops the blob. Revoking twice is a no-op.
func (s *BlobStore) Revoke(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, handle)
}

func (s *BlobStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
