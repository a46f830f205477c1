package pipeline

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformStore is a host-side uniform table. A name holds exactly one
// value; setting it with another type replaces the old value.
// It is safe for concurrent reads while a draw is in flight. A nil store
// resolves nothing, so the stages report every lookup as missing.
type UniformStore struct {
	mu   sync.RWMutex
	mats map[string]mgl32.Mat4
	vecs map[string]mgl32.Vec3
}

func NewUniformStore() *UniformStore {
	return &UniformStore{
		mats: make(map[string]mgl32.Mat4),
		vecs: make(map[string]mgl32.Vec3),
	}
}

func (s *UniformStore) SetMat4(name string, m mgl32.Mat4) {
	s.mu.Lock()
	delete(s.vecs, name)
	s.mats[name] = m
	s.mu.Unlock()
}

func (s *UniformStore) SetVec3(name string, v mgl32.Vec3) {
	s.mu.Lock()
	delete(s.mats, name)
	s.vecs[name] = v
	s.mu.Unlock()
}

func (s *UniformStore) Mat4(name string) (mgl32.Mat4, bool) {
	if s == nil {
		return mgl32.Mat4{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mats[name]
	return m, ok
}

func (s *UniformStore) Vec3(name string) (mgl32.Vec3, bool) {
	if s == nil {
		return mgl32.Vec3{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vecs[name]
	return v, ok
}

func (s *UniformStore) Delete(name string) {
	s.mu.Lock()
	delete(s.mats, name)
	delete(s.vecs, name)
	s.mu.Unlock()
}

// Names returns every bound uniform name in sorted order.
func (s *UniformStore) Names() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	names := make([]string, 0, len(s.mats)+len(s.vecs))
	for n := range s.mats {
		names = append(names, n)
	}
	for n := range s.vecs {
		names = append(names, n)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}
