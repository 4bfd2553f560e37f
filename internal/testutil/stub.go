// Package testutil provides test doubles shared by the package tests.
package testutil

// StubAllocator implements the track.Allocator contract with deterministic
// addresses and scriptable failures. It performs no real allocation.
type StubAllocator struct {
	// NextErr is returned by the next Alloc, AllocZero, or Realloc call
	// and then cleared.
	NextErr error

	// FreeCalls counts Free invocations per address.
	FreeCalls map[uintptr]int

	// AllocSizes records every size handed out, in order.
	AllocSizes []int

	next uintptr
}

// NewStubAllocator returns a stub whose addresses start at 0x1000 and step
// by 16.
func NewStubAllocator() *StubAllocator {
	return &StubAllocator{
		FreeCalls: make(map[uintptr]int),
		next:      0x1000,
	}
}

func (s *StubAllocator) takeErr() error {
	err := s.NextErr
	s.NextErr = nil
	return err
}

func (s *StubAllocator) grant(size int) uintptr {
	addr := s.next
	s.next += 16
	s.AllocSizes = append(s.AllocSizes, size)
	return addr
}

func (s *StubAllocator) Alloc(size int) (uintptr, error) {
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	return s.grant(size), nil
}

func (s *StubAllocator) AllocZero(count, size int) (uintptr, error) {
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	return s.grant(count * size), nil
}

func (s *StubAllocator) Realloc(addr uintptr, size int) (uintptr, error) {
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	if size == 0 {
		s.Free(addr)
		return 0, nil
	}
	return s.grant(size), nil
}

func (s *StubAllocator) Free(addr uintptr) {
	s.FreeCalls[addr]++
}
