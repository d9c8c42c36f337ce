package capture

import (
	"fmt"
	"image"
	"sync"
)

// ScriptedSource plays back a fixed frame sequence for testing.
type ScriptedSource struct {
	frames    []image.Image
	index     int
	loop      bool
	warmup    int
	openErr   error
	readErr   error
	reads     int
	delivered uint64
	mu        sync.Mutex
	running   bool
}

func NewScriptedSource(frames []image.Image, loop bool) *ScriptedSource {
	return &ScriptedSource{
		frames: frames,
		loop:   loop,
	}
}

func (s *ScriptedSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.openErr != nil {
		return s.openErr
	}

	s.running = true
	s.index = 0
	s.reads = 0
	s.delivered = 0
	return nil
}

func (s *ScriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.delivered = 0
	return nil
}

func (s *ScriptedSource) ReadFrame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil, ErrCameraNotOpen
	}

	if s.readErr != nil {
		return nil, s.readErr
	}

	if s.reads < s.warmup {
		s.reads++
		return nil, fmt.Errorf("%w: warming up", ErrVideoNotReady)
	}

	if len(s.frames) == 0 {
		return nil, fmt.Errorf("no frames available")
	}

	if s.index >= len(s.frames) {
		if s.loop {
			s.index = 0
		} else {
			return nil, fmt.Errorf("no more frames")
		}
	}

	frame := s.frames[s.index]
	s.index++
	s.reads++
	s.delivered++

	return frame, nil
}

func (s *ScriptedSource) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && s.delivered > 0
}

func (s *ScriptedSource) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetFrames replaces the frame sequence and restarts playback.
func (s *ScriptedSource) SetFrames(frames []image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = frames
	s.index = 0
}

// Reset restarts playback from the beginning.
func (s *ScriptedSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = 0
}

// FailOpen makes the next Open calls return err. Pass nil to clear.
func (s *ScriptedSource) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// FailReads makes ReadFrame return err until cleared with nil.
func (s *ScriptedSource) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// SetWarmup makes the first n reads fail, imitating a device that
// needs time before the first frame arrives.
func (s *ScriptedSource) SetWarmup(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warmup = n
}
