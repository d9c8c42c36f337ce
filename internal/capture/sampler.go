package capture

import (
	"image"
	"sync"

	"github.com/disintegration/gift"
)

// Default working-buffer dimensions. Full frames are shrunk to this
// size before any per-pixel work, which keeps a tick cheap no matter
// what resolution the device delivers.
const (
	DefaultSampleWidth  = 320
	DefaultSampleHeight = 240
)

// Sampler maintains the pair of fixed low-resolution buffers the
// motion detector compares. Exactly two buffers are ever allocated;
// Ingest rotates them so the oldest is overwritten in place.
type Sampler struct {
	width  int
	height int
	resize *gift.GIFT
	mu     sync.Mutex
	prev   *image.RGBA
	cur    *image.RGBA
	count  uint64
}

// NewSampler creates a sampler with the given working dimensions.
// Nearest-neighbor resampling for speed.
func NewSampler(width, height int) *Sampler {
	if width <= 0 {
		width = DefaultSampleWidth
	}
	if height <= 0 {
		height = DefaultSampleHeight
	}
	return &Sampler{
		width:  width,
		height: height,
		resize: gift.New(gift.Resize(width, height, gift.NearestNeighborResampling)),
	}
}

// Ingest downsamples img into the working buffer. The previously
// current buffer becomes the previous one.
func (s *Sampler) Ingest(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst := s.prev
	if dst == nil {
		dst = image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	}
	s.resize.Draw(dst, img)

	s.prev = s.cur
	s.cur = dst
	s.count++
}

// Frames returns the (previous, current) pair, or ok=false until two
// frames have been ingested. The buffers are owned by the sampler and
// are only valid until the next Ingest.
func (s *Sampler) Frames() (prev, cur *image.RGBA, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count < 2 {
		return nil, nil, false
	}
	return s.prev, s.cur, true
}

// Snapshot returns a copy of the current buffer for the preview
// stream, or nil if nothing has been ingested yet.
func (s *Sampler) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return nil
	}
	out := image.NewRGBA(s.cur.Rect)
	copy(out.Pix, s.cur.Pix)
	return out
}

// Reset drops both buffers so a restarted stream begins clean.
func (s *Sampler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prev = nil
	s.cur = nil
	s.count = 0
}

// FrameCount returns the number of frames ingested since the last
// Reset.
func (s *Sampler) FrameCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Size returns the working-buffer dimensions.
func (s *Sampler) Size() (width, height int) {
	return s.width, s.height
}
