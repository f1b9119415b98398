package colour

import (
	"fmt"
	"iter"
)

// FullLevels is the number of values per channel in the complete 24-bit space.
const FullLevels = 256

// Source is an indexable, finite sequence of colours. Implementations must be
// safe for concurrent calls to At.
type Source interface {
	// Len returns the number of colours in the source.
	Len() int
	// At returns the colour at index i, for 0 <= i < Len().
	At(i int) RGB
}

// Stepped is implemented by sources that can also be walked lazily in index
// order without computing each position from scratch.
type Stepped interface {
	Source
	All() iter.Seq[RGB]
}

// Space is the cube of colours with a fixed number of levels per channel,
// ordered with R varying slowest and B fastest.
//
// With 256 levels every 24-bit colour is enumerated. With fewer levels the
// channel digits are spread evenly over [0, 255], so 2 levels yields the eight
// corners of the RGB cube.
type Space struct {
	levels int
}

// NewSpace returns a colour space with the given number of levels per channel.
func NewSpace(levels int) (Space, error) {
	if levels < 2 || levels > FullLevels {
		return Space{}, fmt.Errorf("levels must be between 2 and %d, got %d", FullLevels, levels)
	}
	return Space{levels: levels}, nil
}

// FullSpace returns the complete 256³ colour space.
func FullSpace() Space {
	return Space{levels: FullLevels}
}

// Levels returns the number of values per channel.
func (s Space) Levels() int {
	return s.levels
}

// Len returns the number of colours in the space.
func (s Space) Len() int {
	return s.levels * s.levels * s.levels
}

// At returns the colour at index i using base-levels digit extraction.
func (s Space) At(i int) RGB {
	l := s.levels
	return RGB{
		R: s.value(i / (l * l)),
		G: s.value((i / l) % l),
		B: s.value(i % l),
	}
}

// Index returns the position of c in the space. It reports false when c is
// not one of the space's colours.
func (s Space) Index(c RGB) (int, bool) {
	r, ok := s.digit(c.R)
	if !ok {
		return 0, false
	}
	g, ok := s.digit(c.G)
	if !ok {
		return 0, false
	}
	b, ok := s.digit(c.B)
	if !ok {
		return 0, false
	}
	return (r*s.levels+g)*s.levels + b, true
}

// All returns a lazy sequence over the space in index order, driven by a
// Stepper. Each call starts again from the first colour.
func (s Space) All() iter.Seq[RGB] {
	return func(yield func(RGB) bool) {
		st := s.Stepper()
		for {
			c, ok := st.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Stepper returns a stepping enumerator positioned at the first colour.
func (s Space) Stepper() *Stepper {
	return &Stepper{space: s}
}

func (s Space) value(d int) uint8 {
	if s.levels == FullLevels {
		return uint8(d)
	}
	return uint8(d * 255 / (s.levels - 1))
}

func (s Space) digit(v uint8) (int, bool) {
	if s.levels == FullLevels {
		return int(v), true
	}
	d := (int(v)*(s.levels-1) + 254) / 255
	if s.value(d) != v {
		return 0, false
	}
	return d, true
}

// Stepper walks a Space by incrementing the least significant channel and
// carrying on overflow.
type Stepper struct {
	space Space
	cur   [3]int
	done  bool
}

// Next returns the current colour and advances. It reports false once the
// space is exhausted.
func (st *Stepper) Next() (RGB, bool) {
	if st.done {
		return RGB{}, false
	}
	s := st.space
	c := RGB{R: s.value(st.cur[0]), G: s.value(st.cur[1]), B: s.value(st.cur[2])}

	last := s.levels - 1
	switch {
	case st.cur[2] < last:
		st.cur[2]++
	case st.cur[1] < last:
		st.cur[2] = 0
		st.cur[1]++
	case st.cur[0] < last:
		st.cur[2] = 0
		st.cur[1] = 0
		st.cur[0]++
	default:
		// R would carry past the last level.
		st.done = true
	}
	return c, true
}

// Reset positions the stepper back at the first colour.
func (st *Stepper) Reset() {
	st.cur = [3]int{}
	st.done = false
}
