package chat

import "strings"

// Smoother re-chunks a token stream at word boundaries before delivery.
// Providers emit deltas at arbitrary byte boundaries; buffering the trailing
// partial word reduces visual choppiness for the consumer without changing
// content.
type Smoother struct {
	buf  string
	emit func(string) error
}

// NewSmoother returns a Smoother that forwards complete words to emit.
func NewSmoother(emit func(string) error) *Smoother {
	return &Smoother{emit: emit}
}

// Feed consumes one delta, releasing everything up to the last whitespace
// boundary and holding the rest.
func (s *Smoother) Feed(text string) error {
	s.buf += text
	i := strings.LastIndexAny(s.buf, " \t\n")
	if i < 0 {
		return nil
	}
	out := s.buf[:i+1]
	s.buf = s.buf[i+1:]
	return s.emit(out)
}

// Flush releases any held partial word at end of stream.
func (s *Smoother) Flush() error {
	if s.buf == "" {
		return nil
	}
	out := s.buf
	s.buf = ""
	return s.emit(out)
}
