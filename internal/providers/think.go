package providers

import "strings"

// ThinkSplitter separates a reasoning model's inline thinking trace from its
// answer as the stream arrives. With reasoning_format "raw" the trace is
// delimited by tags (e.g. <think>…</think>) that can be split across
// arbitrary delta boundaries, so the splitter holds back any suffix that
// could still turn out to be a partial tag.
type ThinkSplitter struct {
	open    string
	close   string
	buf     string
	inThink bool
	emit    func(Delta) error
}

// NewThinkSplitter returns a splitter for the given tag name that forwards
// separated output to emit.
func NewThinkSplitter(tag string, emit func(Delta) error) *ThinkSplitter {
	return &ThinkSplitter{
		open:  "<" + tag + ">",
		close: "</" + tag + ">",
		emit:  emit,
	}
}

// Feed consumes one content delta.
func (s *ThinkSplitter) Feed(text string) error {
	s.buf += text
	for {
		tag := s.open
		if s.inThink {
			tag = s.close
		}

		if i := strings.Index(s.buf, tag); i >= 0 {
			if err := s.emitSpan(s.buf[:i]); err != nil {
				return err
			}
			s.buf = s.buf[i+len(tag):]
			s.inThink = !s.inThink
			continue
		}

		// No complete tag: release everything except a suffix that could be
		// the start of one.
		hold := partialTagSuffix(s.buf, tag)
		if err := s.emitSpan(s.buf[:len(s.buf)-hold]); err != nil {
			return err
		}
		s.buf = s.buf[len(s.buf)-hold:]
		return nil
	}
}

// Flush releases any held text at end of stream. An unterminated trace is
// flushed as reasoning.
func (s *ThinkSplitter) Flush() error {
	out := s.buf
	s.buf = ""
	return s.emitSpan(out)
}

func (s *ThinkSplitter) emitSpan(text string) error {
	if text == "" {
		return nil
	}
	if s.inThink {
		return s.emit(Delta{Reasoning: text})
	}
	return s.emit(Delta{Text: text})
}

// partialTagSuffix returns the length of the longest suffix of buf that is a
// proper prefix of tag.
func partialTagSuffix(buf, tag string) int {
	max := len(tag) - 1
	if max > len(buf) {
		max = len(buf)
	}
	for n := max; n > 0; n-- {
		if strings.HasPrefix(tag, buf[len(buf)-n:]) {
			return n
		}
	}
	return 0
}
