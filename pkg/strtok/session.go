package strtok

import (
	"errors"
	"fmt"

	"github.com/spicery/strtok/pkg/list"
)

var (
	// ErrNoString is returned when a session is split or read before any
	// string has been set.
	ErrNoString = errors.New("no string set")

	// ErrStale is returned when the recorded tokens no longer match the
	// buffer they were taken from.
	ErrStale = errors.New("tokens are out of sync with the string")
)

// Session pairs a string buffer with the list of tokens split from it. The
// same session can be reused for any number of strings.
type Session struct {
	buf       Buffer
	hasString bool
	tokens    *list.List[*Token]
	epoch     uint64
	released  int
	closed    bool
}

type sessionOptions struct {
	limit int
}

// Option configures a Session.
type Option func(*sessionOptions)

// WithLimit caps the number of tokens a single Split may record.
func WithLimit(n int) Option {
	return func(o *sessionOptions) {
		o.limit = n
	}
}

// New creates an empty session.
func New(opts ...Option) (*Session, error) {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.limit < 0 {
		return nil, fmt.Errorf("%w: negative token limit %d", list.ErrParameter, o.limit)
	}
	s := &Session{}
	s.tokens = list.New(
		list.WithDestroy(s.releaseToken),
		list.WithLimit[*Token](o.limit),
	)
	return s, nil
}

// releaseToken detaches a discarded token from the buffer. The buffer itself
// belongs to the session and is never touched here.
func (s *Session) releaseToken(t *Token) error {
	s.released++
	return t.release()
}

func (s *Session) check() error {
	if s == nil {
		return fmt.Errorf("%w: nil session", list.ErrParameter)
	}
	if s.closed {
		return fmt.Errorf("%w: session closed", list.ErrParameter)
	}
	return nil
}

// SetString loads a copy of str into the session. Tokens from an earlier
// split become stale but stay in the list until the next Split.
func (s *Session) SetString(str string) error {
	if err := s.check(); err != nil {
		return err
	}
	s.buf.Set(str)
	s.hasString = true
	return nil
}

// Split tokenizes the current string in place on any of the runes in delims.
// Empty runs between delimiters are skipped. Any previously recorded tokens
// are discarded first.
func (s *Session) Split(delims string) error {
	if err := s.check(); err != nil {
		return err
	}
	if delims == "" {
		return fmt.Errorf("%w: empty delimiter set", list.ErrParameter)
	}
	if !s.hasString {
		return ErrNoString
	}
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	err := s.buf.split(delims, func(start, end int) error {
		return s.tokens.Append(&Token{buf: &s.buf, epoch: s.buf.epoch, start: start, end: end})
	})
	if err != nil {
		// Leave no partial result behind.
		if cerr := s.tokens.Clear(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return fmt.Errorf("splitting string: %w", err)
	}
	s.epoch = s.buf.epoch
	return nil
}

// InSync reports whether the recorded tokens were split from the current
// contents of the buffer.
func (s *Session) InSync() bool {
	return s.check() == nil && s.hasString && s.epoch == s.buf.epoch
}

func (s *Session) checkSync() error {
	if err := s.check(); err != nil {
		return err
	}
	if !s.hasString {
		return ErrNoString
	}
	if s.epoch != s.buf.epoch {
		return ErrStale
	}
	return nil
}

// Count returns the number of recorded tokens.
func (s *Session) Count() int {
	if s.check() != nil {
		return 0
	}
	return s.tokens.Count()
}

// Released returns how many tokens have been discarded over the life of the
// session.
func (s *Session) Released() int {
	if s == nil {
		return 0
	}
	return s.released
}

// Token returns the token view at index.
func (s *Session) Token(index int) (*Token, error) {
	if err := s.checkSync(); err != nil {
		return nil, err
	}
	return s.tokens.Get(index)
}

// TokenAt returns the text of the token at index.
func (s *Session) TokenAt(index int) (string, error) {
	t, err := s.Token(index)
	if err != nil {
		return "", err
	}
	return t.Text()
}

// Tokens returns the text of every token in order.
func (s *Session) Tokens() ([]string, error) {
	if err := s.checkSync(); err != nil {
		return nil, err
	}
	texts := make([]string, 0, s.tokens.Count())
	err := s.Traverse(func(text string) error {
		texts = append(texts, text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return texts, nil
}

// Traverse calls fn with the text of each token in order.
func (s *Session) Traverse(fn func(string) error) error {
	if err := s.checkSync(); err != nil {
		return err
	}
	return s.tokens.Traverse(func(t *Token) error {
		text, err := t.Text()
		if err != nil {
			return err
		}
		return fn(text)
	})
}

// String returns the buffer up to its first terminator. After a split this
// is only the first token's run.
func (s *Session) String() string {
	if s.check() != nil {
		return ""
	}
	return s.buf.String()
}

// HasString reports whether a string has been set.
func (s *Session) HasString() bool {
	return s.check() == nil && s.hasString
}

// Close releases the tokens and the buffer. Closing twice is a no-op.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	err := s.tokens.Destroy()
	s.buf.Reset()
	s.hasString = false
	s.closed = true
	return err
}
