package strtok

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Buffer is a mutable byte buffer that is tokenized in place. Every change to
// its contents advances the epoch, which invalidates tokens taken earlier.
type Buffer struct {
	data  []byte
	epoch uint64
}

// Set replaces the contents with a copy of s, up to its first NUL byte.
func (b *Buffer) Set(s string) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	b.data = []byte(s)
	b.epoch++
}

// Reset drops the contents.
func (b *Buffer) Reset() {
	b.data = nil
	b.epoch++
}

// Epoch returns the current generation of the buffer contents.
func (b *Buffer) Epoch() uint64 {
	return b.epoch
}

// Len returns the raw length of the buffer, including any terminators
// written by Split.
func (b *Buffer) Len() int {
	return len(b.data)
}

// String returns the contents up to the first NUL byte.
func (b *Buffer) String() string {
	return string(b.terminated())
}

func (b *Buffer) terminated() []byte {
	if i := bytes.IndexByte(b.data, 0); i >= 0 {
		return b.data[:i]
	}
	return b.data
}

// split overwrites every delimiter rune with NUL bytes and calls emit for each
// non-empty run between them. Scanning stops at the first NUL already in the
// buffer, so splitting an already split buffer only sees its first token.
func (b *Buffer) split(delims string, emit func(start, end int) error) error {
	b.epoch++
	end := len(b.terminated())
	start := -1
	for i := 0; i < end; {
		r, size := utf8.DecodeRune(b.data[i:])
		if strings.ContainsRune(delims, r) {
			for j := i; j < i+size; j++ {
				b.data[j] = 0
			}
			if start >= 0 {
				if err := emit(start, i); err != nil {
					return err
				}
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		return emit(start, end)
	}
	return nil
}

// Token is a view of one token inside a Buffer. It is only readable while
// the buffer stays at the epoch the token was taken from and the token has
// not been released by its session.
type Token struct {
	buf   *Buffer
	epoch uint64
	start int
	end   int
}

// Text returns the token's characters.
func (t *Token) Text() (string, error) {
	if t == nil || t.buf == nil || t.buf.epoch != t.epoch {
		return "", ErrStale
	}
	return string(t.buf.data[t.start:t.end]), nil
}

// Offset returns the byte offset of the token within its buffer.
func (t *Token) Offset() int {
	return t.start
}

// Len returns the byte length of the token.
func (t *Token) Len() int {
	return t.end - t.start
}

// Valid reports whether Text would succeed.
func (t *Token) Valid() bool {
	return t != nil && t.buf != nil && t.buf.epoch == t.epoch
}

func (t *Token) release() error {
	t.buf = nil
	return nil
}
