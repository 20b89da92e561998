// Package sse extracts debate protocol frames from a server-sent event
// byte stream.
//
// The wire format is line-oriented: each event arrives as a single
// "data: <payload>" line followed by a blank-line terminator. The scanner
// consumes arbitrarily-chunked bytes from an io.Reader and yields the
// payload of each complete data line, in order. A line is never considered
// complete until its terminating newline has been observed, so chunk
// boundaries falling mid-line or mid-rune cannot corrupt or split a frame.
//
// Malformed payloads are not a concern at this layer; the scanner only
// frames. Classification and JSON decoding happen in the stream package.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// dataPrefix marks a frame-carrying line. Lines without it (blank event
// terminators, comments, auxiliary fields like "event:" or "id:") are
// skipped.
const dataPrefix = "data:"

// Scanner reads protocol frames from an SSE byte stream.
// It is not safe for concurrent use; a stream has exactly one reader.
type Scanner struct {
	reader *bufio.Reader
	done   bool
}

// NewScanner creates a Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReaderSize(r, 4096)}
}

// Next returns the payload of the next data frame in the stream.
// It returns io.EOF when the stream ends. A trailing line with no
// terminating newline is discarded, not emitted: without the newline the
// server never finished writing it.
func (s *Scanner) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for {
		line, err := s.readLine()
		if err != nil {
			s.done = true
			return "", err
		}

		payload, ok := strings.CutPrefix(line, dataPrefix)
		if !ok {
			continue
		}
		// A single leading space after the colon is part of the field
		// syntax, not the payload.
		if len(payload) > 0 && payload[0] == ' ' {
			payload = payload[1:]
		}
		return payload, nil
	}
}

// readLine reads one complete line, stripping the terminator. It handles
// LF, CRLF, and bare CR line endings. At EOF any accumulated partial line
// is dropped and io.EOF is returned.
func (s *Scanner) readLine() (string, error) {
	var line strings.Builder
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", io.EOF
			}
			return "", err
		}

		if b == '\n' {
			return line.String(), nil
		}

		if b == '\r' {
			// Consume the LF of a CRLF pair if present.
			next, err := s.reader.ReadByte()
			if err == nil && next != '\n' {
				_ = s.reader.UnreadByte()
			}
			return line.String(), nil
		}

		line.WriteByte(b)
	}
}
