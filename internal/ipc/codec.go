// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ipc

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/jmsr/castcore/internal/logging"
)

const maxLineSize = 1 << 20 // 1 MiB; generous for a property-change event payload

// LineReader turns an inbound byte stream into logical, newline-delimited
// lines. A lone CR immediately preceding the LF is stripped. Malformed lines
// are the caller's concern — LineReader only slices lines, it never
// interprets them, so one bad line can never poison the stream here.
type LineReader struct {
	scanner *bufio.Scanner
}

// NewLineReader wraps r for line-oriented reads.
func NewLineReader(r io.Reader) *LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLineSize)
	return &LineReader{scanner: scanner}
}

// ReadLine returns the next line with its trailing CR (if any) removed, or
// an error (typically io.EOF) once the stream ends.
func (lr *LineReader) ReadLine() ([]byte, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return bytes.TrimSuffix(lr.scanner.Bytes(), []byte{'\r'}), nil
}

// LineWriter serializes writes from multiple goroutines into a single
// newline-terminated frame per call, guaranteeing a frame is never split by
// a concurrent writer.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineWriter wraps w for serialized line writes.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// WriteLine writes line followed by a single newline, atomically with
// respect to other WriteLine calls on the same LineWriter.
func (lw *LineWriter) WriteLine(line []byte) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, err := lw.w.Write(line); err != nil {
		return err
	}
	_, err := lw.w.Write([]byte{'\n'})
	return err
}

// LogDiscardedLine logs a line that failed to parse as JSON, so a single
// malformed frame is visible without killing the reader loop.
func LogDiscardedLine(line []byte, err error) {
	logging.Warn().Err(err).Str("line", truncate(line, 200)).Msg("ipc: discarding malformed frame")
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
