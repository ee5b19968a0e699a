// Package utils holds small helpers shared by the drivemirror packages.
package utils

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"time"
)

// LogInterceptor implements io.Writer and prefixes every complete line written to it with a
// sequence number and a timestamp. Partial lines are held back until their newline arrives or
// Close is called.
type LogInterceptor struct {
	target io.Writer
	now    func() time.Time

	mu      sync.Mutex
	seq     uint64
	pending bytes.Buffer
}

func NewLogInterceptor(target io.Writer) *LogInterceptor {
	return &LogInterceptor{
		target: target,
		now:    time.Now,
	}
}

func (i *LogInterceptor) writeFormattedLine(line []byte) error {
	i.seq++

	var buf bytes.Buffer
	buf.WriteString(slog.Uint64("line", i.seq).String())
	buf.WriteByte(' ')
	buf.WriteString(slog.String("time", i.now().Format(time.RFC3339)).String())
	buf.WriteByte(' ')
	buf.Write(bytes.TrimRight(line, "\r"))
	buf.WriteByte('\n')

	_, err := i.target.Write(buf.Bytes())
	return err
}

// Write reports len(p) on success so callers such as slog handlers never see a short write.
func (i *LogInterceptor) Write(p []byte) (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.pending.Write(p)
	for {
		idx := bytes.IndexByte(i.pending.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := i.pending.Next(idx + 1)
		if err := i.writeFormattedLine(line[:idx]); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Close flushes a trailing partial line.
func (i *LogInterceptor) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.pending.Len() == 0 {
		return nil
	}
	rest := bytes.Clone(i.pending.Bytes())
	i.pending.Reset()
	return i.writeFormattedLine(rest)
}
