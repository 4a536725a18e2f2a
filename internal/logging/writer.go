package logging

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// asyncWriter hands lines to a single goroutine that owns the underlying
// file. Writes never block: when the queue is full the line is dropped.
type asyncWriter struct {
	out     io.WriteCloser
	queue   chan []byte
	done    chan struct{}
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

func newAsyncWriter(out io.WriteCloser, size int) *asyncWriter {
	w := &asyncWriter{
		out:   out,
		queue: make(chan []byte, size),
		done:  make(chan struct{}),
	}
	go w.drain()
	return w
}

// Write queues a copy of p; slog reuses its buffers.
func (w *asyncWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return 0, os.ErrClosed
	}

	line := make([]byte, len(p))
	copy(line, p)

	select {
	case w.queue <- line:
	default:
		w.dropped.Add(1)
	}
	return len(p), nil
}

func (w *asyncWriter) drain() {
	defer close(w.done)
	for line := range w.queue {
		_, _ = w.out.Write(line)
	}
}

// Close stops accepting writes, waits for the queue to drain, then closes
// the underlying writer.
func (w *asyncWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done
	return w.out.Close()
}

// dailyFile is a lumberjack file that is also rotated at local midnight.
type dailyFile struct {
	lj   *lumberjack.Logger
	stop chan struct{}
	done chan struct{}
}

func newDailyFile(path string, maxAgeDays int) *dailyFile {
	d := &dailyFile{
		lj: &lumberjack.Logger{
			Filename:  path,
			MaxSize:   100,
			MaxAge:    maxAgeDays,
			LocalTime: true,
			Compress:  true,
		},
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go d.rotateDaily()
	return d
}

func (d *dailyFile) Write(p []byte) (int, error) {
	return d.lj.Write(p)
}

func (d *dailyFile) rotateDaily() {
	defer close(d.done)
	for {
		now := time.Now()
		timer := time.NewTimer(nextMidnight(now).Sub(now))
		select {
		case <-timer.C:
			_ = d.lj.Rotate()
		case <-d.stop:
			timer.Stop()
			return
		}
	}
}

func (d *dailyFile) Close() error {
	close(d.stop)
	<-d.done
	return d.lj.Close()
}

// nextMidnight returns the start of the day after t, in t's location.
func nextMidnight(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day+1, 0, 0, 0, 0, t.Location())
}
