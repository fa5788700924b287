package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// LogstashWriter mirrors log output to a Logstash TCP input without ever
// blocking the caller. It keeps one connection open and drops writes while
// Logstash is unreachable, retrying after a cool-down window.
type LogstashWriter struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

// Timeouts tunes the writer's network behavior. Zero fields keep their
// defaults: 2s dial, 1s write, 5s retry cool-down.
type Timeouts struct {
	Dial  time.Duration
	Write time.Duration
	Retry time.Duration
}

var errRetryCooldown = errors.New("logstash: retry cooldown in effect")

// NewLogstashWriter returns a writer safe for concurrent use. The connection
// is established lazily on first write.
func NewLogstashWriter(addr string, timeouts Timeouts) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}
	w := &LogstashWriter{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
	}
	if timeouts.Dial > 0 {
		w.dialTimeout = timeouts.Dial
	}
	if timeouts.Write > 0 {
		w.writeTimeout = timeouts.Write
	}
	if timeouts.Retry > 0 {
		w.retryInterval = timeouts.Retry
	}
	return w, nil
}

// Write implements io.Writer. Delivery is best effort: failures close the
// connection, schedule a retry, and report success to the caller so logging
// never fails the request path.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	data := make([]byte, len(p))
	copy(data, p)
	if data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if err := w.ensureConnLocked(); err != nil {
		return len(p), nil
	}

	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	if _, err := w.conn.Write(data); err != nil {
		w.closeConnLocked()
		w.nextRetry = time.Now().Add(w.retryInterval)
		return len(p), nil
	}
	return len(p), nil
}

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.closeConnLocked()
}

func (w *LogstashWriter) ensureConnLocked() error {
	if w.conn != nil {
		return nil
	}
	now := time.Now()
	if !w.nextRetry.IsZero() && now.Before(w.nextRetry) {
		return errRetryCooldown
	}
	conn, err := net.DialTimeout("tcp", w.addr, w.dialTimeout)
	if err != nil {
		w.nextRetry = time.Now().Add(w.retryInterval)
		return err
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return nil
}

func (w *LogstashWriter) closeConnLocked() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}
