package tesseract

import (
	"io"
	"log/slog"
	"sync"
)

// clientPool haelt hoechstens cap(idle) freie Clients. Ueberzaehlige Clients
// werden bei put geschlossen, Close schliesst alle freien Clients.
type clientPool[T io.Closer] struct {
	mu     sync.Mutex
	idle   chan T
	newFn  func() (T, error)
	closed bool
}

func newClientPool[T io.Closer](size int, newFn func() (T, error)) *clientPool[T] {
	if size < 1 {
		size = 1
	}
	return &clientPool[T]{idle: make(chan T, size), newFn: newFn}
}

func (p *clientPool[T]) get() (T, error) {
	select {
	case c := <-p.idle:
		return c, nil
	default:
		return p.newFn()
	}
}

func (p *clientPool[T]) put(c T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		select {
		case p.idle <- c:
			return
		default:
		}
	}
	closeClient(c)
}

// Close schliesst alle freien Clients; spaetere put-Aufrufe schliessen direkt
func (p *clientPool[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for {
		select {
		case c := <-p.idle:
			closeClient(c)
		default:
			return nil
		}
	}
}

func closeClient[T io.Closer](c T) {
	if err := c.Close(); err != nil {
		slog.Warn("tesseract client close", "error", err)
	}
}
