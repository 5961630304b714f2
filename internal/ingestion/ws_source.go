package ingestion

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxDialRetries = 3
	baseRetryDelay = 500 * time.Millisecond
)

// WSResultSource streams raw results over a websocket feed. Some scraper
// deployments push each result as one JSON message instead of writing batch
// dumps.
type WSResultSource struct {
	endpoint string
	logger   *log.Logger
}

// NewWSResultSource creates a websocket-backed result source.
func NewWSResultSource(endpoint string, logger *log.Logger) *WSResultSource {
	if logger == nil {
		logger = log.Default()
	}
	return &WSResultSource{endpoint: endpoint, logger: logger}
}

// dial connects with exponential backoff: 500ms, 1s, 2s.
func (s *WSResultSource) dial(ctx context.Context) (*websocket.Conn, error) {
	var lastErr error
	for attempt := 0; attempt < maxDialRetries; attempt++ {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.endpoint, nil)
		if err == nil {
			return conn, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		delay := baseRetryDelay * time.Duration(1<<attempt)
		s.logger.Printf("[ws] retry %d/%d dialing %s after %v: %v", attempt+1, maxDialRetries, s.endpoint, delay, err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// Subscribe returns a channel of raw results from the live feed. The channel
// is closed when the context is cancelled or the connection drops.
func (s *WSResultSource) Subscribe(ctx context.Context) (<-chan RawResult, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("[ws] subscribed to result feed: %s", s.endpoint)

	results := make(chan RawResult, 100)

	// Close the connection when the context ends so the read loop unblocks.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(results)
		defer conn.Close()

		for {
			var r RawResult
			if err := conn.ReadJSON(&r); err != nil {
				if ctx.Err() == nil {
					s.logger.Printf("[ws] feed closed: %v", err)
				}
				return
			}
			select {
			case results <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results, nil
}
