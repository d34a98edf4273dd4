package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gorillaws "github.com/gorilla/websocket"

	ws "mediavault/internal/infrastructure/websocket"
)

// Events subscribes to the server change feed. The channel closes when ctx is
// cancelled or the connection drops. Pings, pongs and error frames are not
// forwarded.
func (c *Client) Events(ctx context.Context) (<-chan ws.Event, error) {
	endpoint, err := eventsURL(c.baseURL)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	dialer := gorillaws.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("event feed unavailable: %s", resp.Status)}
		}
		return nil, err
	}

	events := make(chan ws.Event, 16)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(events)
		defer conn.Close()
		for {
			var event ws.Event
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			if event.Type != ws.EventTypeChange {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func eventsURL(base string) (string, error) {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://") + "/api/events", nil
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://") + "/api/events", nil
	default:
		return "", fmt.Errorf("unsupported server url %q", base)
	}
}
