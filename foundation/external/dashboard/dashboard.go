// Package dashboard pushes stabilized emotion events to a remote dashboard
// over a websocket.
package dashboard

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

type Socket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func Dial(scheme, host, path, apiKey string) (*Socket, error) {
	u := url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   path,
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), http.Header{"api-key": []string{apiKey}})
	if err != nil {
		return nil, err
	}

	return &Socket{conn: conn}, nil
}

func (s *Socket) Send(data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(data)
}

func (s *Socket) Close() error {
	return s.conn.Close()
}
