package com

import (
	"net/http"
	"sync"
	"time"

	"github.com/duosnap/booth/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	maxMessageSize = 64 * 1024
	pongTime       = 60 * time.Second
	pingTime       = pongTime * 9 / 10
	writeWait      = 10 * time.Second
)

type MessageHandler func(message []byte, err error)

// WS is a server-side websocket connection with serialized
// reads and writes and an application-level ping/pong keepalive.
type WS struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
	log  *logger.Logger

	// OnMessage must be set before Listen is called.
	OnMessage MessageHandler

	// Done closes when the read pump exits, i.e. exactly once
	// per connection no matter how the transport went down.
	Done chan struct{}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	WriteBufferPool: &sync.Pool{},
	// the booth has no cross-origin story, same as the old backend
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer upgrades an incoming HTTP request to a websocket connection.
func NewServer(w http.ResponseWriter, r *http.Request, log *logger.Logger) (*WS, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &WS{
		conn: conn,
		send: make(chan []byte, 16),
		log:  log,
		Done: make(chan struct{}),
	}, nil
}

// Listen starts the write pump and blocks reading messages until
// the connection terminates.
func (ws *WS) Listen() {
	go ws.writer()
	ws.reader()
}

// reader pumps messages from the websocket connection to the OnMessage
// callback. Serializes all websocket reads.
func (ws *WS) reader() {
	defer func() {
		ws.Close()
		close(ws.Done)
	}()
	ws.conn.SetReadLimit(maxMessageSize)
	_ = ws.conn.SetReadDeadline(time.Now().Add(pongTime))
	ws.conn.SetPongHandler(func(string) error {
		return ws.conn.SetReadDeadline(time.Now().Add(pongTime))
	})
	for {
		_, message, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.log.Debug().Err(err).Msg("ws read fail")
			}
			return
		}
		if ws.OnMessage != nil {
			ws.OnMessage(message, nil)
		}
	}
}

// writer pumps messages from the send channel to the websocket connection.
// Serializes all websocket writes.
func (ws *WS) writer() {
	ticker := time.NewTicker(pingTime)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()
	for {
		select {
		case message, ok := <-ws.send:
			_ = ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ws.Done:
			return
		}
	}
}

// Write queues a message for the write pump. Messages queued after
// the connection went down are dropped.
func (ws *WS) Write(data []byte) {
	select {
	case ws.send <- data:
	case <-ws.Done:
	}
}

func (ws *WS) Close() {
	ws.once.Do(func() {
		_ = ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = ws.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = ws.conn.Close()
	})
}
