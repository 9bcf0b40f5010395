// Package booth implements the pairing backend: a lobby of two-member
// rooms with time-bounded sessions, a best-effort WebRTC signaling
// relay between the members of a room, and the photo-strip HTTP API.
package booth

import (
	"context"
	"net/http"

	"github.com/duosnap/booth/pkg/booth/strip"
	"github.com/duosnap/booth/pkg/config"
	"github.com/duosnap/booth/pkg/logger"
	"github.com/duosnap/booth/pkg/network/httpx"
)

type Booth struct {
	conf   config.BoothConfig
	log    *logger.Logger
	hub    *Hub
	server *httpx.Server
}

func New(conf config.BoothConfig, log *logger.Logger) (*Booth, error) {
	lobby := NewLobby(conf.Booth.Session.Duration, log)
	hub := NewHub(lobby, log)

	store, err := strip.NewStore(conf.Booth.Storage, log)
	if err != nil {
		return nil, err
	}
	photos := NewPhotos(strip.NewPrinter(conf.Booth.Strip), store, log)

	address := conf.Server.Address
	if conf.Server.Https {
		address = conf.Server.Tls.Address
	}
	server, err := httpx.NewServer(
		address,
		func(s *httpx.Server) httpx.Handler {
			h := s.Mux()
			h.HandleFunc("/", index)
			h.Handle("/static/", http.StripPrefix("/static/", httpx.FileServer("./web")))
			h.HandleFunc("/ws", hub.handleUserConnection())
			h.HandleFunc("/process-photos", photos.handleProcess())
			h.HandleFunc("/download/", photos.handleDownload())
			return h
		},
		httpx.WithServerConfig(conf.Server),
		httpx.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &Booth{conf: conf, log: log, hub: hub, server: server}, nil
}

func (b *Booth) Run() { b.server.Run() }

func (b *Booth) Shutdown(ctx context.Context) error { return b.server.Shutdown(ctx) }

func (b *Booth) String() string { return "booth::" + b.server.Addr }

func index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<h1>Photo Booth Backend is Running!</h1>"))
}
