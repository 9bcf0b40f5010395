package httpx

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
)

func TestServerServesAndShutsDown(t *testing.T) {
	srv, err := NewServer(":0", func(s *Server) Handler {
		h := s.Mux()
		h.HandleFunc("/", func(w ResponseWriter, _ *Request) {
			_, _ = w.Write([]byte("ok"))
		})
		return h
	})
	if err != nil {
		t.Fatal(err)
	}
	srv.Run()

	_, port, err := net.SplitHostPort(srv.Addr)
	if err != nil {
		t.Fatal(err)
	}
	addr := "http://127.0.0.1:" + port

	res, err := http.Get(addr + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "ok" {
		t.Fatalf("body %q, want ok", body)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := http.Get(addr + "/"); err == nil {
		t.Fatal("server still serving after shutdown")
	}
}
