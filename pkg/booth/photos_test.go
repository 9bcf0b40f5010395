package booth

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duosnap/booth/pkg/booth/strip"
	"github.com/duosnap/booth/pkg/config"
	"github.com/duosnap/booth/pkg/logger"
	"github.com/goccy/go-json"
)

func testPhotos(t *testing.T) *Photos {
	t.Helper()
	store, err := strip.NewStore(config.Storage{Dir: t.TempDir()}, logger.Default())
	if err != nil {
		t.Fatal(err)
	}
	conf := config.Strip{Width: 100, SlotHeight: 50, MaxPhotos: 6, Quality: 90}
	return NewPhotos(strip.NewPrinter(conf), store, logger.Default())
}

func photoBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 80, 60))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 200, A: 255}), image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, url string, photos int) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for i := 0; i < photos; i++ {
		fw, err := mw.CreateFormFile("photos", "shot.jpeg")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(photoBytes(t)); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProcessAndSingleUseDownload(t *testing.T) {
	p := testPhotos(t)

	rec := httptest.NewRecorder()
	p.handleProcess()(rec, uploadRequest(t, "/process-photos", 3))
	if rec.Code != http.StatusOK {
		t.Fatalf("process status %v: %v", rec.Code, rec.Body)
	}
	var resp processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.URL == "" {
		t.Fatalf("bad response %+v", resp)
	}

	dl := httptest.NewRecorder()
	p.handleDownload()(dl, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	if dl.Code != http.StatusOK {
		t.Fatalf("download status %v", dl.Code)
	}
	if ct := dl.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("content type %v", ct)
	}
	img, err := jpeg.Decode(bytes.NewReader(dl.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if want := image.Rect(0, 0, 100, 300); img.Bounds() != want {
		t.Fatalf("strip %v, want %v", img.Bounds(), want)
	}

	// the strip is gone after the first download
	again := httptest.NewRecorder()
	p.handleDownload()(again, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	if again.Code != http.StatusNotFound {
		t.Fatalf("second download status %v, want 404", again.Code)
	}
}

func TestProcessRejectsBadBatches(t *testing.T) {
	p := testPhotos(t)

	tests := []struct {
		name string
		req  *http.Request
		code int
	}{
		{"wrong method", httptest.NewRequest(http.MethodGet, "/process-photos", nil), http.StatusMethodNotAllowed},
		{"no photos", uploadRequest(t, "/process-photos", 0), http.StatusBadRequest},
		{"too many", uploadRequest(t, "/process-photos", 7), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			p.handleProcess()(rec, tt.req)
			if rec.Code != tt.code {
				t.Fatalf("status %v, want %v", rec.Code, tt.code)
			}
		})
	}
}

func TestDownloadUnknown(t *testing.T) {
	p := testPhotos(t)
	rec := httptest.NewRecorder()
	p.handleDownload()(rec, httptest.NewRequest(http.MethodGet, "/download/missing.jpeg", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %v, want 404", rec.Code)
	}
	evil := httptest.NewRecorder()
	p.handleDownload()(evil, httptest.NewRequest(http.MethodGet, "/download/..%2Fconfig.yaml", nil))
	if evil.Code != http.StatusNotFound {
		t.Fatalf("status %v, want 404", evil.Code)
	}
}
