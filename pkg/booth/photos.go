package booth

import (
	"errors"
	"image"
	"net/http"
	"strings"

	"github.com/duosnap/booth/pkg/booth/strip"
	"github.com/duosnap/booth/pkg/logger"
	"github.com/gofrs/uuid"
	"github.com/goccy/go-json"
)

const maxUploadBytes = 32 << 20

// Photos serves the strip compositing endpoints: a batch upload that
// produces one strip, and a single-use download of the result.
type Photos struct {
	printer *strip.Printer
	store   strip.Store
	log     *logger.Logger
}

func NewPhotos(printer *strip.Printer, store strip.Store, log *logger.Logger) *Photos {
	return &Photos{printer: printer, store: store, log: log}
}

type processResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleProcess accepts up to MaxPhotos images in the `photos` multipart
// field and responds with the download URL of the composed strip.
func (p *Photos) handleProcess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			p.fail(w, http.StatusBadRequest, "malformed upload")
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		files := r.MultipartForm.File["photos"]
		if len(files) == 0 {
			p.fail(w, http.StatusBadRequest, "no photos")
			return
		}
		if len(files) > p.printer.MaxPhotos() {
			p.fail(w, http.StatusBadRequest, "too many photos")
			return
		}

		var photos []image.Image
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				p.fail(w, http.StatusBadRequest, "unreadable photo")
				return
			}
			img, err := strip.Decode(f)
			_ = f.Close()
			if err != nil {
				p.fail(w, http.StatusBadRequest, "undecodable photo")
				return
			}
			photos = append(photos, img)
		}

		final, err := p.printer.Compose(photos)
		if err != nil {
			p.fail(w, http.StatusInternalServerError, "error processing photos")
			return
		}
		data, err := p.printer.EncodeJPEG(final)
		if err != nil {
			p.fail(w, http.StatusInternalServerError, "error processing photos")
			return
		}

		name := uuid.Must(uuid.NewV4()).String() + ".jpeg"
		if err := p.store.Put(name, data); err != nil {
			p.log.Error().Err(err).Msg("strip store fail")
			p.fail(w, http.StatusInternalServerError, "error processing photos")
			return
		}

		stripsComposed.Inc()
		p.log.Info().Int("photos", len(photos)).Str("strip", name).Msg("Strip composed")
		p.reply(w, http.StatusOK, processResponse{Success: true, URL: "/download/" + name})
	}
}

// handleDownload streams a composed strip exactly once and deletes it.
func (p *Photos) handleDownload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/download/")
		data, err := p.store.Take(name)
		if err != nil {
			if !errors.Is(err, strip.ErrNotFound) && !errors.Is(err, strip.ErrBadName) {
				p.log.Error().Err(err).Str("strip", name).Msg("strip read fail")
			}
			http.Error(w, "File not found.", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = w.Write(data)
	}
}

func (p *Photos) fail(w http.ResponseWriter, code int, message string) {
	p.reply(w, code, processResponse{Success: false, Message: message})
}

func (p *Photos) reply(w http.ResponseWriter, code int, body processResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		p.log.Error().Err(err).Msg("response encode fail")
	}
}
