package server

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
	"github.com/ziadkadry99/diagram-zoom/internal/site"
)

// fitRequest is the JSON body for POST /api/fit.
type fitRequest struct {
	Container struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"container"`
	BBox struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"bbox"`
	Margin   float64 `json:"margin,omitempty"`
	MinScale float64 `json:"min_scale,omitempty"`
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// fitResponse is the JSON response for POST /api/fit. Scale and anchor are
// omitted on the native path.
type fitResponse struct {
	Mode   string   `json:"mode"`
	Scale  *float64 `json:"scale,omitempty"`
	Anchor *point   `json:"anchor,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := s.cfg.Fit
	if req.Margin != 0 {
		if req.Margin < 0 || req.Margin > 1 {
			writeError(w, http.StatusBadRequest, "margin must be in (0, 1]")
			return
		}
		p.Margin = req.Margin
	}
	if req.MinScale != 0 {
		if req.MinScale < 0 {
			writeError(w, http.StatusBadRequest, "min_scale must be positive")
			return
		}
		p.MinScale = req.MinScale
	}

	res := fit.Compute(
		geom.Size{Width: req.Container.Width, Height: req.Container.Height},
		geom.Box{X: req.BBox.X, Y: req.BBox.Y, Width: req.BBox.Width, Height: req.BBox.Height},
		p,
	)
	resp := fitResponse{Mode: res.Mode.String()}
	if res.Mode == fit.Formula {
		scale := res.Scale
		resp.Scale = &scale
		resp.Anchor = &point{X: res.Anchor.X, Y: res.Anchor.Y}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(s.cfg.RuntimeScript)
}

// serveFile serves one file from disk, or 404 when it is not configured.
func (s *Server) serveFile(file, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if file == "" {
			http.NotFound(w, r)
			return
		}
		if _, err := os.Stat(file); err != nil {
			s.logger.Warn("runtime file missing", "path", file)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		http.ServeFile(w, r, file)
	}
}

// siteHandler serves the site directory. HTML pages get the runtime
// injected; everything else is served as is.
func (s *Server) siteHandler() http.Handler {
	root := http.Dir(s.cfg.SiteDir)
	files := http.FileServer(root)
	rt := s.cfg.Runtime.WithBase("/")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/") {
			name = path.Join(name, "index.html")
		}
		if ext := path.Ext(name); ext != ".html" && ext != ".htm" {
			files.ServeHTTP(w, r)
			return
		}

		page, err := readPage(root, name)
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			s.logger.Error("reading page", "path", name, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out, err := site.Inject(page, rt)
		if err != nil {
			s.logger.Warn("serving page without runtime", "path", name, "err", err)
			out = page
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(out)
	})
}

func readPage(root http.FileSystem, name string) ([]byte, error) {
	f, err := root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fs.ErrNotExist
	}
	return io.ReadAll(f)
}
