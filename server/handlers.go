package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/k1LoW/mdshow"
)

type stateResponse struct {
	mdshow.NavigationState
	Revision string `json:"revision"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, nav, notice := s.current()
	var page *mdshow.Page
	if nav == nil {
		page = mdshow.NewNoticePage(notice)
	} else {
		slides, _ := nav.Snapshot()
		page = mdshow.NewPage(p, slides)
	}
	buf := new(bytes.Buffer)
	if err := page.Write(buf); err != nil {
		s.logger.Error("failed to write page", slog.String("error", err.Error()))
		jsonError(w, "failed to write page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.state())
}

func (s *Server) handleSlide(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "invalid slide index: "+chi.URLParam(r, "index"), http.StatusBadRequest)
		return
	}
	_, nav, _ := s.current()
	if nav == nil {
		jsonError(w, "no slides", http.StatusNotFound)
		return
	}
	slides, state := nav.Snapshot()
	if state.Total == 0 {
		jsonError(w, "no slides", http.StatusNotFound)
		return
	}
	slide := slides[state.Goto(i).Current]
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(slide.HTML))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, (*mdshow.Navigator).Next)
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, (*mdshow.Navigator).Prev)
}

func (s *Server) handleGoto(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "invalid slide index: "+chi.URLParam(r, "index"), http.StatusBadRequest)
		return
	}
	s.navigate(w, r, func(n *mdshow.Navigator) mdshow.NavigationState {
		return n.Goto(i)
	})
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, move func(*mdshow.Navigator) mdshow.NavigationState) {
	if _, nav, _ := s.current(); nav != nil {
		move(nav)
	}
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, s.state())
}

func (s *Server) state() stateResponse {
	p, nav, _ := s.current()
	if nav == nil {
		return stateResponse{}
	}
	return stateResponse{
		NavigationState: nav.State(),
		Revision:        p.Revision,
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
