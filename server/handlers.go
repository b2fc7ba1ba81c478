// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/playback"
)

// maxBody caps request bodies; graphs are small.
const maxBody = 1 << 20

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type importResponse struct {
	OK    bool `json:"ok"`
	Nodes int  `json:"nodes"`
	Edges int  `json:"edges"`
}

type selectionRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type runResponse struct {
	OK            bool     `json:"ok"`
	Empty         bool     `json:"empty,omitempty"`
	RunID         string   `json:"run_id,omitempty"`
	Steps         int      `json:"steps,omitempty"`
	Updates       int      `json:"updates,omitempty"`
	Snapshots     string   `json:"snapshots,omitempty"`
	NegativeCycle []string `json:"negative_cycle,omitempty"`
	Path          []string `json:"path,omitempty"`
	Distance      *float64 `json:"distance,omitempty"`
}

type speedResponse struct {
	OK    bool `json:"ok"`
	Speed int  `json:"speed"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{OK: false, Error: msg})
}

// playbackStatus maps controller errors to HTTP statuses.
func playbackStatus(err error) int {
	switch {
	case errors.Is(err, playback.ErrSeekOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, playback.ErrNoTrace), errors.Is(err, playback.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, playback.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	doc := s.sess.Export()
	if r.URL.Query().Get("format") == "yaml" {
		b, err := doc.YAML()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(b)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) putGraph(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	parse := core.ParseJSON
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/yaml" || mt == "application/x-yaml" || mt == "text/yaml" {
		parse = core.ParseYAML
	}
	doc, err := parse(b)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nodes, edges := s.sess.Import(doc)
	writeJSON(w, http.StatusOK, importResponse{OK: true, Nodes: nodes, Edges: edges})
}

func (s *Server) listPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, core.PresetNames())
}

func (s *Server) loadPreset(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.LoadPreset(r.PathValue("name")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	g := s.sess.Graph()
	writeJSON(w, http.StatusOK, importResponse{OK: true, Nodes: g.Order(), Edges: g.Size()})
}

func (s *Server) putSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.sess.SetSelection(req.Source, req.Target)
	writeJSON(w, http.StatusOK, s.sess.Frame())
}

func (s *Server) run(w http.ResponseWriter, _ *http.Request) {
	res := s.sess.Run()
	if res == nil {
		writeJSON(w, http.StatusOK, runResponse{OK: true, Empty: true})
		return
	}

	_, updates := res.Trace.Counts()
	resp := runResponse{
		OK:            true,
		RunID:         res.RunID().String(),
		Steps:         res.Trace.Len(),
		Updates:       updates,
		Snapshots:     res.Trace.FootprintString(),
		NegativeCycle: res.NegativeCycle(),
		Path:          s.sess.Path(),
	}
	if d, ok := s.sess.Distance(); ok && !math.IsInf(d, 0) {
		resp.Distance = &d
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) playback(w http.ResponseWriter, r *http.Request) {
	ctrl := s.sess.Controller()
	var op func() error
	switch r.PathValue("action") {
	case "play":
		op = ctrl.Play
	case "pause":
		op = ctrl.Pause
	case "reset":
		op = ctrl.Reset
	case "end":
		op = ctrl.SkipToEnd
	case "forward":
		op = ctrl.StepForward
	case "back":
		op = ctrl.StepBack
	default:
		writeError(w, http.StatusNotFound, "unknown playback action")
		return
	}
	if err := op(); err != nil {
		writeError(w, playbackStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Frame())
}

func (s *Server) seek(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	if err := s.sess.Controller().Seek(index); err != nil {
		writeError(w, playbackStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Frame())
}

func (s *Server) speed(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.Atoi(r.URL.Query().Get("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "value must be an integer")
		return
	}
	ctrl := s.sess.Controller()
	ctrl.SetSpeed(value)
	writeJSON(w, http.StatusOK, speedResponse{OK: true, Speed: ctrl.Speed()})
}

func (s *Server) frame(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Frame())
}
