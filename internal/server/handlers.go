package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/voyagen/livechannels/internal/models"
	"github.com/voyagen/livechannels/internal/service"
)

// maxSourcesBody caps PUT /api/live/sources payloads.
const maxSourcesBody = 1 << 20

type channelsResponse struct {
	Success    bool             `json:"success"`
	Source     models.SourceRef `json:"source"`
	Channels   []models.Channel `json:"channels"`
	Cached     bool             `json:"cached"`
	UpdateTime int64            `json:"updateTime"`
}

type refreshQueuedResponse struct {
	Success bool   `json:"success"`
	Queued  bool   `json:"queued"`
	Source  string `json:"source"`
}

func newChannelsResponse(res *service.Result) channelsResponse {
	channels := res.Channels
	if channels == nil {
		channels = []models.Channel{}
	}
	return channelsResponse{
		Success:    true,
		Source:     res.Source,
		Channels:   channels,
		Cached:     res.Cached,
		UpdateTime: res.UpdateTime,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetChannels(w http.ResponseWriter, r *http.Request) {
	res, err := s.live.GetChannels(r.Context(), r.URL.Query().Get("source"))
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newChannelsResponse(res))
}

func (s *Server) handleRefreshChannels(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("source")

	if s.queue == nil {
		res, err := s.live.Refresh(r.Context(), key)
		if err != nil {
			s.writeServiceErr(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newChannelsResponse(res))
		return
	}

	if err := s.live.Validate(r.Context(), key); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	if err := s.queue.EnqueueRefresh(r.Context(), key); err != nil {
		s.writeServiceErr(w, r, fmt.Errorf("enqueue refresh: %w", err))
		return
	}
	writeJSON(w, http.StatusAccepted, refreshQueuedResponse{Success: true, Queued: true, Source: key})
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.live.ListSources(r.Context())
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

func (s *Server) handleReplaceSources(w http.ResponseWriter, r *http.Request) {
	var sources []models.LiveSource
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSourcesBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sources); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if sources == nil {
		sources = []models.LiveSource{}
	}
	if err := s.live.ReplaceSources(r.Context(), sources); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

// writeServiceErr maps service errors to status codes and the fixed error bodies clients match on.
func (s *Server) writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
	var fe *service.FetchError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidRequest.Error()+": ")
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrSourceNotFound):
		writeError(w, http.StatusNotFound, "source not found")
	case errors.Is(err, service.ErrSourceDisabled):
		writeError(w, http.StatusBadRequest, "source disabled")
	case errors.As(err, &fe):
		writeError(w, http.StatusInternalServerError, "parse/fetch failed: "+fe.Err.Error())
	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal failure")
	}
}
