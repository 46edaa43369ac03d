package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"courtlens/domain/core"
	"courtlens/domain/player"
	"courtlens/domain/reference"
	"courtlens/internal/report"
)

// PredictRequest is the single-query API payload. Features map onto the
// canonical names; unknown keys are rejected so typos never silently
// drop a metric.
type PredictRequest struct {
	PlayerID    string             `json:"player_id,omitempty"`
	Name        string             `json:"name,omitempty"`
	Season      string             `json:"season,omitempty"`
	TargetUsage float64            `json:"target_usage"`
	Features    map[string]float64 `json:"features"`
}

// BatchRequest scores many rows at one shared target usage
type BatchRequest struct {
	TargetUsage float64          `json:"target_usage"`
	Players     []PredictRequest `json:"players"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}
	v, err := req.vector()
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "invalid_input")
		return
	}

	res, err := s.service.Predict(v, req.TargetUsage)
	if err != nil {
		writeError(w, statusFor(err), err, codeFor(err))
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(report.HTML(report.Markdown(*res)))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}
	if len(req.Players) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "players list is empty", Code: "invalid_input"})
		return
	}

	ds := make(player.Dataset, 0, len(req.Players))
	for _, p := range req.Players {
		v, err := p.vector()
		if err != nil {
			writeError(w, http.StatusBadRequest, err, "invalid_input")
			return
		}
		ds = append(ds, v)
	}

	out, err := s.runner.Run(r.Context(), ds, req.TargetUsage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleReference reports the built distribution's subset sizes so
// callers can judge how much data backs the percentile cut points
func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	ref := s.service.Reference()
	cfg := ref.Config()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"qualified_count":   ref.QualifiedCount(),
		"creator_count":     ref.CreatorCount(),
		"min_shot_volume":   cfg.MinShotVolume,
		"min_usage":         cfg.MinUsage,
		"creator_usage":     cfg.CreatorUsage,
		"star_usage":        cfg.StarUsage,
		"bucket_width":      cfg.BucketWidth,
		"min_bucket_size":   cfg.MinBucketSize,
		"named_percentiles": reference.NamedPercentiles,
	})
}

// handleReport renders an HTML scouting report for a player from the
// loaded roster, looked up by ID or name
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.roster == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no roster loaded"})
		return
	}

	query := strings.ToLower(chi.URLParam(r, "player"))
	var found *player.FeatureVector
	for i := range s.roster {
		if strings.ToLower(s.roster[i].PlayerID.String()) == query ||
			strings.ToLower(s.roster[i].Name) == query {
			found = &s.roster[i]
			break
		}
	}
	if found == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "player not found", Code: "not_found"})
		return
	}

	targetUsage := 0.25
	if raw := r.URL.Query().Get("usage"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid usage parameter", Code: "invalid_input"})
			return
		}
		targetUsage = parsed
	}

	res, err := s.service.Predict(*found, targetUsage)
	if err != nil {
		writeError(w, statusFor(err), err, codeFor(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(report.Markdown(*res)))
}

// vector converts a request into a feature vector, failing on unknown
// feature names
func (req PredictRequest) vector() (player.FeatureVector, error) {
	v := player.FeatureVector{
		PlayerID: core.PlayerID(core.NewID()),
		Name:     req.Name,
	}
	if req.PlayerID != "" {
		id, err := core.ParsePlayerID(req.PlayerID)
		if err != nil {
			return v, err
		}
		v.PlayerID = id
	}
	if req.Season != "" {
		season, err := core.ParseSeason(req.Season)
		if err != nil {
			return v, err
		}
		v.Season = season
	}

	known := make(map[string]bool)
	for _, name := range player.FeatureNames() {
		known[name] = true
	}
	for name, value := range req.Features {
		key := strings.ToLower(strings.TrimSpace(name))
		if !known[key] {
			return v, errors.New("unknown feature: " + name)
		}
		v = v.WithMetric(key, player.Some(value))
	}
	return v.Normalize(), nil
}

func statusFor(err error) int {
	switch {
	case core.IsContractError(err):
		return http.StatusInternalServerError
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}

func codeFor(err error) string {
	switch {
	case core.IsContractError(err):
		return "classifier_contract"
	case core.IsReferenceError(err):
		return "reference_data"
	default:
		return "invalid_input"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error, code string) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}
