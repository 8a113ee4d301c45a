package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/chartbridge/pkg/bridge"
	"github.com/matzehuels/chartbridge/pkg/bridge/store"
	"github.com/matzehuels/chartbridge/pkg/cache"
	"github.com/matzehuels/chartbridge/pkg/chart"
	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/observability"
	"github.com/matzehuels/chartbridge/pkg/options"
	"github.com/matzehuels/chartbridge/pkg/table"
)

// buildRequest is the JSON payload for POST /v1/charts.
type buildRequest struct {
	Type         string        `json:"type"`
	Columns      []columnInput `json:"columns"`
	LabelColumn  string        `json:"label_column,omitempty"`
	ValueColumns []string      `json:"value_columns,omitempty"`
	RadiusColumn string        `json:"radius_column,omitempty"`
	GroupColumn  string        `json:"group_column,omitempty"`
	Options      options.Tree  `json:"options,omitempty"`
}

type columnInput struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// buildResponse pairs the assembled configuration with the registered
// instance id a proxy can address updates to.
type buildResponse struct {
	ID     string          `json:"id"`
	Config json.RawMessage `json:"config"`
}

// handleBuildChart builds a chart configuration from a JSON table payload
// and registers it as a live instance. Identical requests are served from
// the build cache, though each request still yields a fresh instance id.
func (s *Server) handleBuildChart(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}

	cfgJSON, cfg, err := s.buildConfig(r, req)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now().UTC()
	inst := &store.Instance{
		ID:        uuid.NewString(),
		ChartType: cfg.Type,
		Meta:      cfg.Meta,
		Data:      &cfg.Data,
		Options:   cfg.Options,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Set(r.Context(), inst); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "failed to register instance"))
		return
	}

	writeJSON(w, http.StatusCreated, buildResponse{ID: inst.ID, Config: cfgJSON})
}

// buildConfig resolves the request to a configuration, consulting the build
// cache first. The cache key digests the table content and every build input.
func (s *Server) buildConfig(r *http.Request, req buildRequest) (json.RawMessage, *chart.Config, error) {
	ctx := r.Context()
	hooks := observability.Cache()

	tableDigest, err := digestColumns(req.Columns)
	if err != nil {
		return nil, nil, err
	}
	key := s.keyer.ConfigKey(req.Type, tableDigest, map[string]any{
		"label":   req.LabelColumn,
		"values":  req.ValueColumns,
		"radius":  req.RadiusColumn,
		"group":   req.GroupColumn,
		"options": req.Options,
	})

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var cfg chart.Config
		if err := json.Unmarshal(data, &cfg); err == nil {
			hooks.OnCacheHit(ctx, "config")
			return data, &cfg, nil
		}
	}
	hooks.OnCacheMiss(ctx, "config")

	cols := make([]table.Column, len(req.Columns))
	for i, c := range req.Columns {
		cols[i] = table.Column{Name: c.Name, Values: c.Values}
	}
	tbl, err := table.New(cols...)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := chart.Build(tbl, chart.Type(req.Type), chart.BuildOptions{
		LabelColumn: req.LabelColumn,
		Values: chart.ValueSpec{
			Columns: req.ValueColumns,
			Radius:  req.RadiusColumn,
			Group:   req.GroupColumn,
		},
		Options: req.Options,
	})
	if err != nil {
		return nil, nil, err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode configuration")
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err == nil {
		hooks.OnCacheSet(ctx, "config", len(data))
	}
	return data, cfg, nil
}

// handleGetInstance returns the stored record for a live instance.
func (s *Server) handleGetInstance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, err := s.loadInstance(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// handleDeleteInstance removes a live instance from the registry.
func (s *Server) handleDeleteInstance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateInstanceID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "failed to delete instance"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInstanceMessage applies one bridge message to a live instance.
func (s *Server) handleInstanceMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var msg bridge.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed message body"))
		return
	}
	if msg.ID == "" {
		msg.ID = id
	}
	if msg.ID != id {
		writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"message id %q does not match instance %q", msg.ID, id))
		return
	}

	inst, err := s.loadInstance(r, id)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := bridge.ApplyMessage(inst, msg); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Set(r.Context(), inst); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "failed to persist instance"))
		return
	}

	s.logger.Debug("message applied", "kind", msg.Kind, "instance", id)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "applied"})
}

// loadInstance fetches a registry record, mapping absence to NOT_FOUND.
func (s *Server) loadInstance(r *http.Request, id string) (*store.Instance, error) {
	if err := errors.ValidateInstanceID(id); err != nil {
		return nil, err
	}
	inst, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to load instance")
	}
	if inst == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no chart instance with id %q", id)
	}
	return inst, nil
}

// digestColumns hashes the raw column payload for cache keying.
func digestColumns(cols []columnInput) (string, error) {
	data, err := json.Marshal(cols)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed columns")
	}
	return cache.Hash(data), nil
}
