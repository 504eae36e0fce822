package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blockswap/blockswap/pkg/analytics"
	"github.com/blockswap/blockswap/pkg/audit"
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/convert"
	"github.com/blockswap/blockswap/pkg/errors"
	"github.com/blockswap/blockswap/pkg/history"
	"github.com/blockswap/blockswap/pkg/mapping"
	"github.com/blockswap/blockswap/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// convertResponse is the full result of a conversion request.
type convertResponse struct {
	RunID    string                 `json:"run_id"`
	Applied  map[string]int         `json:"applied"`
	Replaced int                    `json:"replaced"`
	Passed   int                    `json:"passed"`
	Before   *analytics.Report      `json:"before"`
	After    *analytics.Report      `json:"after"`
	Delta    *analytics.DeltaReport `json:"delta"`
	Findings []audit.Finding        `json:"findings,omitempty"`
	Document []byte                 `json:"document"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.DryRun = true // the server never writes to its own disk

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		RunID:    result.RunID,
		Applied:  flattenApplied(result.Changes),
		Replaced: result.Changes.Replaced,
		Passed:   result.Changes.PassedThrough,
		Before:   result.Before,
		After:    result.After,
		Delta:    result.Delta,
		Findings: result.Findings,
		Document: result.Document.Raw,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	doc, err := blueprint.Parse(opts.Name, opts.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.runner.Analyze(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	doc, err := blueprint.Parse(opts.Name, opts.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	findings, err := s.runner.Audit(doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"findings": findings})
}

// categoryDTO is the wire form of a registered category.
type categoryDTO struct {
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	RuleCount        int            `json:"rule_count"`
	GridSizes        []string       `json:"grid_sizes,omitempty"`
	Origin           string         `json:"origin,omitempty"`
	EnabledByDefault bool           `json:"enabled_by_default"`
	Rules            []mapping.Rule `json:"rules,omitempty"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	includeRules := r.URL.Query().Get("rules") == "true"
	var out []categoryDTO
	for _, cat := range s.runner.Registry.Categories() {
		dto := categoryDTO{
			Name:             cat.Name,
			Description:      cat.Description,
			RuleCount:        len(cat.Rules),
			GridSizes:        cat.GridSizes,
			Origin:           cat.Origin,
			EnabledByDefault: cat.EnabledByDefault,
		}
		if includeRules {
			dto.Rules = cat.Rules
		}
		out = append(out, dto)
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		writeJSON(w, http.StatusOK, map[string]any{"profiles": []any{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": s.profiles.List()})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, map[string]any{"runs": []any{}})
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	runs, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleHistoryRun(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "history disabled"))
		return
	}
	run, err := s.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err == history.ErrNotFound {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "run not found"))
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// decodeOptions reads a pipeline.Options request body and validates it for
// inline-content use.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request"))
		return opts, false
	}
	opts.Blueprint = "" // server runs never touch local paths
	if len(opts.Content) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "content is required"))
		return opts, false
	}
	if opts.Name == "" {
		opts.Name = "upload"
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options"))
		return opts, false
	}
	return opts, true
}

// flattenApplied turns the typed rule counts into a JSON-friendly map.
func flattenApplied(changes *convert.ChangeSet) map[string]int {
	out := make(map[string]int, len(changes.Applied))
	for rule, count := range changes.Applied {
		out[rule.String()] = count
	}
	return out
}
