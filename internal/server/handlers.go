package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Bist0uille/archibot/internal/catalog"
	"github.com/Bist0uille/archibot/internal/mapping"
	"github.com/Bist0uille/archibot/internal/model"
	"github.com/Bist0uille/archibot/internal/project"
	"github.com/Bist0uille/archibot/internal/rules"
	"github.com/Bist0uille/archibot/internal/validate"
)

// AssistResponse is the body of POST /v1/assist.
type AssistResponse struct {
	Analysis    *rules.Analysis      `json:"analysis,omitempty"`
	Errors      []string             `json:"errors"`
	Suggestions []project.Suggestion `json:"suggestions"`
	Completion  int                  `json:"completion"`
}

// FieldsRequest is the body of POST /v1/documents/{docID}/fields.
type FieldsRequest struct {
	Project json.RawMessage `json:"project"`
	Issuer  *model.Value    `json:"issuer,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.All())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	p, ok := readProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rules.Analyze(p))
}

func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	p, ok := readProject(w, r)
	if !ok {
		return
	}
	resp := AssistResponse{
		Errors:      validate.Project(p),
		Suggestions: project.Suggestions(p),
		Completion:  project.Completion(p),
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []project.Suggestion{}
	}
	if p.Category() != model.CategoryUnknown {
		a := rules.Analyze(p)
		resp.Analysis = &a
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	docID := catalog.NormalizeID(chi.URLParam(r, "docID"))
	if docID == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var req FieldsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Project) == 0 || string(req.Project) == "null" {
		writeError(w, http.StatusBadRequest, "project is required")
		return
	}
	p, err := project.Decode(req.Project)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project")
		return
	}

	issuer := s.issuer
	if req.Issuer != nil {
		issuer = *req.Issuer
	}

	res := mapping.Resolve(docID, p, issuer)
	zap.L().Debug("server: fields resolved",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("document", docID),
		zap.Int("fields", len(res.Fields)),
		zap.Int("notices", len(res.Notices)),
	)
	writeJSON(w, http.StatusOK, res)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	return body, true
}

func readProject(w http.ResponseWriter, r *http.Request) (model.ProjectInput, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return model.ProjectInput{}, false
	}
	p, err := project.Decode(body)
	if err != nil {
		zap.L().Debug("server: invalid project body",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadRequest, "invalid project")
		return model.ProjectInput{}, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
