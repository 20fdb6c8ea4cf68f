package workbench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joelkehle/procurement-desk/internal/bids"
	"github.com/joelkehle/procurement-desk/internal/procurement"
	"github.com/joelkehle/procurement-desk/internal/vendors"
)

// StageProcessor runs one workflow stage against a session's pipeline state.
type StageProcessor interface {
	ProcessStage(ctx context.Context, state *procurement.PipelineState, stage procurement.Stage, input string) (string, error)
}

// DossierPDFRenderer turns dossier markdown into a printable PDF.
type DossierPDFRenderer interface {
	Render(ctx context.Context, markdown string) ([]byte, error)
}

type Server struct {
	store    *SessionStore
	pipeline StageProcessor
	catalog  vendors.Catalog
	pdf      DossierPDFRenderer
}

func NewServer(store *SessionStore, pipeline StageProcessor, catalog vendors.Catalog) http.Handler {
	return newServer(store, pipeline, catalog, NewChromiumPDFRenderer())
}

func newServer(store *SessionStore, pipeline StageProcessor, catalog vendors.Catalog, pdf DossierPDFRenderer) http.Handler {
	s := &Server{
		store:    store,
		pipeline: pipeline,
		catalog:  catalog,
		pdf:      pdf,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/health", s.handleHealth)
	mux.HandleFunc("/v1/stages", s.handleStages)
	mux.HandleFunc("/v1/sessions", s.handleCreateSession)
	mux.HandleFunc("/v1/sessions/", s.handleSessionSubtree)
	mux.HandleFunc("/v1/vendors/scores", s.handleVendorScores)
	mux.HandleFunc("/v1/samples/business-requirements", s.handleSampleRequirements)
	mux.HandleFunc("/v1/samples/bids", s.handleSampleBids)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

type stageSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	InputLabel string `json:"input_label"`
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stages := procurement.Stages()
	out := make([]stageSummary, 0, len(stages))
	for _, st := range stages {
		out = append(out, stageSummary{ID: string(st), Title: st.Title(), InputLabel: st.InputLabel()})
	}
	writeJSON(w, 200, map[string]any{"stages": out})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess := s.store.Create()
	writeJSON(w, 200, map[string]any{"token": sess.Token, "created_at": sess.CreatedAt})
}

func (s *Server) handleSessionSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	if rest == "" {
		writeError(w, 404, "session not found")
		return
	}
	parts := strings.Split(rest, "/")
	sess := s.store.Get(parts[0])
	if sess == nil {
		writeError(w, 404, "session not found")
		return
	}

	switch {
	case len(parts) == 1:
		s.handleSessionOverview(w, r, sess)
	case len(parts) == 2 && parts[1] == "bids":
		s.handleSessionBids(w, r, sess)
	case len(parts) == 2 && parts[1] == "dossier":
		s.handleSessionDossier(w, r, sess)
	case len(parts) == 2 && parts[1] == "dossier.pdf":
		s.handleSessionDossierPDF(w, r, sess)
	case len(parts) == 3 && parts[1] == "stages":
		s.handleStageView(w, r, sess, parts[2])
	case len(parts) == 4 && parts[1] == "stages" && parts[3] == "process":
		s.handleProcessStage(w, r, sess, parts[2])
	default:
		writeError(w, 404, "not found")
	}
}

type stageStatus struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type sessionOverview struct {
	Token     string        `json:"token"`
	CreatedAt time.Time     `json:"created_at"`
	Stages    []stageStatus `json:"stages"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
}

func (s *Server) handleSessionOverview(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	stages := procurement.Stages()
	out := make([]stageStatus, 0, len(stages))
	for _, st := range stages {
		_, done := sess.state.Output(st)
		out = append(out, stageStatus{ID: string(st), Title: st.Title(), Done: done})
	}
	writeJSON(w, 200, sessionOverview{
		Token:     sess.Token,
		CreatedAt: sess.CreatedAt,
		Stages:    out,
		Completed: sess.state.Len(),
		Total:     len(stages),
	})
}

type stageView struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	InputLabel     string              `json:"input_label"`
	SeedNote       string              `json:"seed_note,omitempty"`
	Input          string              `json:"input"`
	Seeded         bool                `json:"seeded"`
	OutputMarkdown *string             `json:"output_markdown"`
	BidChart       *bids.BarChart      `json:"bid_chart,omitempty"`
	VendorScores   []vendors.Score     `json:"vendor_scores,omitempty"`
	VendorChart    *vendors.RadarChart `json:"vendor_chart,omitempty"`
}

// stageViewLocked assembles the stage panel. Callers must hold sess.mu.
func (s *Server) stageViewLocked(ctx context.Context, sess *Session, stage procurement.Stage) stageView {
	view := stageView{
		ID:         string(stage),
		Title:      stage.Title(),
		InputLabel: stage.InputLabel(),
	}
	seed, hasSeed := procurement.SeedInput(sess.state, stage)
	if hasSeed {
		view.InputLabel = stage.SeededInputLabel()
		view.SeedNote = stage.SeedNote()
	}
	draft, hasDraft := sess.inputs[stage]
	switch {
	case hasDraft:
		view.Input = draft
	case hasSeed:
		view.Input = seed
		view.Seeded = true
	}
	if out, ok := sess.state.Output(stage); ok {
		view.OutputMarkdown = &out
	}

	switch stage {
	case procurement.StageBidEvaluation:
		if blob, ok := sess.inputs[stage]; ok {
			view.BidChart = bids.BuildBarChart(bids.Parse(blob))
		}
	case procurement.StageVendorMatching:
		rows, err := s.catalog.Ratings(ctx)
		if err != nil {
			log.Printf("load vendor ratings failed token=%s err=%v", sess.Token, err)
			break
		}
		scores := vendors.ScoreRatings(rows)
		view.VendorScores = scores
		view.VendorChart = vendors.BuildRadarChart(scores)
	}
	return view
}

func (s *Server) handleStageView(w http.ResponseWriter, r *http.Request, sess *Session, rawStage string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stage, err := procurement.ParseStage(rawStage)
	if err != nil {
		writeError(w, 404, "unknown stage")
		return
	}
	sess.mu.Lock()
	view := s.stageViewLocked(r.Context(), sess, stage)
	sess.mu.Unlock()
	writeJSON(w, 200, view)
}

func (s *Server) handleProcessStage(w http.ResponseWriter, r *http.Request, sess *Session, rawStage string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stage, err := procurement.ParseStage(rawStage)
	if err != nil {
		writeError(w, 404, "unknown stage")
		return
	}
	var req struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid request body")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if _, err := s.pipeline.ProcessStage(r.Context(), sess.state, stage, req.Input); err != nil {
		switch {
		case errors.Is(err, procurement.ErrEmptyInput):
			writeError(w, 400, "input is required")
		case errors.Is(err, procurement.ErrUnknownStage):
			writeError(w, 404, "unknown stage")
		default:
			log.Printf("process stage failed token=%s stage=%s err=%v", sess.Token, stage, err)
			writeJSON(w, 502, map[string]any{
				"error":     err.Error(),
				"retryable": true,
				"stage":     string(procurement.StageFromError(err)),
			})
		}
		return
	}
	sess.inputs[stage] = req.Input
	writeJSON(w, 200, s.stageViewLocked(r.Context(), sess, stage))
}

func (s *Server) handleSessionBids(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess.mu.Lock()
	blob := sess.inputs[procurement.StageBidEvaluation]
	sess.mu.Unlock()

	records := bids.Parse(blob)
	writeJSON(w, 200, map[string]any{
		"bids":  records,
		"chart": bids.BuildBarChart(records),
	})
}

// buildDossierMarkdown snapshots the session into dossier markdown. A vendor
// catalog failure drops the vendor appendix rather than failing the export.
func (s *Server) buildDossierMarkdown(ctx context.Context, sess *Session) string {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	data := procurement.DossierData{State: sess.state}
	if rows, err := s.catalog.Ratings(ctx); err != nil {
		log.Printf("load vendor ratings failed token=%s err=%v", sess.Token, err)
	} else {
		data.VendorScores = vendors.ScoreRatings(rows)
	}
	if blob, ok := sess.inputs[procurement.StageBidEvaluation]; ok {
		data.Bids = bids.Parse(blob)
	}
	return procurement.BuildDossier(data)
}

func (s *Server) handleSessionDossier(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	markdown := s.buildDossierMarkdown(r.Context(), sess)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(200)
	_, _ = w.Write([]byte(markdown))
}

func (s *Server) handleSessionDossierPDF(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.pdf == nil {
		writeError(w, 503, "pdf renderer unavailable")
		return
	}
	markdown := s.buildDossierMarkdown(r.Context(), sess)
	pdf, err := s.pdf.Render(r.Context(), markdown)
	if err != nil {
		log.Printf("render dossier pdf failed token=%s err=%v", sess.Token, err)
		writeError(w, 500, "failed to render pdf")
		return
	}
	filename := fmt.Sprintf("dossier-%s.pdf", sanitizeFilename(sess.Token))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(200)
	_, _ = w.Write(pdf)
}

func (s *Server) handleVendorScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := s.catalog.Ratings(r.Context())
	if err != nil {
		log.Printf("load vendor ratings failed: %v", err)
		writeError(w, 500, "failed to load vendor ratings")
		return
	}
	scores := vendors.ScoreRatings(rows)
	writeJSON(w, 200, map[string]any{
		"scores": scores,
		"chart":  vendors.BuildRadarChart(scores),
	})
}

func (s *Server) handleSampleRequirements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(200)
	_, _ = w.Write([]byte(SampleBusinessRequirements))
}

func (s *Server) handleSampleBids(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(200)
	_, _ = w.Write([]byte(SampleBids))
}

func sanitizeFilename(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "dossier"
	}
	v = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, v)
	return v
}
