package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Sourcing/internal/hermes"
	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
	"github.com/MikeSquared-Agency/Sourcing/internal/sourcing"
	"github.com/MikeSquared-Agency/Sourcing/internal/store"
)

type RulesHandler struct {
	store     store.Store
	hermes    hermes.Client
	evaluator *sourcing.Evaluator
	logger    *slog.Logger
}

func NewRulesHandler(s store.Store, h hermes.Client, ev *sourcing.Evaluator, logger *slog.Logger) *RulesHandler {
	return &RulesHandler{store: s, hermes: h, evaluator: ev, logger: logger}
}

type RuleRequest struct {
	Name   string                `json:"name" validate:"required"`
	Config scoring.ScoringConfig `json:"config"`
}

type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

type invalidRuleResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages"`
}

// Validate checks a scoring configuration without storing it.
// POST /api/v1/rules/validate
func (h *RulesHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var cfg scoring.ScoringConfig
	if err := decodeBody(r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	valid, messages := h.evaluator.Check(cfg)
	if messages == nil {
		messages = []string{}
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: valid, Messages: messages})
}

func (h *RulesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ok, messages := h.evaluator.Check(req.Config); !ok {
		writeJSON(w, http.StatusUnprocessableEntity, invalidRuleResponse{Error: "invalid scoring config", Messages: messages})
		return
	}

	rule := &store.Rule{Name: req.Name, Config: req.Config}
	if err := h.store.CreateRule(r.Context(), rule); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.publish(r.Context(), hermes.SubjectRuleCreated(rule.ID.String()), rule)
	writeJSON(w, http.StatusCreated, rule)
}

func (h *RulesHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.store.ListRules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rules == nil {
		rules = []*store.Rule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *RulesHandler) Get(w http.ResponseWriter, r *http.Request) {
	rule, ok := h.loadRule(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *RulesHandler) Update(w http.ResponseWriter, r *http.Request) {
	rule, ok := h.loadRule(w, r)
	if !ok {
		return
	}

	var req RuleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ok, messages := h.evaluator.Check(req.Config); !ok {
		writeJSON(w, http.StatusUnprocessableEntity, invalidRuleResponse{Error: "invalid scoring config", Messages: messages})
		return
	}

	rule.Name = req.Name
	rule.Config = req.Config
	if err := h.store.UpdateRule(r.Context(), rule); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.publish(r.Context(), hermes.SubjectRuleUpdated(rule.ID.String()), rule)
	writeJSON(w, http.StatusOK, rule)
}

func (h *RulesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rule, ok := h.loadRule(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteRule(r.Context(), rule.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.publish(r.Context(), hermes.SubjectRuleDeleted(rule.ID.String()), rule)
	w.WriteHeader(http.StatusNoContent)
}

// Evaluate scores the rule's locations for one order line.
// POST /api/v1/rules/{id}/evaluate
func (h *RulesHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	rule, ok := h.loadRule(w, r)
	if !ok {
		return
	}

	var line sourcing.OrderLine
	if err := decodeBody(r, &line); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.evaluator.Evaluate(r.Context(), rule, line)
	if err != nil {
		var verr *sourcing.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, invalidRuleResponse{Error: "invalid scoring config", Messages: verr.Messages})
		case errors.Is(err, scoring.ErrInsufficientData):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, scoring.ErrAttributeNotNumeric), errors.Is(err, scoring.ErrScoreOverflow):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Evaluations lists recent evaluations of a rule, newest first.
// GET /api/v1/rules/{id}/evaluations?limit=N
func (h *RulesHandler) Evaluations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule id")
		return
	}
	evals, err := h.store.ListEvaluations(r.Context(), store.EvaluationFilter{
		RuleID: id,
		Limit:  queryInt(r, "limit", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if evals == nil {
		evals = []*store.Evaluation{}
	}
	writeJSON(w, http.StatusOK, evals)
}

func (h *RulesHandler) loadRule(w http.ResponseWriter, r *http.Request) (*store.Rule, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule id")
		return nil, false
	}
	rule, err := h.store.GetRule(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if rule == nil {
		writeError(w, http.StatusNotFound, "rule not found")
		return nil, false
	}
	return rule, true
}

func (h *RulesHandler) publish(ctx context.Context, subject string, rule *store.Rule) {
	if h.hermes == nil {
		return
	}
	ev := hermes.RuleChangedEvent{RuleID: rule.ID.String(), Name: rule.Name}
	if err := h.hermes.Publish(ctx, subject, ev); err != nil {
		h.logger.Warn("failed to publish rule event", "subject", subject, "error", err)
	}
}
