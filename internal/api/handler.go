package api

import (
	"errors"
	"net/http"

	"github.com/docqa-labs/retrieval-agent/internal/api/middleware"
	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/docqa-labs/retrieval-agent/internal/orchestrator"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	orchestrator *orchestrator.Orchestrator
	logger       *zerolog.Logger
}

func NewHandler(orch *orchestrator.Orchestrator, logger *zerolog.Logger) *Handler {
	return &Handler{
		orchestrator: orch,
		logger:       logger,
	}
}

// POST /api/v1/hackrx/run
// Body: RetrievalRequest
// Returns: RetrievalResult
func (h *Handler) Run(req *restful.Request, resp *restful.Response) {
	var retrievalRequest models.RetrievalRequest
	if err := req.ReadEntity(&retrievalRequest); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if retrievalRequest.Documents == "" {
		middleware.HandleError(resp, errors.New("documents is required"), http.StatusBadRequest)
		return
	}
	if len(retrievalRequest.Questions) == 0 {
		middleware.HandleError(resp, errors.New("at least one question is required"), http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("document", retrievalRequest.Documents).
		Int("questions", len(retrievalRequest.Questions)).
		Msg("start retrieval")

	ctx := req.Request.Context()
	result, err := h.orchestrator.Run(ctx, retrievalRequest.Documents, retrievalRequest.Questions)
	if err != nil {
		h.logger.Error().Err(err).Msg("retrieval failed")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	h.logger.Info().
		Str("request_id", result.RequestID).
		Int("answers", len(result.Answers)).
		Msg("retrieval complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

// Document-level failures are the caller's problem (bad reference, no
// extractable text); everything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrDocumentFetch),
		errors.Is(err, models.ErrDocumentParse),
		errors.Is(err, models.ErrEmptyDocument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
