package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/Tejas544/gully-scorer/internal/platform/logging"
	"github.com/Tejas544/gully-scorer/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

// Services are the usecases the API exposes.
type Services struct {
	Seasons     *usecase.SeasonService
	Standings   *usecase.StandingsService
	Progression *usecase.ProgressionService
	Scoring     *usecase.ScoringService
	Careers     *usecase.CareerService
}

type Handler struct {
	seasons     *usecase.SeasonService
	standings   *usecase.StandingsService
	progression *usecase.ProgressionService
	scoring     *usecase.ScoringService
	careers     *usecase.CareerService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasons:     services.Seasons,
		standings:   services.Standings,
		progression: services.Progression,
		scoring:     services.Scoring,
		careers:     services.Careers,
		logger:      logger,
		validator:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body into dst, rejecting unknown fields, then validates it.
// An empty body decodes as an empty object so optional payloads can be omitted.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}
