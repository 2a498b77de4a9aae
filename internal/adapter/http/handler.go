package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"
	"resume-renderer/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	render    *usecase.RenderService
	scheduler *usecase.PreviewScheduler
	board     *usecase.PreviewBoard
	log       *slog.Logger
	started   time.Time
}

func NewHandler(r *usecase.RenderService, s *usecase.PreviewScheduler, b *usecase.PreviewBoard, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if b == nil {
		b = usecase.NewPreviewBoard()
	}
	return &Handler{render: r, scheduler: s, board: b, log: log, started: time.Now()}
}

func (h *Handler) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "uptime": time.Since(h.started).Seconds()})
}

// decodeRequest rejects malformed JSON, validates the raw body against the
// request schema and only then decodes it, so type mismatches surface as
// schema violations.
func decodeRequest(c *fiber.Ctx) (*model.RenderRequest, error) {
	body := c.Body()
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := model.ValidateJSON(body); err != nil {
		return nil, err
	}
	var req model.RenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handler) Render(c *fiber.Ctx) error {
	req, err := decodeRequest(c)
	if err != nil {
		return h.requestError(c, err)
	}
	resp, err := h.render.Render(c.UserContext(), req)
	if err != nil {
		return h.requestError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	req, err := decodeRequest(c)
	if err != nil {
		return h.requestError(c, err)
	}
	resp, err := h.render.Preview(c.UserContext(), req)
	if err != nil {
		return h.requestError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *Handler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}
	job, err := h.render.Job(c.UserContext(), id)
	if errors.Is(err, domain.ErrJobNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "render job not found"})
	}
	if err != nil {
		h.log.Error("load render job", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load render job"})
	}
	return c.JSON(job)
}

// SchedulePreview queues a delayed preview for a form; a newer submission
// for the same form replaces the queued one.
func (h *Handler) SchedulePreview(c *fiber.Ctx) error {
	formID := c.Params("formId")
	req, err := decodeRequest(c)
	if err != nil {
		return h.requestError(c, err)
	}
	h.scheduler.Schedule(formID, req.LatexSource, req.Overrides(), h.board.Apply)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"formId": formID, "status": "scheduled"})
}

// FormPreview reports the latest applied preview for a form.
func (h *Handler) FormPreview(c *fiber.Ctx) error {
	formID := c.Params("formId")
	res, ok := h.board.Latest(formID)
	pending := h.scheduler.Pending(formID)
	switch {
	case pending && !ok:
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"formId": formID, "status": "pending"})
	case !ok:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no preview for form"})
	}
	status := "ready"
	if !res.Available() {
		status = "unavailable"
	}
	return c.JSON(fiber.Map{
		"formId":     formID,
		"status":     status,
		"pending":    pending,
		"pdfDataUrl": res.PDFDataURL,
		"excerpt":    res.Excerpt,
		"tokens":     res.Tokens,
	})
}

func (h *Handler) requestError(c *fiber.Ctx, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid request payload", "details": ve.Details})
	case isDecodeError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
