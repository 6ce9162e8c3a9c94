package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amishk599/jobboard/internal/model"
)

const (
	// MaxBodySize bounds the payload read from a delivery.
	MaxBodySize = 1 << 20

	tracerName = "github.com/amishk599/jobboard/internal/webhook"
)

var errMalformed = errors.New("malformed payload")

// Handler verifies deliveries and applies them to the user store.
type Handler struct {
	verifier Verifier
	users    model.UserStore
	notifier model.Notifier
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewHandler returns a Handler that traces through the global tracer provider.
func NewHandler(verifier Verifier, users model.UserStore, notifier model.Notifier, logger *slog.Logger) *Handler {
	return &Handler{
		verifier: verifier,
		users:    users,
		notifier: notifier,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

type response struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("reading body: %w", err))
		return
	}
	if len(body) > MaxBodySize {
		h.fail(w, http.StatusRequestEntityTooLarge, errors.New("payload too large"))
		return
	}

	if err := h.verifier.Verify(r.Header, body); err != nil {
		h.logger.Warn("rejected webhook", "remote", r.RemoteAddr, "error", err)
		h.fail(w, http.StatusUnauthorized, err)
		return
	}

	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		err = fmt.Errorf("%w: %v", errMalformed, err)
		h.report("", err)
		h.fail(w, http.StatusBadRequest, err)
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "webhook."+evt.Type, trace.WithAttributes(
		attribute.String("webhook.id", r.Header.Get(headerID)),
		attribute.String("webhook.type", evt.Type),
	))
	defer span.End()

	if err := h.dispatch(ctx, evt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.report(evt.Type, err)

		status := http.StatusInternalServerError
		if errors.Is(err, errMalformed) {
			status = http.StatusBadRequest
		}
		h.fail(w, status, err)
		return
	}

	h.logger.Info("webhook handled", "type", evt.Type)
	writeJSON(w, http.StatusOK, response{})
}

func (h *Handler) dispatch(ctx context.Context, evt Event) error {
	switch evt.Type {
	case EventUserCreated, EventUserUpdated:
		var d userData
		if err := json.Unmarshal(evt.Data, &d); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		if d.ID == "" {
			return fmt.Errorf("%w: user id is missing", errMalformed)
		}
		// Resume starts empty and is kept by the store on update.
		return h.users.UpsertUser(ctx, d.toUser())

	case EventUserDeleted:
		var d deletedData
		if err := json.Unmarshal(evt.Data, &d); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		if d.ID == "" {
			return fmt.Errorf("%w: user id is missing", errMalformed)
		}
		return h.users.DeleteUser(ctx, d.ID)

	default:
		h.logger.Debug("ignoring webhook event", "type", evt.Type)
		return nil
	}
}

func (h *Handler) report(event string, err error) {
	inc := model.Incident{
		Source:  "webhook",
		Event:   event,
		Message: "webhook handling failed",
		Err:     err,
		At:      time.Now(),
	}
	if nerr := h.notifier.Notify(inc); nerr != nil {
		h.logger.Error("failed to report incident", "error", nerr, "incident_error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	ok := false
	writeJSON(w, status, response{Success: &ok, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
