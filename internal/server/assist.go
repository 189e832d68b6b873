package server

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/go-toolhub/internal/assist"
)

type assistRequest struct {
	Topic       string `json:"topic"`
	Vendor      string `json:"vendor"`
	Query       string `json:"query"`
	ImageBase64 string `json:"image_base64"`
	ImageMIME   string `json:"image_mime"`
}

type assistResponse struct {
	Answer string `json:"answer"`
	Model  string `json:"model,omitempty"`
}

func (h *handler) handleAssist(w http.ResponseWriter, r *http.Request) {
	if h.opts.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	var body assistRequest
	if !h.decodeJSON(w, r, &body) || !h.checkTextSize(w, body.Query) {
		return
	}

	req, status, err := h.buildAssistRequest(body)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	if err := req.Validate(h.opts.maxImageBytes); err != nil {
		writeError(w, assistStatus(err), err.Error())
		return
	}

	// Acquire a worker slot; honour context cancellation while waiting.
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	ans, err := h.opts.assistant.Ask(ctx, req)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			h.log.WarnContext(r.Context(), "assistant timed out",
				slog.String("request_id", RequestID(r.Context())),
				slog.String("topic", req.Topic.ID),
				slog.Int("query_len", len(req.Query)),
				slog.Int64("duration_ms", durationMS),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusGatewayTimeout, "assistant timed out")
			return
		}
		h.log.ErrorContext(r.Context(), "assistant failed",
			slog.String("request_id", RequestID(r.Context())),
			slog.String("topic", req.Topic.ID),
			slog.Int("query_len", len(req.Query)),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		)
		writeError(w, assistStatus(err), err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "assistant answered",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("topic", req.Topic.ID),
		slog.String("vendor", req.Vendor.ID),
		slog.Bool("image", req.HasImage()),
		slog.Int("query_len", len(req.Query)),
		slog.Int("answer_len", len(ans.Text)),
		slog.Int64("duration_ms", durationMS),
	)

	writeJSON(w, http.StatusOK, assistResponse{Answer: ans.Text, Model: ans.Model})
}

// buildAssistRequest resolves ids and decodes the optional diagram.
func (h *handler) buildAssistRequest(body assistRequest) (assist.Request, int, error) {
	topic, err := assist.LookupTopic(body.Topic)
	if err != nil {
		return assist.Request{}, http.StatusBadRequest, err
	}
	vendor, err := assist.LookupVendor(body.Vendor)
	if err != nil {
		return assist.Request{}, http.StatusBadRequest, err
	}
	req := assist.Request{Topic: topic, Vendor: vendor, Query: body.Query}

	if body.ImageBase64 == "" {
		return req, http.StatusOK, nil
	}

	data, err := base64.StdEncoding.DecodeString(body.ImageBase64)
	if err != nil {
		return assist.Request{}, http.StatusBadRequest, errors.New("image_base64 is not valid base64")
	}
	img, err := assist.NewImage(data)
	if err != nil {
		return assist.Request{}, http.StatusBadRequest, err
	}
	if mime := strings.TrimSpace(body.ImageMIME); mime != "" {
		if !strings.HasPrefix(mime, "image/") {
			return assist.Request{}, http.StatusBadRequest, assist.ErrNotImage
		}
		img.MIMEType = mime
	}
	req.Image = img
	return req, http.StatusOK, nil
}

func assistStatus(err error) int {
	switch {
	case errors.Is(err, assist.ErrEmptyRequest),
		errors.Is(err, assist.ErrUnknownTopic),
		errors.Is(err, assist.ErrUnknownVendor),
		errors.Is(err, assist.ErrNotImage):
		return http.StatusBadRequest
	case errors.Is(err, assist.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, assist.ErrNoResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
