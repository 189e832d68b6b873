package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/go-toolhub/internal/catalog"
	"github.com/example/go-toolhub/internal/numbase"
	"github.com/example/go-toolhub/internal/text"
	"github.com/example/go-toolhub/internal/textio"
)

type caseRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type trimRequest struct {
	Text  string `json:"text"`
	Unit  string `json:"unit"`
	Count *int   `json:"count"`
	Side  string `json:"side"`
}

type transformResponse struct {
	Output string `json:"output"`
}

type numberRequest struct {
	Value string `json:"value"`
	Base  string `json:"base"`
}

type numberResponse struct {
	Base string `json:"base"`
	numbase.Conversion
}

func (h *handler) handleCase(w http.ResponseWriter, r *http.Request) {
	var req caseRequest
	if !h.decodeJSON(w, r, &req) || !h.checkTextSize(w, req.Text) {
		return
	}

	mode := text.CaseSentence
	if req.Mode != "" {
		var err error
		mode, err = text.ParseCaseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	start := time.Now()
	out := text.ApplyCase(req.Text, mode)
	h.log.DebugContext(r.Context(), "case converted",
		slog.String("mode", string(mode)),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	h.writeOutput(w, r, catalog.CaseConverter, out)
}

func (h *handler) handleTrim(w http.ResponseWriter, r *http.Request) {
	var req trimRequest
	if !h.decodeJSON(w, r, &req) || !h.checkTextSize(w, req.Text) {
		return
	}

	spec := text.DefaultTrimSpec()
	if req.Unit != "" {
		unit, err := text.ParseUnit(req.Unit)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		spec.Unit = unit
	}
	if req.Side != "" {
		side, err := text.ParseSide(req.Side)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		spec.Side = side
	}
	if req.Count != nil {
		spec.Count = *req.Count
	}
	spec = spec.Normalized()

	start := time.Now()
	out := text.ApplyTrim(req.Text, spec)
	h.log.DebugContext(r.Context(), "text trimmed",
		slog.String("spec", spec.String()),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	h.writeOutput(w, r, catalog.WordRemover, out)
}

// writeOutput answers with {"output": ...}, or with a plain-text attachment
// when the query carries download=1.
func (h *handler) writeOutput(w http.ResponseWriter, r *http.Request, toolID, out string) {
	switch r.URL.Query().Get("download") {
	case "1", "true":
		w.Header().Set("Content-Type", textio.ContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", textio.DownloadName(toolID)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out))
	default:
		writeJSON(w, http.StatusOK, transformResponse{Output: out})
	}
}

func (h *handler) handleNumber(w http.ResponseWriter, r *http.Request) {
	var req numberRequest
	if !h.decodeJSON(w, r, &req) || !h.checkTextSize(w, req.Value) {
		return
	}

	base := numbase.Decimal
	if req.Base != "" {
		var err error
		base, err = numbase.ParseBase(req.Base)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	conv, err := numbase.Convert(req.Value, base)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, numbase.ErrEmptyInput) || errors.Is(err, numbase.ErrInvalidDigits) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, numberResponse{Base: base.ID, Conversion: conv})
}
