package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"budgety/internal/app"
	"budgety/internal/core"
	"budgety/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether the page can be rendered.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.ctrl == nil {
		checks["ledger"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["ledger"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.tracer.GetMetrics()
	stats := s.ctrl.Stats()
	uptime := time.Since(s.started)

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_requests_failed_total HTTP requests answered with a 5xx status\n")
	fmt.Fprintf(w, "# TYPE http_requests_failed_total counter\n")
	fmt.Fprintf(w, "http_requests_failed_total %d\n\n", traceMetrics.FailedRequests)

	fmt.Fprintf(w, "# HELP entries_added_total Total number of entries added\n")
	fmt.Fprintf(w, "# TYPE entries_added_total counter\n")
	fmt.Fprintf(w, "entries_added_total %d\n\n", stats.EntriesAdded)

	fmt.Fprintf(w, "# HELP entries_deleted_total Total number of entries removed from the ledger\n")
	fmt.Fprintf(w, "# TYPE entries_deleted_total counter\n")
	fmt.Fprintf(w, "entries_deleted_total %d\n\n", stats.EntriesDeleted)

	fmt.Fprintf(w, "# HELP inputs_ignored_total Add requests ignored for invalid input\n")
	fmt.Fprintf(w, "# TYPE inputs_ignored_total counter\n")
	fmt.Fprintf(w, "inputs_ignored_total %d\n\n", stats.InputsIgnored)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	logger := log.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			"error_type", log.ErrorTypeConfiguration)
		http.Error(w, errTemplatesNotLoaded.Error(), http.StatusInternalServerError)
		return
	}

	data := indexView{Budget: newBudgetView(s.ctrl.Budget(), s.currency, false)}
	for _, e := range s.ctrl.Entries(core.Income) {
		data.Income = append(data.Income, newEntryView(e, s.currency))
	}
	for _, e := range s.ctrl.Entries(core.Expense) {
		data.Expenses = append(data.Expenses, newEntryView(e, s.currency))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err,
			"template", "index.html")
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// handleAddEntry adds the entry in the form. The response carries the new
// row and the budget header as out-of-band swaps.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx := r.Context()
	logger := log.FromContext(ctx)
	sink := newPageSink(s.templates, s.currency)

	input := ParseEntryForm(r.PostForm)
	entry, added, err := s.ctrl.AddItem(ctx, app.StaticInput(input), sink)
	if isValidationError(err) {
		logger.WarnContext(ctx, "Entry rejected", log.FieldError, err)
		UnprocessableEntityError("Invalid entry").Write(w)
		return
	}
	if err != nil {
		logger.LogFields(ctx, slog.LevelError, "Add entry failed", log.NewFields().
			WithError(err).
			WithOperation(log.OpCreate))
		InternalServerError("Could not add the entry").Write(w)
		return
	}
	if !added {
		NewHTMXResponse().Status(http.StatusNoContent).Write(w)
		return
	}
	if sink.err != nil {
		logger.LogFields(ctx, slog.LevelError, "Render after add failed", log.NewFields().
			WithError(sink.err).
			WithItemID(entry.ItemID()).
			WithOperation(log.OpRender))
		InternalServerError("Entry added, reload the page").Write(w)
		return
	}

	sink.response().Write(w)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrUnknownCategory) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrDescriptionTooLong) ||
		errors.Is(err, core.ErrInvalidAmount)
}

// handleDeleteEntry removes the row named by the id field ("exp-0"), sent
// as form data or JSON.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx := r.Context()
	logger := log.FromContext(ctx)

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}
	itemID := parser.Get("id")
	if itemID == "" {
		itemID = sanitizeInput(r.URL.Query().Get("id"))
	}

	sink := newPageSink(s.templates, s.currency)
	if err := s.ctrl.DeleteItem(ctx, itemID, sink); err != nil {
		if errors.Is(err, app.ErrInvalidItemID) {
			logger.WarnContext(ctx, "Invalid item id", log.FieldItemID, itemID)
			BadRequestError("Invalid item id").Write(w)
			return
		}
		logger.LogFields(ctx, slog.LevelError, "Delete entry failed", log.NewFields().
			WithError(err).
			WithItemID(itemID).
			WithOperation(log.OpDelete))
		InternalServerError("Could not delete the entry").Write(w)
		return
	}
	if sink.err != nil {
		logger.LogFields(ctx, slog.LevelError, "Render after delete failed", log.NewFields().
			WithError(sink.err).
			WithItemID(itemID).
			WithOperation(log.OpRender))
		InternalServerError("Entry deleted, reload the page").Write(w)
		return
	}

	sink.response().Write(w)
}

// handleBudgetPartial renders the budget header on its own.
func (s *Server) handleBudgetPartial(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		InternalServerError(errTemplatesNotLoaded.Error()).Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := newBudgetView(s.ctrl.Budget(), s.currency, false)
	if err := s.templates.ExecuteTemplate(w, "budget_header", view); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Budget template execution failed",
			log.FieldError, err,
			"template", "budget_header")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
