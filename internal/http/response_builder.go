// Package http serves the budget page and its htmx endpoints.
//
// This file implements the builder for htmx responses: status, body and the
// HX-Trigger / HX-Trigger-After-Swap event headers.
package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// Event names raised on the page.
const (
	EventFormReset          = "form:reset"
	EventPercentagesUpdated = "percentages:updated"
	EventItemDeleted        = "item:deleted"
)

// HTMXResponseBuilder provides a fluent API for building htmx responses.
type HTMXResponseBuilder struct {
	triggers   map[string]any
	afterSwap  map[string]any
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewHTMXResponse creates a new response builder with default 200 status.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		triggers:   make(map[string]any),
		afterSwap:  make(map[string]any),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds an event raised as soon as the response arrives.
func (b *HTMXResponseBuilder) Trigger(name string, data any) *HTMXResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerAfterSwap adds an event raised once out-of-band content is in the
// page. htmx raises it on the body when the requesting element was swapped
// out.
func (b *HTMXResponseBuilder) TriggerAfterSwap(name string, data any) *HTMXResponseBuilder {
	b.afterSwap[name] = data
	return b
}

// TriggerFormReset clears the add form.
func (b *HTMXResponseBuilder) TriggerFormReset() *HTMXResponseBuilder {
	return b.Trigger(EventFormReset, struct{}{})
}

// TriggerPercentagesUpdated carries one label per expense row, in order.
func (b *HTMXResponseBuilder) TriggerPercentagesUpdated(labels []string) *HTMXResponseBuilder {
	if labels == nil {
		labels = []string{}
	}
	return b.TriggerAfterSwap(EventPercentagesUpdated, map[string][]string{"values": labels})
}

// TriggerItemDeleted reports the row that was removed.
func (b *HTMXResponseBuilder) TriggerItemDeleted(itemID string) *HTMXResponseBuilder {
	return b.TriggerAfterSwap(EventItemDeleted, map[string]string{"id": itemID})
}

// Header adds a custom header to the response.
func (b *HTMXResponseBuilder) Header(name, value string) *HTMXResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the response body as bytes.
func (b *HTMXResponseBuilder) Body(content []byte) *HTMXResponseBuilder {
	b.body = content
	return b
}

// BodyString sets the response body as a string.
func (b *HTMXResponseBuilder) BodyString(content string) *HTMXResponseBuilder {
	b.body = []byte(content)
	return b
}

// BodyHTML sets the response body as HTML content.
func (b *HTMXResponseBuilder) BodyHTML(html string) *HTMXResponseBuilder {
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = []byte(html)
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}

	setTriggerHeader(w, "HX-Trigger", b.triggers)
	setTriggerHeader(w, "HX-Trigger-After-Swap", b.afterSwap)

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

func setTriggerHeader(w http.ResponseWriter, name string, triggers map[string]any) {
	if len(triggers) == 0 {
		return
	}
	if triggerJSON, err := json.Marshal(triggers); err == nil {
		w.Header().Set(name, string(triggerJSON))
	}
}

// ErrorResponse creates a standard error response with HTML formatting.
// The message is HTML-escaped.
func ErrorResponse(statusCode int, message string) *HTMXResponseBuilder {
	escapedMsg := template.HTMLEscapeString(message)
	return NewHTMXResponse().
		Status(statusCode).
		BodyHTML(`<div class="error">` + escapedMsg + `</div>`)
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// UnprocessableEntityError creates a 422 Unprocessable Entity error response.
func UnprocessableEntityError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusUnprocessableEntity, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// MethodNotAllowedError creates a 405 Method Not Allowed error response.
func MethodNotAllowedError(allowedMethods string) *HTMXResponseBuilder {
	return NewHTMXResponse().
		Status(http.StatusMethodNotAllowed).
		Header("Allow", allowedMethods)
}
