package http

import (
	"bytes"
	"errors"
	"html/template"

	"budgety/internal/core"
)

// pageSink collects what one request changed on the page: out-of-band
// fragments for the body and the events for the trigger headers.
type pageSink struct {
	templates *template.Template
	currency  string

	buf         bytes.Buffer
	percentages []string
	cleared     bool
	deleted     string
	err         error
}

func newPageSink(t *template.Template, currency string) *pageSink {
	return &pageSink{templates: t, currency: currency}
}

func (p *pageSink) render(name string, data any) {
	if p.templates == nil {
		p.err = errors.Join(p.err, errTemplatesNotLoaded)
		return
	}
	if err := p.templates.ExecuteTemplate(&p.buf, name, data); err != nil {
		p.err = errors.Join(p.err, err)
	}
}

func (p *pageSink) DisplayBudget(b core.Budget) {
	p.render("budget_header", newBudgetView(b, p.currency, true))
}

func (p *pageSink) AddListItem(e core.Entry) {
	p.render("entry_row_oob", newEntryView(e, p.currency))
}

func (p *pageSink) DeleteListItem(itemID string) {
	p.deleted = itemID
	p.render("entry_row_delete", itemID)
}

func (p *pageSink) DisplayPercentages(ps []core.Percentage) {
	p.percentages = percentageLabels(ps)
}

func (p *pageSink) ClearFields() {
	p.cleared = true
}

// response turns the collected changes into an htmx response.
func (p *pageSink) response() *HTMXResponseBuilder {
	b := NewHTMXResponse().BodyHTML(p.buf.String())
	if p.cleared {
		b.TriggerFormReset()
	}
	if p.deleted != "" {
		b.TriggerItemDeleted(p.deleted)
	}
	if p.percentages != nil {
		b.TriggerPercentagesUpdated(p.percentages)
	}
	return b
}
