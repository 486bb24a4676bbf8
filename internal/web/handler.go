// Package web serves the local browser form for batch resizing: a page with
// the input and output folders, fit mode, background, quality and up to
// five size rows, and a result page showing the run log.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/message"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/logging"
	"github.com/backmassage/resizehelper/internal/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.html"))

// maxFormBytes bounds the POST body.
const maxFormBytes = 1 << 20

// BatchRunner runs one batch. *pipeline.Runner implements it.
type BatchRunner interface {
	Run(ctx context.Context, rc pipeline.RunConfig) (pipeline.Result, error)
}

// Handler serves GET / (the form) and POST /convert (run a batch). Every
// other request gets a plain-text 404.
type Handler struct {
	Session *Session
	Runner  BatchRunner
	Log     *logging.Logger

	msg   *message.Printer
	runMu sync.Mutex // one batch at a time
}

// NewHandler returns a handler whose form messages use lang.
func NewHandler(s *Session, r BatchRunner, log *logging.Logger, lang string) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{Session: s, Runner: r, Log: log, msg: newPrinter(lang)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/":
		h.renderForm(w, http.StatusOK, "")
	case r.Method == http.MethodPost && r.URL.Path == "/convert":
		h.convert(w, r)
	default:
		send(w, http.StatusNotFound, "text/plain; charset=utf-8", []byte("Not found"))
	}
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		send(w, http.StatusBadRequest, "text/plain; charset=utf-8", []byte(err.Error()))
		return
	}
	v := r.PostForm

	// Fields are remembered even when validation fails below.
	fields := readFields(v, h.Session.Defaults())
	h.Session.setFields(fields)

	quality, err := parseQuality(fields.Quality)
	if err != nil {
		h.reject(w, err)
		return
	}

	rows, jobs, err := readRows(v)
	var fe formError
	if err == nil || (errors.As(err, &fe) && fe.key == msgNoRows) {
		h.Session.setRows(rows)
	}
	if err != nil {
		h.reject(w, err)
		return
	}

	rc := pipeline.RunConfig{
		InputDir:   config.ExpandHome(fields.InputDir),
		OutputDir:  config.ExpandHome(fields.OutputDir),
		Jobs:       jobs,
		Mode:       config.Mode(fields.Mode),
		Background: fields.Background,
		Quality:    quality,
	}

	// A batch runs to completion even if the client goes away.
	h.runMu.Lock()
	res, err := h.Runner.Run(context.WithoutCancel(r.Context()), rc)
	h.runMu.Unlock()

	var ce *pipeline.ConfigError
	switch {
	case err == nil:
		h.renderResult(w, http.StatusOK, res.Lines)
	case errors.As(err, &ce):
		h.Log.Warn("run rejected: %s", ce.Line)
		h.renderResult(w, http.StatusInternalServerError, []string{h.msg.Sprintf(msgServerError, ce.Line)})
	default:
		h.Log.Error("run failed: %v", err)
		h.renderResult(w, http.StatusInternalServerError, []string{h.msg.Sprintf(msgServerError, err)})
	}
}

func (h *Handler) reject(w http.ResponseWriter, err error) {
	var fe formError
	text := err.Error()
	if errors.As(err, &fe) {
		text = h.msg.Sprintf(fe.key)
	}
	h.Log.Warn("form rejected: %s", text)
	h.renderForm(w, http.StatusBadRequest, text)
}

type formPage struct {
	Message string
	State   FormState
	Modes   []config.Mode
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "form.html", formPage{
		Message: message,
		State:   h.Session.Snapshot(),
		Modes:   config.Modes,
	})
}

func (h *Handler) renderResult(w http.ResponseWriter, status int, lines []string) {
	h.render(w, status, "result.html", struct{ Log string }{strings.Join(lines, "\n")})
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.Log.Error("render %s: %v", name, err)
		send(w, http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("template error"))
		return
	}
	send(w, status, "text/html; charset=utf-8", buf.Bytes())
}

// send writes a complete uncached response.
func send(w http.ResponseWriter, status int, contentType string, body []byte) {
	hdr := w.Header()
	hdr.Set("Content-Type", contentType)
	hdr.Set("Cache-Control", "no-store")
	hdr.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
