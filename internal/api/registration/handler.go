package registration

import (
	"errors"
	"log/slog"
	"net/http"

	"celerium-registration/internal/app/flow"
	"celerium-registration/internal/app/http/middleware"
	"celerium-registration/internal/app/http/views"
	"celerium-registration/internal/domain/enrollment"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

type Handler struct {
	flow *flow.Flow
}

func NewHandler(f *flow.Flow) *Handler {
	return &Handler{flow: f}
}

// statusFor maps a flow error to the HTTP status of its response.
func statusFor(err error) int {
	var verr *enrollment.ValidationError
	var perr *flow.PaymentError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &perr):
		return http.StatusBadGateway
	case errors.Is(err, flow.ErrAlreadyPending), errors.Is(err, flow.ErrNothingPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) render(c *gin.Context, view flow.View, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("registration action failed", "path", c.FullPath(), "error", err)
		view = flow.View{State: flow.StateForm, Notice: &flow.Notice{
			Icon:  flow.IconError,
			Title: "Error",
			Text:  "No pudimos procesar tu solicitud. Intenta de nuevo.",
		}}
	}
	if view.RedirectURL != "" {
		c.Redirect(http.StatusSeeOther, view.RedirectURL)
		return
	}
	c.HTML(status, views.Index, views.NewPage(view, csrf.TemplateField(c.Request)))
}

// Page shows the form or the summary.
func (h *Handler) Page(c *gin.Context) {
	view, err := h.flow.Load(c.Request.Context(), middleware.BrowserID(c))
	h.render(c, view, err)
}

func (h *Handler) Submit(c *gin.Context) {
	var sub enrollment.Submission
	if err := c.ShouldBind(&sub); err != nil {
		c.HTML(http.StatusBadRequest, views.Index, views.NewPage(flow.View{
			State:  flow.StateForm,
			Notice: &flow.Notice{Icon: flow.IconError, Title: "¡Error!", Text: "Formulario inválido."},
		}, csrf.TemplateField(c.Request)))
		return
	}

	view, err := h.flow.Submit(c.Request.Context(), middleware.BrowserID(c), sub)
	h.render(c, view, err)
}

func (h *Handler) Confirm(c *gin.Context) {
	view, err := h.flow.Confirm(c.Request.Context(), middleware.BrowserID(c))
	h.render(c, view, err)
}

func (h *Handler) Edit(c *gin.Context) {
	view, err := h.flow.Edit(c.Request.Context(), middleware.BrowserID(c))
	h.render(c, view, err)
}

func (h *Handler) Pay(c *gin.Context) {
	view, err := h.flow.Pay(c.Request.Context(), middleware.BrowserID(c))
	h.render(c, view, err)
}
