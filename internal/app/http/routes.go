package routes

import (
	billingapi "celerium-registration/internal/api/billing"
	"celerium-registration/internal/api/registration"
	stripewebhooks "celerium-registration/internal/api/stripewebhook"
	"celerium-registration/internal/app/flow"
	"celerium-registration/internal/app/http/middleware"
	"celerium-registration/internal/app/http/views"

	"github.com/gin-gonic/gin"
)

// Options carries what the routes need from main.
type Options struct {
	SessionSecret []byte
	CSRFKey       []byte
	SecureCookies bool

	// Payments enables /api/pagos when set.
	Payments      billingapi.HistoryReader
	// WebhookSecret and Checkouts enable the Stripe webhook when both are set.
	WebhookSecret string
	Checkouts     stripewebhooks.CheckoutSettler
}

func RegisterRoutes(r *gin.Engine, f *flow.Flow, opts Options) {
	r.SetHTMLTemplate(views.Load())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if opts.WebhookSecret != "" && opts.Checkouts != nil {
		r.POST("/webhook", stripewebhooks.StripeWebhook(opts.WebhookSecret, opts.Checkouts))
	}

	h := registration.NewHandler(f)

	// HTML pages. Bodies reach the handlers untouched: names are checked
	// against the raw input and templates escape on output.
	pages := r.Group("/")
	pages.Use(
		middleware.BrowserSession(opts.SessionSecret, opts.SecureCookies),
		middleware.CSRF(opts.CSRFKey, opts.SecureCookies),
	)
	pages.GET("/", h.Page)
	pages.POST("/inscripcion", h.Submit)
	pages.POST("/inscripcion/confirmar", h.Confirm)
	pages.POST("/inscripcion/editar", h.Edit)
	pages.POST("/inscripcion/pago", h.Pay)

	// JSON API
	api := r.Group("/api")
	api.GET("/precios", registration.Prices)

	session := api.Group("/")
	session.Use(middleware.BrowserSession(opts.SessionSecret, opts.SecureCookies))
	session.GET("/inscripcion", h.GetJSON)
	session.POST("/inscripcion", h.SubmitJSON)
	session.DELETE("/inscripcion", h.EditJSON)
	session.POST("/inscripcion/editar", h.EditJSON)
	session.POST("/inscripcion/confirmar", h.ConfirmJSON)
	session.POST("/inscripcion/pago", h.PayJSON)

	if opts.Payments != nil {
		session.GET("/pagos", billingapi.GetPaymentHistory(opts.Payments))
	}
}
