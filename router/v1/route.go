package v1

import (
	"github.com/go-chi/chi/v5"
	"github.com/mstgnz/checkout/handler"
)

// Handlers groups the handlers served under /v1. Logs is nil when call logging is off.
type Handlers struct {
	Checkout *handler.CheckoutHandler
	Projects *handler.ProjectHandler
	Logs     *handler.LogsHandler
}

// Routes registers all API routes
func Routes(r chi.Router, h Handlers) {
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.Projects.ListProjects)
		r.Post("/", h.Projects.SaveProject)

		r.Route("/{project}", func(r chi.Router) {
			r.Get("/", h.Projects.GetProject)
			r.Delete("/", h.Projects.DeleteProject)

			r.Get("/payment-methods", h.Checkout.GetPaymentMethods)
			r.Post("/redirect", h.Checkout.CreateRedirect)
			r.Post("/callback/validate", h.Checkout.ValidateCallback)
			r.Post("/orders/paid", h.Checkout.CheckOrderPaid)
		})
	})

	if h.Logs != nil {
		r.Route("/logs/{provider}", func(r chi.Router) {
			r.Get("/", h.Logs.ListLogs)
			r.Get("/errors", h.Logs.GetErrorLogs)
			r.Get("/stats", h.Logs.GetLogStats)
		})
	}
}
