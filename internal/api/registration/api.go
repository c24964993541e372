package registration

import (
	"net/http"

	"celerium-registration/internal/app/flow"
	"celerium-registration/internal/app/http/middleware"
	"celerium-registration/internal/domain/enrollment"

	"github.com/gin-gonic/gin"
)

func (h *Handler) respondJSON(c *gin.Context, view flow.View, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		c.JSON(status, gin.H{"error": "Failed to process registration", "details": err.Error()})
		return
	case http.StatusConflict:
		c.JSON(status, gin.H{"error": err.Error(), "state": view.State, "registration": view.Registration})
		return
	}
	c.JSON(status, view)
}

func (h *Handler) GetJSON(c *gin.Context) {
	view, err := h.flow.Load(c.Request.Context(), middleware.BrowserID(c))
	h.respondJSON(c, view, err)
}

func (h *Handler) SubmitJSON(c *gin.Context) {
	var sub enrollment.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.flow.Submit(c.Request.Context(), middleware.BrowserID(c), sub)
	h.respondJSON(c, view, err)
}

func (h *Handler) ConfirmJSON(c *gin.Context) {
	view, err := h.flow.Confirm(c.Request.Context(), middleware.BrowserID(c))
	h.respondJSON(c, view, err)
}

func (h *Handler) EditJSON(c *gin.Context) {
	view, err := h.flow.Edit(c.Request.Context(), middleware.BrowserID(c))
	h.respondJSON(c, view, err)
}

func (h *Handler) PayJSON(c *gin.Context) {
	view, err := h.flow.Pay(c.Request.Context(), middleware.BrowserID(c))
	h.respondJSON(c, view, err)
}

// Prices lists the weekly table and the flat adult plan.
func Prices(c *gin.Context) {
	custom := enrollment.CustomPlan()
	c.JSON(http.StatusOK, gin.H{
		"opciones":      enrollment.PricingTable(),
		"personalizada": custom,
		"edad_maxima":   enrollment.MaxMinorAge,
	})
}
