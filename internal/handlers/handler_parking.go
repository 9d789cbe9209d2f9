package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CodeInvalidPin is returned when the submitted PIN is not four digits.
const CodeInvalidPin = "parking/invalid-pin"

// parkingHandler serves the gate operations and the log views.
type parkingHandler struct {
	responder
	parkingService portssvc.ParkingSvcFacade
}

func newParkingHandler(ps portssvc.ParkingSvcFacade, translator *i18n.Translator) *parkingHandler {
	return &parkingHandler{
		responder:      responder{translator: translator},
		parkingService: ps,
	}
}

// registerParkingRoutes registers all parking routes. exitLimit guards the
// exit endpoint against PIN guessing.
func registerParkingRoutes(rg *gin.RouterGroup, h *parkingHandler, exitLimit gin.HandlerFunc) {
	parking := rg.Group("/parking")
	{
		parking.POST("/entries", h.recordEntry)
		parking.POST("/exits", exitLimit, h.recordExit)
		parking.GET("/history", h.listHistory)
		parking.GET("/payments", h.listPayments)
		parking.DELETE("/logs", h.deleteLogs)
	}
}

// recordEntry godoc
// @Summary Record a vehicle entry
// @Description Issues a 4-digit PIN and appends an ENTRY record.
// @Tags parking
// @Produce json
// @Success 201 {object} dto.EntryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /parking/entries [post]
func (h *parkingHandler) recordEntry(c *gin.Context) {
	rec, err := h.parkingService.RecordEntry(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := dto.ToEntryResponse(rec)
	resp.Message = h.message(c, i18n.MsgUsePinOnExit)
	c.JSON(http.StatusCreated, resp)
}

// recordExit godoc
// @Summary Record a vehicle exit
// @Description Resolves the PIN to its latest entry, prices the stay and appends an EXIT record.
// @Tags parking
// @Accept json
// @Produce json
// @Param request body dto.ExitRequest true "PIN issued on entry"
// @Success 200 {object} dto.ExitResponse
// @Failure 400 {object} dto.ErrorResponse "PIN is not four digits"
// @Failure 404 {object} dto.ErrorResponse "No entry with this PIN"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /parking/exits [post]
func (h *parkingHandler) recordExit(c *gin.Context) {
	var req dto.ExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Rejected exit request", slog.String("error", err.Error()))
		h.abort(c, http.StatusBadRequest, CodeInvalidPin, i18n.MsgInvalidPin,
			h.translator.ValidationMessages(middleware.GetLocale(c), err)...)
		return
	}
	if !domain.IsValidPin(req.Pin) {
		h.abort(c, http.StatusBadRequest, CodeInvalidPin, i18n.MsgInvalidPin)
		return
	}
	res, err := h.parkingService.RecordExit(c.Request.Context(), req.Pin)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExitResponse(res))
}

// listHistory godoc
// @Summary List parking history
// @Description Lists every record in store order, annotated with the entry/exit pairing.
// @Tags parking
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListHistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /parking/history [get]
func (h *parkingHandler) listHistory(c *gin.Context) {
	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.parkingService.ListHistory(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err)
		return
	}
	for i := range resp.Items {
		resp.Items[i].StatusLabel = h.statusLabel(c, resp.Items[i].Status)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *parkingHandler) statusLabel(c *gin.Context, status string) string {
	if status == string(domain.StatusActive) {
		return h.message(c, i18n.MsgStatusActive)
	}
	return h.message(c, i18n.MsgStatusCompleted)
}

// listPayments godoc
// @Summary List payments
// @Description Lists the records that carry an amount. The total covers the returned page.
// @Tags parking
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /parking/payments [get]
func (h *parkingHandler) listPayments(c *gin.Context) {
	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.parkingService.ListPayments(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteLogs godoc
// @Summary Delete every parking record
// @Description Irreversibly purges the log. Requires confirm=true.
// @Tags parking
// @Produce json
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Confirmation missing"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /parking/logs [delete]
func (h *parkingHandler) deleteLogs(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var params dto.DeleteLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.bindError(c, err)
		return
	}
	if !params.Confirm {
		h.abort(c, http.StatusBadRequest, CodeConfirmRequired, i18n.MsgConfirmRequired)
		return
	}
	if err := h.parkingService.DeleteAllLogs(c.Request.Context(), userID, true); err != nil {
		h.fail(c, err)
		return
	}
	middleware.GetLoggerFromContext(c).Warn("Parking log deleted by operator")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.message(c, i18n.MsgLogsDeleted)})
}
