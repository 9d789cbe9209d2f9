package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/gin-gonic/gin"
)

// CodeUnknownPreference is returned for an unsupported key or value.
const CodeUnknownPreference = "preference/unknown"

type preferenceHandler struct {
	responder
	preferenceService portssvc.PreferenceSvc
}

func newPreferenceHandler(ps portssvc.PreferenceSvc, translator *i18n.Translator) *preferenceHandler {
	return &preferenceHandler{
		responder:         responder{translator: translator},
		preferenceService: ps,
	}
}

func registerPreferenceRoutes(rg *gin.RouterGroup, h *preferenceHandler) {
	prefs := rg.Group("/preferences")
	{
		prefs.GET("", h.listPreferences)
		prefs.GET("/:key", h.getPreference)
		prefs.PUT("/:key", h.setPreference)
	}
}

func (h *preferenceHandler) failPreference(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrValidation) {
		h.abort(c, http.StatusBadRequest, CodeUnknownPreference, i18n.MsgUnknownPreference, err.Error())
		return
	}
	h.fail(c, err)
}

// listPreferences godoc
// @Summary List preferences
// @Description Returns every supported preference with defaults applied.
// @Tags preferences
// @Produce json
// @Success 200 {object} dto.ListPreferencesResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /preferences [get]
func (h *preferenceHandler) listPreferences(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	prefs, err := h.preferenceService.ListPreferences(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := dto.ListPreferencesResponse{Preferences: make([]dto.PreferenceResponse, 0, len(prefs))}
	for _, p := range prefs {
		resp.Preferences = append(resp.Preferences, dto.ToPreferenceResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// getPreference godoc
// @Summary Get a preference
// @Tags preferences
// @Produce json
// @Param key path string true "theme or language"
// @Success 200 {object} dto.PreferenceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /preferences/{key} [get]
func (h *preferenceHandler) getPreference(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	pref, err := h.preferenceService.GetPreference(c.Request.Context(), userID, c.Param("key"))
	if err != nil {
		h.failPreference(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferenceResponse(*pref))
}

// setPreference godoc
// @Summary Set a preference
// @Tags preferences
// @Accept json
// @Produce json
// @Param key path string true "theme or language"
// @Param request body dto.UpdatePreferenceRequest true "New value"
// @Success 200 {object} dto.PreferenceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /preferences/{key} [put]
func (h *preferenceHandler) setPreference(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	pref, err := h.preferenceService.SetPreference(c.Request.Context(), userID, c.Param("key"), req.Value)
	if err != nil {
		h.failPreference(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferenceResponse(*pref))
}
