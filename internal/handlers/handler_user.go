package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	responder
	userService portssvc.UserReaderSvc
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserReaderSvc, translator *i18n.Translator) *userHandler {
	return &userHandler{
		responder:   responder{translator: translator},
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, h *userHandler) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
	}
}

// getMe godoc
// @Summary Get the signed-in user
// @Description Returns the profile of the caller.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to load signed-in user", slog.String("error", err.Error()))
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
