package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Lari-oliv/olive-beauty/errors"
	"github.com/Lari-oliv/olive-beauty/middleware"
	"github.com/Lari-oliv/olive-beauty/services"
)

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

// fail writes a service error as the error envelope.
func fail(c *gin.Context, serr *services.ServiceError) {
	c.AbortWithStatusJSON(serr.StatusCode, apperrors.Envelope(serr.Message))
}

// invalidInput hands a binding or parsing failure to ErrorMiddleware.
func invalidInput(c *gin.Context, message string, err error) {
	_ = c.Error(apperrors.New(http.StatusBadRequest, message, err))
	c.Abort()
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		invalidInput(c, "Invalid "+name+" format", err)
		return uuid.Nil, false
	}
	return id, true
}

// currentUser reads the authenticated user id; AuthRequired guarantees it on
// protected routes.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}
