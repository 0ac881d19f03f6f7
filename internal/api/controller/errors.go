package controller

import (
	"errors"
	"net/http"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/model"
	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

// respondError maps domain errors to HTTP statuses.
func respondError(c *gin.Context, component string, err error) {
	log := logger.WithComponent(component)
	switch {
	case errors.Is(err, model.ErrValidation):
		log.Debugf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		log.Debugf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondCached writes a pre-serialized JSON payload.
func respondCached(c *gin.Context, component string, body []byte, err error) {
	if err != nil {
		respondError(c, component, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}
