package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"revivecare/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultListLimit = 20

func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	id, ok := userID.(uint)
	if !exists || !ok || id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
			"error":   "User ID not found in token",
		})
		return 0, false
	}
	return id, true
}

func parseIDParam(c *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid " + label + " ID",
			"error":   "ID must be a valid positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// queryLimit reads ?limit=, falling back to def for missing or bad values.
func queryLimit(c *gin.Context, def int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request data",
		"error":   err.Error(),
	})
}

// repositoryError writes the response for a failed repository call.
func repositoryError(c *gin.Context, err error, notFoundMsg, failureMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": notFoundMsg,
			"error":   err.Error(),
		})
	case errors.Is(err, repository.ErrDuplicateRecord):
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Record already exists",
			"error":   err.Error(),
		})
	case errors.Is(err, repository.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Referenced record does not exist",
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": failureMsg,
			"error":   err.Error(),
		})
	}
}

func forbidden(c *gin.Context, detail string) {
	c.JSON(http.StatusForbidden, gin.H{
		"status":  "error",
		"message": "Forbidden",
		"error":   detail,
	})
}
