package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resuminator/internal/errcode"
)

func Error(c *gin.Context, status int, code int, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "code": errcode.Unauthenticated})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, errcode.Unauthenticated, "unauthorized")
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, errcode.BadRequest, msg)
}

func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, errcode.ResourceMissing, msg)
}

func Unprocessable(c *gin.Context, code int, msg string) {
	Error(c, http.StatusUnprocessableEntity, code, msg)
}

func Internal(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, errcode.SystemError, msg)
}
