package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Healthcheck(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"status": "ok"}, "OK")
}
