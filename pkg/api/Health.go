package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (api *Api) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": api.Registry.Len(),
	})
}
