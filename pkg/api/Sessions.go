package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sessions lists active sessions from the registry.
func (api *Api) Sessions(c *gin.Context) {
	c.JSON(http.StatusOK, api.Registry.List())
}

func (api *Api) About(c *gin.Context) {
	c.JSON(http.StatusOK, api.Version)
}
