package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) getHelloWorld(c *gin.Context) {
	c.String(http.StatusOK, "Hello world")
}
