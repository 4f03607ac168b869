package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) listUsers(c *gin.Context) {
	all, err := a.users.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (a *API) postUser(c *gin.Context) {
	type request struct {
		Name         string `json:"name"`
		Email        string `json:"email" validate:"required,email"`
		Photo        string `json:"photo"`
		CreatedAt    string `json:"createdAt"`
		LastLoggedAt string `json:"lastLoggedAt"`
	}

	doc, ok := bindDocument(c, &request{})
	if !ok {
		return
	}

	res, err := a.users.Add(c.Request.Context(), doc)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) patchUser(c *gin.Context) {
	type request struct {
		Email        string `json:"email" validate:"required,email"`
		LastLoggedAt string `json:"lastLoggedAt" validate:"required"`
	}

	var req request
	if !bindBody(c, &req) {
		return
	}

	res, err := a.users.UpdateLastLoggedAt(c.Request.Context(), req.Email, req.LastLoggedAt)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) deleteUser(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}

	res, err := a.users.Delete(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
