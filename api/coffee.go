package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/circleci/coffeeshop/coffee"
)

func (a *API) listCoffee(c *gin.Context) {
	all, err := a.coffee.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (a *API) getCoffee(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}

	found, err := a.coffee.ByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, coffee.ErrNotFound):
		// a miss is not an error, the body is null
		c.JSON(http.StatusOK, nil)
	case err != nil:
		storeError(c, err)
	default:
		c.JSON(http.StatusOK, found)
	}
}

func (a *API) postCoffee(c *gin.Context) {
	type request struct {
		Category string `json:"category"`
		Details  string `json:"details"`
		Name     string `json:"name" validate:"required"`
		Photo    string `json:"photo"`
		Quantity *int   `json:"quantity" validate:"omitempty,gte=0"`
		Supplier string `json:"supplier"`
		Taste    string `json:"taste"`
	}

	doc, ok := bindDocument(c, &request{})
	if !ok {
		return
	}

	res, err := a.coffee.Add(c.Request.Context(), doc)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) putCoffee(c *gin.Context) {
	type request struct {
		Category *string `json:"category"`
		Details  *string `json:"details"`
		Name     *string `json:"name"`
		Photo    *string `json:"photo"`
		Quantity *int    `json:"quantity" validate:"omitempty,gte=0"`
		Supplier *string `json:"supplier"`
		Taste    *string `json:"taste"`
	}

	id, ok := objectID(c)
	if !ok {
		return
	}

	var req request
	if !bindBody(c, &req) {
		return
	}

	res, err := a.coffee.Update(c.Request.Context(), id, coffee.Update(req))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) deleteCoffee(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}

	res, err := a.coffee.Delete(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
