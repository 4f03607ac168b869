package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/circleci/ex/o11y"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusClientClosedRequest is reported when the client hangs up before the store call returns.
const statusClientClosedRequest = 499

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// objectID parses the id path parameter, responding with a 400 when it is not an ObjectID.
func objectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return id, false
	}
	return id, true
}

// bindBody decodes the JSON body into req and validates it, responding with a 400 on failure.
func bindBody(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		err = validate.Struct(req)
	}
	if err != nil {
		invalidBody(c, err)
		return false
	}
	return true
}

// bindDocument validates the JSON body against req, then returns the whole body as a
// document. Fields req does not describe are kept.
func bindDocument(c *gin.Context, req interface{}) (bson.M, bool) {
	body, err := c.GetRawData()
	if err == nil {
		err = json.Unmarshal(body, req)
	}
	if err == nil {
		err = validate.Struct(req)
	}
	var doc bson.M
	if err == nil {
		// relaxed extended JSON keeps whole numbers as integers
		err = bson.UnmarshalExtJSON(body, false, &doc)
	}
	if err != nil {
		invalidBody(c, err)
		return nil, false
	}
	return doc, true
}

func invalidBody(c *gin.Context, err error) {
	o11y.AddField(c.Request.Context(), "invalid_body", err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
		Error:  "invalid body",
		Detail: err.Error(),
	})
}

// storeError responds to a failed store call. The cause is kept out of the response.
func storeError(c *gin.Context, err error) {
	if errors.Is(err, context.Canceled) {
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
