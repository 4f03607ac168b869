// Package api serves the coffee and users resources over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/circleci/ex/httpserver/ginrouter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/circleci/coffeeshop/coffee"
	"github.com/circleci/coffeeshop/database"
)

var validate = validator.New()

// CoffeeStore is the coffee collection as the handlers use it. See coffee.Store.
type CoffeeStore interface {
	List(ctx context.Context) ([]bson.M, error)
	ByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	Add(ctx context.Context, doc bson.M) (database.InsertResult, error)
	Update(ctx context.Context, id primitive.ObjectID, u coffee.Update) (database.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error)
}

// UserStore is the users collection as the handlers use it. See users.Store.
type UserStore interface {
	List(ctx context.Context) ([]bson.M, error)
	Add(ctx context.Context, doc bson.M) (database.InsertResult, error)
	UpdateLastLoggedAt(ctx context.Context, email, lastLoggedAt string) (database.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error)
}

// API routes each request to a single store call and writes the result as JSON.
type API struct {
	router *gin.Engine
	coffee CoffeeStore
	users  UserStore
}

// Options holds the stores the handlers call.
type Options struct {
	Coffee CoffeeStore
	Users  UserStore
}

// New builds the router. The context must carry the o11y provider requests are traced with.
func New(ctx context.Context, opts Options) *API {
	r := ginrouter.Default(ctx, "api")
	// the browser client is served from another origin
	r.Use(cors.Default())

	a := &API{
		router: r,
		coffee: opts.Coffee,
		users:  opts.Users,
	}

	r.GET("/", a.getHelloWorld)

	r.GET("/coffee", a.listCoffee)
	r.GET("/coffee/:id", a.getCoffee)
	r.POST("/coffee", a.postCoffee)
	r.PUT("/coffee/:id", a.putCoffee)
	r.DELETE("/coffee/:id", a.deleteCoffee)

	r.GET("/users", a.listUsers)
	r.POST("/users", a.postUser)
	r.PATCH("/users", a.patchUser)
	r.DELETE("/users/:id", a.deleteUser)

	return a
}

func (a *API) Handler() http.Handler {
	return a.router
}
