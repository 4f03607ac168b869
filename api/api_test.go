package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"gotest.tools/v3/assert"

	"github.com/circleci/coffeeshop/coffee"
	"github.com/circleci/coffeeshop/internal/testmongo"
	"github.com/circleci/coffeeshop/users"
)

type fixture struct {
	url string

	DB     *mongo.Database
	Coffee *coffee.Store
	Users  *users.Store
}

func startAPI(ctx context.Context, t testing.TB) *fixture {
	t.Helper()

	dbfix := testmongo.Setup(ctx, t)
	fix := &fixture{
		DB:     dbfix.DB,
		Coffee: coffee.NewStore(dbfix.DB),
		Users:  users.NewStore(dbfix.DB),
	}

	api := New(ctx, Options{
		Coffee: fix.Coffee,
		Users:  fix.Users,
	})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	fix.url = srv.URL
	return fix
}

func startAPIWithStores(ctx context.Context, t testing.TB, opts Options) string {
	t.Helper()

	srv := httptest.NewServer(New(ctx, opts).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func (f *fixture) Get(t testing.TB, path string, v interface{}) int {
	t.Helper()
	return do(t, http.MethodGet, f.url+path, nil, v)
}

func (f *fixture) Post(t testing.TB, path string, body, v interface{}) int {
	t.Helper()
	return do(t, http.MethodPost, f.url+path, body, v)
}

func (f *fixture) Put(t testing.TB, path string, body, v interface{}) int {
	t.Helper()
	return do(t, http.MethodPut, f.url+path, body, v)
}

func (f *fixture) Patch(t testing.TB, path string, body, v interface{}) int {
	t.Helper()
	return do(t, http.MethodPatch, f.url+path, body, v)
}

func (f *fixture) Delete(t testing.TB, path string, v interface{}) int {
	t.Helper()
	return do(t, http.MethodDelete, f.url+path, nil, v)
}

// do sends body, as JSON unless it is already raw bytes, and decodes the response into v if v is not nil.
func do(t testing.TB, method, rawurl string, body, v interface{}) (statusCode int) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		r = bytes.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		assert.Assert(t, err)
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, rawurl, r)
	assert.Assert(t, err)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	assert.Assert(t, err)

	defer func() {
		assert.Check(t, resp.Body.Close())
	}()

	if v != nil {
		err = json.NewDecoder(resp.Body).Decode(v)
		assert.Assert(t, err)
	}

	return resp.StatusCode
}
