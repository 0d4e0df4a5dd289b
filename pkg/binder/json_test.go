package binder_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferosa45/listlab-backend-sub000/pkg/binder"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	bind := binder.JSON()

	type payload struct {
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}

	t.Run("decodes valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"pro","count":3}`))
		req.Header.Set("Content-Type", "application/json")

		var out payload
		require.NoError(t, bind(req, &out))
		assert.Equal(t, "pro", out.Name)
		assert.EqualValues(t, 3, out.Count)
	})

	t.Run("accepts content type with charset", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var out payload
		assert.NoError(t, bind(req, &out))
	})

	t.Run("requires content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))

		var out payload
		assert.ErrorIs(t, bind(req, &out), binder.ErrMissingContentType)
	})

	t.Run("rejects non-json content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "text/plain")

		var out payload
		assert.ErrorIs(t, bind(req, &out), binder.ErrUnsupportedMediaType)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")

		var out payload
		assert.ErrorIs(t, bind(req, &out), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		req.Header.Set("Content-Type", "application/json")

		var out payload
		assert.ErrorIs(t, bind(req, &out), binder.ErrFailedToParseJSON)
	})
}
