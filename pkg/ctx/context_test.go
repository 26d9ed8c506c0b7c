package ctx_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/pkg/auth"
	appctx "github.com/shashiranjanraj/lodge/pkg/ctx"
	"github.com/shashiranjanraj/lodge/pkg/testkit"
)

type signIn struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func run(t *testing.T, req *http.Request, h appctx.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestSuccessEnvelope(t *testing.T) {
	rec := run(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	testkit.AssertJSONEqual(t, `{"status":200,"data":{"id":1}}`, rec.Body.Bytes())
}

func TestBindJSON(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"valid", `{"email":"ada@example.com","password":"pw"}`, http.StatusOK},
		{"invalid", `{"email":"nope"}`, http.StatusUnprocessableEntity},
		{"malformed", `{"email":`, http.StatusBadRequest},
		{"empty", ``, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := run(t, req, func(c *appctx.Context) {
				var in signIn
				if !c.BindJSON(&in) {
					return
				}
				c.Success(in.Email)
			})
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestValidationErrorLists(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	rec := run(t, req, func(c *appctx.Context) {
		var in signIn
		c.BindJSON(&in)
	})

	testkit.AssertJSONEqual(t, `{
		"status": 422,
		"message": "Validation failed",
		"errors": {"email": "The email field is required.", "password": "The password field is required."}
	}`, rec.Body.Bytes())
}

func TestDecodeJSONSkipsValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	rec := run(t, req, func(c *appctx.Context) {
		var in signIn
		if c.DecodeJSON(&in) {
			c.Success(in.Email)
		}
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?q=hoodie", nil)
	req.Header.Set("Authorization", "Bearer tok")
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: "u1", Role: auth.RoleUser}))

	run(t, req, func(c *appctx.Context) {
		assert.Equal(t, "u1", c.UserID())
		assert.Equal(t, "tok", c.Token())
		assert.Equal(t, "hoodie", c.Query("q"))
		assert.Equal(t, "all", c.DefaultQuery("category", "all"))
		id, ok := c.Identity()
		require.True(t, ok)
		assert.False(t, id.IsAdmin())
	})
}

func TestFormFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	fw.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := run(t, req, func(c *appctx.Context) {
		f, hdr, ok := c.FormFile("image")
		if !ok {
			return
		}
		defer f.Close()
		c.Success(hdr.Filename)
	})
	testkit.AssertJSONEqual(t, `{"status":200,"data":"photo.png"}`, rec.Body.Bytes())

	rec = run(t, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), func(c *appctx.Context) {
		if _, _, ok := c.FormFile("image"); ok {
			c.Success(nil)
		}
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
