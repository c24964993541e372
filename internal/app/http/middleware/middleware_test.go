package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("test-secret")

func sessionRouter() *gin.Engine {
	r := gin.New()
	r.Use(BrowserSession(testSecret, false))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, BrowserID(c))
	})
	return r
}

func browserCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == BrowserCookie {
			return ck
		}
	}
	return nil
}

func TestBrowserSession_IssuesAndReusesID(t *testing.T) {
	r := sessionRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Body.String()
	require.NotEmpty(t, id)

	ck := browserCookie(t, rec)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)
	assert.Equal(t, id, rec2.Body.String())
	assert.Nil(t, browserCookie(t, rec2), "a valid cookie is not reissued")
}

func TestBrowserSession_RejectsForgedCookie(t *testing.T) {
	r := sessionRouter()

	forged, err := signBrowserToken("6f1c1b8e-8d0e-4e0b-9a53-5a1b2c3d4e5f", []byte("other-secret"), time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: BrowserCookie, Value: forged})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.NotEqual(t, "6f1c1b8e-8d0e-4e0b-9a53-5a1b2c3d4e5f", rec.Body.String())
	assert.NotNil(t, browserCookie(t, rec))
}

func TestBrowserSession_RejectsExpiredCookie(t *testing.T) {
	old, err := signBrowserToken("6f1c1b8e-8d0e-4e0b-9a53-5a1b2c3d4e5f", testSecret, time.Now().Add(-2*browserCookieAge))
	require.NoError(t, err)

	_, err = parseBrowserToken(old, testSecret)
	assert.Error(t, err)
}

func TestBrowserSession_MissingSecret(t *testing.T) {
	r := gin.New()
	r.Use(BrowserSession(nil, false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCSRF_DisabledWithoutKey(t *testing.T) {
	r := gin.New()
	r.Use(CSRF(nil, false))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRF_BlocksPostWithoutToken(t *testing.T) {
	r := gin.New()
	r.Use(CSRF([]byte("0123456789abcdef0123456789abcdef"), false))
	handled := false
	r.POST("/", func(c *gin.Context) {
		handled = true
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, handled)
}
