package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	store := NewStore("secret", time.Hour, false)

	token, err := store.Encode(map[string]float64{"heart": 0.73})
	require.NoError(t, err)

	risks, err := store.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, 0.73, risks["heart"])

	other := NewStore("another-secret", time.Hour, false)
	_, err = other.Decode(token)
	assert.Error(t, err)
}

func TestRecordMergesCookie(t *testing.T) {
	store := NewStore("secret", time.Hour, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	require.NoError(t, store.Record(rec, req, "heart", 0.4))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/assess/kidney/predict", nil)
	req2.AddCookie(cookies[0])
	require.NoError(t, store.Record(rec2, req2, "kidney", 0.2))

	req3 := httptest.NewRequest(http.MethodGet, "/results", nil)
	req3.AddCookie(rec2.Result().Cookies()[0])
	assert.Equal(t, map[string]float64{"heart": 0.4, "kidney": 0.2}, store.Read(req3))
}

func TestReadIgnoresBadCookies(t *testing.T) {
	store := NewStore("secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	assert.Empty(t, store.Read(req))

	expired := NewStore("secret", time.Hour, false)
	expired.ttl = -time.Minute
	token, err := expired.Encode(map[string]float64{"heart": 0.9})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/results", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	assert.Empty(t, store.Read(req))
}
