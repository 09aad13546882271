package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"student", "admin"} {
		r, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), r)
	}

	for _, invalid := range []string{"", "root", "Admin", "superuser"} {
		_, err := ParseRole(invalid)
		assert.Error(t, err, "role %q should be rejected", invalid)
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s, err := New("user-1", RoleStudent, now)
	require.NoError(t, err)
	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, now.Add(TTL), s.ExpiresAt)

	_, err = New("", RoleStudent, now)
	assert.Error(t, err)

	_, err = New("user-1", Role("owner"), now)
	assert.Error(t, err)
}

func TestGenerateID_Unique(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := New("user-1", RoleAdmin, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, s.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, RoleAdmin, got.Role)

	// Unknown ids resolve to absent, not error.
	got, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Delete is idempotent.
	require.NoError(t, store.Delete(ctx, s.SessionID))
	require.NoError(t, store.Delete(ctx, s.SessionID))

	got, err = store.Get(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_ExpiredResolvesAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := Session{
		SessionID: "soon-dead",
		UserID:    "user-1",
		Role:      RoleStudent,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Millisecond),
	}
	require.NoError(t, store.Create(ctx, s))
	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_RejectsUnknownRole(t *testing.T) {
	store := NewMemoryStore()
	err := store.Create(context.Background(), Session{
		SessionID: "sess-1",
		UserID:    "user-1",
		Role:      Role("root"),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestCookiePolicy(t *testing.T) {
	prod := CookiePolicy(true)
	assert.True(t, prod.Secure)
	assert.Equal(t, http.SameSiteNoneMode, prod.SameSite)
	assert.True(t, prod.HttpOnly)

	dev := CookiePolicy(false)
	assert.False(t, dev.Secure)
	assert.Equal(t, http.SameSiteLaxMode, dev.SameSite)
	assert.True(t, dev.HttpOnly)
}

func TestSetAndClearCookie(t *testing.T) {
	w := httptest.NewRecorder()
	exp := time.Now().Add(TTL)
	SetCookie(w, "session-id", exp, CookiePolicy(true))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "session-id", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	assert.Greater(t, c.MaxAge, 0)

	w = httptest.NewRecorder()
	ClearCookie(w, CookiePolicy(true))
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
