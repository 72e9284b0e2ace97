//go:build e2e

package e2e

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_FormShownWithoutSession(t *testing.T) {
	page := newPage(t)
	resp, err := page.Goto(baseURL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status())

	visible, err := page.Locator("#name").IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "login form should be visible")
}

func TestLogin_Greeting(t *testing.T) {
	page := newPage(t)
	login(t, page, "철수")
	assert.Equal(t, "철수님 안녕하세요.", strings.TrimSpace(bodyText(t, page)))

	// session cookie is http-only and scoped to root
	cookies, err := page.Context().Cookies(baseURL)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)

	// any other path is greeted too
	_, err = page.Goto(baseURL + "/other")
	require.NoError(t, err)
	assert.Equal(t, "철수님 안녕하세요.", strings.TrimSpace(bodyText(t, page)))
}

func TestLogin_EmptyName(t *testing.T) {
	page := newPage(t)
	resp, err := page.Goto(baseURL + "/login?name=")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Status())
	assert.Contains(t, bodyText(t, page), "이름이 제공되지 않았습니다.")
}

func TestLogin_SessionExpires(t *testing.T) {
	page := newPage(t)
	login(t, page, "영희")
	assert.Equal(t, "영희님 안녕하세요.", strings.TrimSpace(bodyText(t, page)))

	// server runs with 3s ttl, cookie expires in the browser too
	time.Sleep(4 * time.Second)
	_, err := page.Reload()
	require.NoError(t, err)
	visible, err := page.Locator("#name").IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "login form should be back after expiry")
}

func TestLogin_IsolatedBrowsers(t *testing.T) {
	alice := newPage(t)
	bob := newPage(t)
	login(t, alice, "alice")
	login(t, bob, "bob")

	_, err := alice.Reload()
	require.NoError(t, err)
	assert.Equal(t, "alice님 안녕하세요.", strings.TrimSpace(bodyText(t, alice)))
	assert.Equal(t, "bob님 안녕하세요.", strings.TrimSpace(bodyText(t, bob)))
}
