// File: /controllers/auth_controller_test.go
package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet-api/models"
)

func TestRegister_GeneratesUsername(t *testing.T) {
	r, _ := setupServer(t)

	_, body := registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")
	assert.Equal(t, "user1", body["username"])
	assert.NotEmpty(t, body["id"])

	_, body = registerUser(t, r, "+7(900)-000-00-02", "b@x.com", "secret2")
	assert.Equal(t, "user2", body["username"])
}

func TestRegister_DuplicateEmailCreatesNoRow(t *testing.T) {
	r, db := setupServer(t)

	registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")

	rr := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
		"phone":     "+7(900)-000-00-99",
		"firstName": "Other",
		"lastName":  "User",
		"email":     "a@x.com",
		"password":  "secret2",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegister_DuplicatePhoneCreatesNoRow(t *testing.T) {
	r, db := setupServer(t)

	registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")

	rr := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
		"phone":     "+7(900)-000-00-01",
		"firstName": "Other",
		"lastName":  "User",
		"email":     "b@x.com",
		"password":  "secret2",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegister_MissingFields(t *testing.T) {
	r, _ := setupServer(t)

	rr := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_ByEmailAndByPhone(t *testing.T) {
	r, _ := setupServer(t)
	registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")

	for _, login := range []string{"a@x.com", "+7(900)-000-00-01"} {
		rr := doJSON(r, http.MethodPost, "/auth/login", map[string]string{
			"login":    login,
			"password": "secret1",
		}, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.NotNil(t, sessionCookie(rr))

		body := parseBody(t, rr)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "a@x.com", user["email"])
	}
}

func TestLogin_UniformFailureMessage(t *testing.T) {
	r, _ := setupServer(t)
	registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")

	// Unknown identifier and wrong password must be indistinguishable.
	cases := []map[string]string{
		{"login": "nobody@x.com", "password": "secret1"},
		{"login": "a@x.com", "password": "wrong"},
	}
	for _, c := range cases {
		rr := doJSON(r, http.MethodPost, "/auth/login", c, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := parseBody(t, rr)
		assert.Equal(t, "Invalid login or password", body["error"])
	}
}

func TestMe_AnonymousAndAuthenticated(t *testing.T) {
	r, _ := setupServer(t)

	rr := doJSON(r, http.MethodGet, "/auth/me", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := parseBody(t, rr)
	assert.Nil(t, body["user"])

	cookie, _ := registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")
	rr = doJSON(r, http.MethodGet, "/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	body = parseBody(t, rr)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "a@x.com", user["email"])
}

func TestMe_GarbageCookieResolvesToAnonymous(t *testing.T) {
	r, _ := setupServer(t)

	rr := doJSON(r, http.MethodGet, "/auth/me", nil, &http.Cookie{Name: "session_id", Value: "not-a-session"})
	require.Equal(t, http.StatusOK, rr.Code)
	body := parseBody(t, rr)
	assert.Nil(t, body["user"])
}

func TestLogout_DestroysSession(t *testing.T) {
	r, _ := setupServer(t)
	cookie, _ := registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")

	rr := doJSON(r, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	// The old token must be dead server-side, not just cleared client-side.
	rr = doJSON(r, http.MethodGet, "/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	body := parseBody(t, rr)
	assert.Nil(t, body["user"])
}

func TestUpdatePassword(t *testing.T) {
	r, _ := setupServer(t)
	cookie, _ := registerUser(t, r, "+7(900)-000-00-01", "a@x.com", "secret1")

	// Wrong old password
	rr := doJSON(r, http.MethodPost, "/auth/update-password", map[string]string{
		"oldPassword": "wrong",
		"newPassword": "newsecret",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Anonymous caller
	rr = doJSON(r, http.MethodPost, "/auth/update-password", map[string]string{
		"oldPassword": "secret1",
		"newPassword": "newsecret",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Success, then the new password logs in and the old one does not
	rr = doJSON(r, http.MethodPost, "/auth/update-password", map[string]string{
		"oldPassword": "secret1",
		"newPassword": "newsecret",
	}, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(r, http.MethodPost, "/auth/login", map[string]string{"login": "a@x.com", "password": "secret1"}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(r, http.MethodPost, "/auth/login", map[string]string{"login": "a@x.com", "password": "newsecret"}, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
