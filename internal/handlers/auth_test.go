package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSignupLoginLogout(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"owner@safawala.in","password":"supersecret","name":"Owner"}`))
	w := httptest.NewRecorder()
	h.signup(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201 got %d: %s", w.Code, w.Body.String())
	}
	if cookies := w.Result().Cookies(); len(cookies) == 0 {
		t.Fatal("signup did not set a session cookie")
	}

	// Duplicate email
	req = httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"owner@safawala.in","password":"supersecret"}`))
	w = httptest.NewRecorder()
	h.signup(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409 got %d", w.Code)
	}

	// Short password
	req = httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"x@y.z","password":"short"}`))
	w = httptest.NewRecorder()
	h.signup(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short password: expected 400 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"owner@safawala.in","password":"supersecret"}`))
	w = httptest.NewRecorder()
	h.login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"owner@safawala.in","password":"wrong"}`))
	w = httptest.NewRecorder()
	h.login(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	w = httptest.NewRecorder()
	h.logout(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200 got %d", w.Code)
	}
}
