package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mineboard/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestDo_NonOKWithMessageBodyIsServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "discount must be at most 100"})
	}))

	_, err := c.ListAds(context.Background())
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServerError; got %v", err)
	}
	if se.StatusCode != 422 {
		t.Fatalf("status = %d", se.StatusCode)
	}
	// The server message surfaces verbatim.
	if se.Error() != "discount must be at most 100" {
		t.Fatalf("message = %q", se.Error())
	}
}

func TestDo_NonOKWithoutBodyStillErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.ListUsers(context.Background(), UserFilter{})
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServerError; got %v", err)
	}
	if !IsAuthError(err) {
		t.Fatalf("403 should classify as auth error")
	}
}

func TestDo_OKWithErrorShapedBodyIsNotData(t *testing.T) {
	// A "successful" HTTP status with an undecodable body must fail, never
	// silently cache garbage as data.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>gateway error page</html>"))
	}))

	_, err := c.ListAds(context.Background())
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected malformed-body error; got %v", err)
	}
	if !strings.Contains(se.Message, "malformed response") {
		t.Fatalf("message = %q", se.Message)
	}
}

func TestDo_TransportErrorClassified(t *testing.T) {
	c, err := New("http://127.0.0.1:1") // nothing listens here
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.ListAds(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError; got %T %v", err, err)
	}
}

func TestDo_RequestIDAndCookiePersistence(t *testing.T) {
	var gotIDs []string
	var gotCookie string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIDs = append(gotIDs, r.Header.Get("X-Request-Id"))
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s-123", Path: "/"})
		_, _ = w.Write([]byte("[]"))
	}))

	if _, err := c.ListAds(context.Background()); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := c.ListAds(context.Background()); err != nil {
		t.Fatalf("second: %v", err)
	}

	if len(gotIDs) != 2 || gotIDs[0] == "" || gotIDs[0] == gotIDs[1] {
		t.Fatalf("expected distinct request ids; got %v", gotIDs)
	}
	if gotCookie != "s-123" {
		t.Fatalf("session cookie not replayed; got %q", gotCookie)
	}
	if c.LastRequestID() != gotIDs[1] {
		t.Fatalf("LastRequestID mismatch")
	}
}

func TestDo_TimeoutOptionKeepsCookieJar(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s-123", Path: "/"})
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithTimeout(10*time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.ListAds(context.Background()); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := c.ListAds(context.Background()); err != nil {
		t.Fatalf("second: %v", err)
	}
	if gotCookie != "s-123" {
		t.Fatalf("session cookie not replayed; got %q", gotCookie)
	}
}

func TestDo_ReplacementClientInheritsJar(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s-456", Path: "/"})
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.ListAds(context.Background()); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := c.ListAds(context.Background()); err != nil {
		t.Fatalf("second: %v", err)
	}
	if gotCookie != "s-456" {
		t.Fatalf("session cookie not replayed; got %q", gotCookie)
	}
}

func TestUpdateUser_SendsPartialPatch(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(model.User{ID: "u1", Role: model.UserRoleAdmin})
	}))

	role := model.UserRoleAdmin
	u, err := c.UpdateUser(context.Background(), "u1", UserUpdateInput{Role: &role})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if u.Role != model.UserRoleAdmin {
		t.Fatalf("role = %q", u.Role)
	}
	if _, present := body["suspended"]; present {
		t.Fatalf("unset fields must be omitted from the patch: %v", body)
	}
	if body["role"] != "admin" {
		t.Fatalf("body = %v", body)
	}
}

func TestListKYC_StatusFilterInQuery(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("[]"))
	}))

	if _, err := c.ListKYC(context.Background(), model.KYCStatusPending); err != nil {
		t.Fatalf("ListKYC: %v", err)
	}
	if gotQuery != "status=pending" {
		t.Fatalf("query = %q", gotQuery)
	}
}
