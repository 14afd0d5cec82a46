package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload_MultipartFieldAndNormalizedURL(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"url", `{"url":"https://cdn.example/a.png"}`},
		{"imageUrl", `{"imageUrl":"https://cdn.example/a.png"}`},
		{"logoUrl", `{"logoUrl":"https://cdn.example/a.png"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Errorf("parse multipart: %v", err)
				}
				f, hdr, err := r.FormFile("file")
				if err != nil {
					t.Errorf("field \"file\" missing: %v", err)
					w.WriteHeader(400)
					return
				}
				defer f.Close()
				if hdr.Filename != "logo.png" {
					t.Errorf("filename = %q", hdr.Filename)
				}
				b, _ := io.ReadAll(f)
				if string(b) != "png-bytes" {
					t.Errorf("content = %q", b)
				}
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, err := New(srv.URL)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			res, err := c.Upload(context.Background(), "/tmp/assets/logo.png", strings.NewReader("png-bytes"))
			if err != nil {
				t.Fatalf("Upload: %v", err)
			}
			if res.URL != "https://cdn.example/a.png" {
				t.Fatalf("url = %q", res.URL)
			}
		})
	}
}

func TestUpload_MissingURLIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Upload(context.Background(), "a.png", strings.NewReader("x"))
	var se *ServerError
	if !errors.As(err, &se) || !strings.Contains(se.Message, "missing url") {
		t.Fatalf("expected missing-url error; got %v", err)
	}
}

func TestUpload_ServerErrorPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "file exceeds 5MB"})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Upload(context.Background(), "big.png", strings.NewReader("x"))
	var se *ServerError
	if !errors.As(err, &se) || se.Error() != "file exceeds 5MB" {
		t.Fatalf("got %v", err)
	}
}
