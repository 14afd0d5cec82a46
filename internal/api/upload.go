package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// UploadResult is the normalized upload response. The backend historically
// answered with either {url} or {imageUrl} depending on the endpoint; we
// accept both on the wire and expose only URL.
type UploadResult struct {
	URL string `json:"url"`
}

type uploadWire struct {
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
	LogoURL  string `json:"logoUrl"`
}

func (w uploadWire) normalize() string {
	for _, u := range []string{w.URL, w.ImageURL, w.LogoURL} {
		if strings.TrimSpace(u) != "" {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

// Upload posts file content as multipart form data under the field name
// "file" and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, PathUploads, &buf, mw.FormDataContentType(), &raw); err != nil {
		return nil, err
	}
	var wire uploadWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &ServerError{Op: http.MethodPost, URL: c.baseURL + PathUploads, StatusCode: 200,
			Message: fmt.Sprintf("malformed upload response: %v", err)}
	}
	u := wire.normalize()
	if u == "" {
		return nil, &ServerError{Op: http.MethodPost, URL: c.baseURL + PathUploads, StatusCode: 200,
			Message: "upload response missing url"}
	}
	return &UploadResult{URL: u}, nil
}
