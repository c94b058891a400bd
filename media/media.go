// Package media relays uploaded files to the image host and hands the
// hosted URL back to the caller. Payment proofs and admin content
// images both go through here.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Uploader struct {
	uploadURL string
	apiKey    string
	client    *http.Client
}

func New(uploadURL, apiKey string) *Uploader {
	return &Uploader{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload posts the file to the media host as multipart form data and
// returns the public URL the host assigned to it.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copying file into multipart body: %w", err)
	}
	if err := mw.WriteField("fileName", filename); err != nil {
		return "", fmt.Errorf("writing filename field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if u.apiKey != "" {
		req.SetBasicAuth(u.apiKey, "")
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("posting file to media host: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("media host answered %d: %s", resp.StatusCode, b)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding media host response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("media host response carries no url")
	}

	return out.URL, nil
}
