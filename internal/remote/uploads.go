package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
)

type uploadResponse struct {
	FileName string `json:"fileName"`
}

// UploadFile forwards a blob upload to the remote service and returns the
// stored file name. Uploads have no fallback path.
func (c *Client) UploadFile(ctx context.Context, containerName, fileName string, r io.Reader) (string, error) {
	fields := map[string]string{"containerName": containerName}
	return c.upload(ctx, "/uploads", fields, fileName, r)
}

// UploadToFileShare forwards a file-share upload to the remote service.
func (c *Client) UploadToFileShare(ctx context.Context, shareName, directoryName, fileName string, r io.Reader) (string, error) {
	fields := map[string]string{
		"shareName":     shareName,
		"directoryName": directoryName,
	}
	return c.upload(ctx, "/uploads/fileshare", fields, fileName, r)
}

func (c *Client) upload(ctx context.Context, path string, fields map[string]string, fileName string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &StatusError{Code: resp.StatusCode}
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.FileName, nil
}
