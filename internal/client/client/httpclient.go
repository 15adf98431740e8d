package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dkrasnovs/filestash/internal/client/models"
)

// HTTPClient talks to the filestash REST API. After a successful Register or
// Login it keeps the bearer token and attaches it to subsequent requests.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewFilestashClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClient) IsAuthenticated() bool {
	return c.token != ""
}

func (c *HTTPClient) Logout() {
	c.token = ""
}

// apiError mirrors the server's error envelope.
type apiError struct {
	Error string `json:"error"`
}

// statusErr maps an unexpected HTTP status to a client error, preferring the
// message from the response body when one is present.
func statusErr(resp *http.Response) error {
	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		sentinel = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var ae apiError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&ae); err == nil && ae.Error != "" {
		return fmt.Errorf("%w: %s", sentinel, ae.Error)
	}
	return sentinel
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *HTTPClient) authenticate(ctx context.Context, path, username string, password []byte) error {
	body, err := json.Marshal(credentialsRequest{Username: username, Password: string(password)})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusErr(resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return err
	}
	if tr.Token == "" {
		return fmt.Errorf("server returned no token")
	}
	c.token = tr.Token
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	return c.authenticate(ctx, "/auth/register", username, password)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) error {
	return c.authenticate(ctx, "/auth/login", username, password)
}

func (c *HTTPClient) Upload(ctx context.Context, fileName string, contentType string, r io.Reader) (*models.FileInfo, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreatePart(map[string][]string{
			"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName)},
			"Content-Type":        {contentType},
		})
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/files/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp)
	}

	var info models.FileInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) List(ctx context.Context) ([]*models.FileInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp)
	}

	var list []*models.FileInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) Download(ctx context.Context, id string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/files/"+id+"/download", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusErr(resp)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/files/"+id, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusErr(resp)
	}
	return nil
}
