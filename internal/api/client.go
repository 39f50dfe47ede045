// Package api is the typed client of the remote storefront REST API.
package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error is a failed API call. Message is safe to show to the user: it is the
// response body's "message" field or the call's generic fallback.
type Error struct {
	Status  int // 0 when the request never got a response
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		http: &fiber.Client{
			UserAgent:   "mulemobile-storefront",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
}

// File is one upload part.
type File struct {
	Name    string
	Content []byte
}

type call struct {
	method   string
	route    string // metrics label, e.g. "/favorites/:id"
	path     string
	token    string
	body     any
	files    []File
	fallback string
}

func (c *Client) send(cl call) ([]byte, error) {
	url := c.baseURL + cl.path
	var a *fiber.Agent
	switch cl.method {
	case fiber.MethodGet:
		a = c.http.Get(url)
	case fiber.MethodPost:
		a = c.http.Post(url)
	case fiber.MethodPut:
		a = c.http.Put(url)
	case fiber.MethodDelete:
		a = c.http.Delete(url)
	default:
		return nil, fmt.Errorf("api: unsupported method %s", cl.method)
	}
	a.Timeout(c.timeout)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if cl.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+cl.token)
	}
	if cl.body != nil {
		a.JSON(cl.body)
	}
	if len(cl.files) > 0 {
		for _, f := range cl.files {
			a.FileData(&fiber.FormFile{Fieldname: "images", Name: f.Name, Content: f.Content})
		}
		a.MultipartForm(nil)
	}

	start := time.Now()
	code, body, errs := a.Bytes()
	observe(cl.method, cl.route, code, time.Since(start))

	if len(errs) > 0 {
		return nil, &Error{Message: cl.fallback, Err: errors.Join(errs...)}
	}
	if code < 200 || code >= 300 {
		return body, &Error{Status: code, Message: messageOf(body, cl.fallback)}
	}
	return body, nil
}

func messageOf(body []byte, fallback string) string {
	if gjson.ValidBytes(body) {
		if m := gjson.GetBytes(body, "message").String(); m != "" {
			return m
		}
	}
	return fallback
}

// parse validates a JSON body before the normalizers walk it.
func parse(body []byte, fallback string) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &Error{Message: fallback, Err: errors.New("api: malformed JSON response")}
	}
	return gjson.ParseBytes(body), nil
}

func parseArray(body []byte, fallback string) (gjson.Result, error) {
	r, err := parse(body, fallback)
	if err != nil {
		return r, err
	}
	if !r.IsArray() {
		return r, &Error{Message: fallback, Err: errors.New("api: expected a JSON array")}
	}
	return r, nil
}
