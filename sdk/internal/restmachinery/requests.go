package restmachinery

import "net/http"

// OutboundRequest models of an outbound API request.
type OutboundRequest struct {
	// Method specifies the HTTP method.
	Method string
	// Path specifies the path of the API endpoint, relative to the API
	// server's address, with no leading slash.
	Path string
	// QueryParams optionally specifies any URL query parameters.
	QueryParams map[string]string
	// Headers optionally specifies any HTTP headers.
	Headers map[string]string
	// Cookies optionally specifies cookies to send with the request. The
	// backend API authenticates requests with an opaque session cookie rather
	// than an Authorization header.
	Cookies []*http.Cookie
	// ReqBodyObj optionally specifies an object that can be marshaled to
	// create the body of the HTTP request.
	ReqBodyObj interface{}
	// SuccessCode specifies the HTTP status code that indicates a successful
	// exchange. A zero value is interpreted as 200.
	SuccessCode int
	// RespObj optionally specifies an object into which the payload of the
	// HTTP response body can be unmarshaled. Enveloped responses are unwrapped
	// before unmarshaling.
	RespObj interface{}
}
