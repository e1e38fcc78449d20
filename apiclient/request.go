package apiclient

import "net/http"

// Request describes one gateway call. The zero value is an authenticated GET.
type Request struct {
	Method  string
	Body    any               // JSON encoded when non-nil
	Headers map[string]string // override the defaults, including Content-Type
	Public  bool              // skip the bearer token
}

// RequiresAuth reports whether the bearer token should be attached
func (r Request) RequiresAuth() bool {
	return !r.Public
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

func Get() Request {
	return Request{Method: http.MethodGet}
}

func Post(body any) Request {
	return Request{Method: http.MethodPost, Body: body}
}

func Put(body any) Request {
	return Request{Method: http.MethodPut, Body: body}
}

func Patch(body any) Request {
	return Request{Method: http.MethodPatch, Body: body}
}

func Delete() Request {
	return Request{Method: http.MethodDelete}
}

// AsPublic returns a copy of r that does not send the bearer token
func (r Request) AsPublic() Request {
	r.Public = true
	return r
}

// WithHeader returns a copy of r with an extra header
func (r Request) WithHeader(key, value string) Request {
	headers := make(map[string]string, len(r.Headers)+1)
	for k, v := range r.Headers {
		headers[k] = v
	}
	headers[key] = value
	r.Headers = headers
	return r
}
