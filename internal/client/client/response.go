package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
)

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	body       []byte
}

func newResponse(status int, header http.Header, body []byte) *Response {
	return &Response{StatusCode: status, Header: header, body: body}
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the media type without parameters.
func (r *Response) ContentType() string {
	ct := r.Header.Get(common.ContentTypeHeaderName)
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

func (r *Response) IsJSON() bool {
	ct := r.ContentType()
	return ct == common.ContentTypeJSON || (len(ct) > 5 && ct[len(ct)-5:] == "+json")
}

func (r *Response) Raw() []byte {
	return r.body
}

func (r *Response) Text() string {
	return string(r.body)
}

func (r *Response) empty() bool {
	return len(bytes.TrimSpace(r.body)) == 0
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r.empty() {
		return nil
	}
	if !r.IsJSON() {
		return fmt.Errorf("%w: content type %q is not JSON", ErrUnexpectedResponse, r.ContentType())
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// Value returns the body as a generic JSON value, or as text when the server
// did not send JSON. An empty JSON body yields an empty object.
func (r *Response) Value() (any, error) {
	if !r.IsJSON() {
		return r.Text(), nil
	}
	if r.empty() {
		return map[string]any{}, nil
	}
	var v any
	if err := json.Unmarshal(r.body, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return v, nil
}

// payload is Value without the error: unparsable JSON degrades to text.
func (r *Response) payload() any {
	v, err := r.Value()
	if err != nil {
		return r.Text()
	}
	return v
}
