package clientv2

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

const (
	RequestMethodGet    = http.MethodGet
	RequestMethodPut    = http.MethodPut
	RequestMethodPost   = http.MethodPost
	RequestMethodDelete = http.MethodDelete
)

const contentTypeJSON = "application/json"

type GetRequestBody func(options *RequestParams) (io.ReadCloser, error)

func GetJSONRequestBody(object interface{}) (GetRequestBody, error) {
	reqBody, err := json.Marshal(object)
	if err != nil {
		return nil, err
	}
	return func(o *RequestParams) (io.ReadCloser, error) {
		o.Header.Set("Content-Type", contentTypeJSON)
		return io.NopCloser(bytes.NewReader(reqBody)), nil
	}, nil
}

func GetRawRequestBody(data []byte, contentType string) GetRequestBody {
	return func(o *RequestParams) (io.ReadCloser, error) {
		if contentType != "" {
			o.Header.Set("Content-Type", contentType)
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

type RequestParams struct {
	Context context.Context
	Method  string
	URL     string
	Query   url.Values
	Header  http.Header
	GetBody GetRequestBody
}

func (o *RequestParams) init() {
	if o.Context == nil {
		o.Context = context.Background()
	}

	if len(o.Method) == 0 {
		o.Method = RequestMethodGet
	}

	if o.Header == nil {
		o.Header = http.Header{}
	}

	if o.GetBody == nil {
		o.GetBody = func(options *RequestParams) (io.ReadCloser, error) {
			return nil, nil
		}
	}
}

func NewRequest(options RequestParams) (req *http.Request, err error) {
	options.init()

	requestURL := options.URL
	if len(options.Query) > 0 {
		requestURL += "?" + options.Query.Encode()
	}

	body, err := options.GetBody(&options)
	if err != nil {
		return nil, err
	}
	req, err = http.NewRequestWithContext(options.Context, options.Method, requestURL, body)
	if err != nil {
		return
	}
	req.Header = options.Header
	if body != nil && body != http.NoBody {
		req.GetBody = func() (io.ReadCloser, error) {
			return options.GetBody(&options)
		}
	}
	return
}
