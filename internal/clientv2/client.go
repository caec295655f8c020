package clientv2

import (
	"errors"
	"net/http"
	"sort"
)

type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

type Handler func(req *http.Request) (*http.Response, error)

type client struct {
	coreClient   Client
	interceptors []Interceptor
}

var errNoResponse = errors.New("unknown error, no response")

func NewClient(cli Client, interceptors ...Interceptor) Client {
	if cli == nil {
		cli = http.DefaultClient
	}

	var is interceptorList = interceptors
	is = append(is, newDefaultHeaderInterceptor())
	is = append(is, newDebugInterceptor())
	sort.Sort(is)

	// 反转
	for i, j := 0, len(is)-1; i < j; i, j = i+1, j-1 {
		is[i], is[j] = is[j], is[i]
	}

	return &client{
		coreClient:   cli,
		interceptors: is,
	}
}

// Do 经过拦截器链发送请求。非 2xx 响应不在此层判定，
// 由调用方（apis 包）结合响应 body 构造结构化错误。
func (c *client) Do(req *http.Request) (*http.Response, error) {
	handler := func(req *http.Request) (*http.Response, error) {
		return c.coreClient.Do(req)
	}

	for _, interceptor := range c.interceptors {
		h := handler
		i := interceptor
		handler = func(r *http.Request) (*http.Response, error) {
			return i.Intercept(r, h)
		}
	}

	resp, err := handler(req)
	if err != nil {
		return resp, err
	}
	if resp == nil {
		return nil, errNoResponse
	}
	return resp, nil
}

func Do(c Client, options RequestParams) (*http.Response, error) {
	req, err := NewRequest(options)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}
