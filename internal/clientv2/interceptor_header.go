package clientv2

import (
	"net/http"
)

const defaultUserAgent = "opensandbox-go/" + Version

// Version SDK 版本号。
const Version = "0.1.0"

type defaultHeaderInterceptor struct {
}

func newDefaultHeaderInterceptor() Interceptor {
	return &defaultHeaderInterceptor{}
}

func (interceptor *defaultHeaderInterceptor) Priority() InterceptorPriority {
	return InterceptorPrioritySetHeader
}

func (interceptor *defaultHeaderInterceptor) Intercept(req *http.Request, handler Handler) (*http.Response, error) {
	if req != nil {
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", defaultUserAgent)
		}
	}
	return handler(req)
}
