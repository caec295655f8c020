package clientv2

import (
	"net/http"
)

// Credential 以静态请求头方式携带凭证。
// 控制面使用 X-API-Key，数据面使用 Bearer token，均实现此接口。
// 同一凭证也用于 WebSocket 升级请求头，故作用于 http.Header 而非 *http.Request。
type Credential interface {
	Apply(header http.Header)
}

type authInterceptor struct {
	credential Credential
}

func NewAuthInterceptor(credential Credential) Interceptor {
	return &authInterceptor{
		credential: credential,
	}
}

func (interceptor *authInterceptor) Priority() InterceptorPriority {
	return InterceptorPriorityAuth
}

func (interceptor *authInterceptor) Intercept(req *http.Request, handler Handler) (*http.Response, error) {
	if interceptor == nil || req == nil {
		return handler(req)
	}

	if credential := interceptor.credential; credential != nil {
		credential.Apply(req.Header)
	}

	return handler(req)
}
