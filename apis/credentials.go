package apis

import (
	"net/http"

	"github.com/opensandbox/sandbox-go/internal/clientv2"
)

// Credential 请求凭证，作用于每个请求以及 WebSocket 升级头。
type Credential = clientv2.Credential

// APIKey 控制面静态凭证，以 X-API-Key 请求头携带。
type APIKey string

// Apply 实现 Credential。
func (k APIKey) Apply(header http.Header) {
	if k != "" {
		header.Set("X-API-Key", string(k))
	}
}

// BearerToken 数据面凭证，沙箱级 token，以 Authorization: Bearer 携带。
type BearerToken string

// Apply 实现 Credential。
func (t BearerToken) Apply(header http.Header) {
	if t != "" {
		header.Set("Authorization", "Bearer "+string(t))
	}
}
