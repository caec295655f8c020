package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opensandbox/sandbox-go/apis"
)

// PreviewURL 把沙箱内的端口暴露为可从外部访问的地址。
// 预览地址走控制面管理，沙箱终止时由服务端回收。
type PreviewURL struct {
	ID         string
	SandboxID  string
	Hostname   string
	Port       int
	SSLStatus  string
	AuthConfig json.RawMessage
	CreatedAt  time.Time
}

// PreviewOption 配置预览地址的选项。
type PreviewOption func(*previewOpts)

type previewOpts struct {
	domain     string
	authConfig map[string]interface{}
}

// WithPreviewDomain 指定自定义域名，需要在组织上完成验证。
func WithPreviewDomain(domain string) PreviewOption {
	return func(o *previewOpts) { o.domain = domain }
}

// WithPreviewAuth 附加预览地址的访问控制配置。
func WithPreviewAuth(config map[string]interface{}) PreviewOption {
	return func(o *previewOpts) { o.authConfig = config }
}

func previewFromAPI(p *apis.PreviewURL) *PreviewURL {
	return &PreviewURL{
		ID:         p.ID,
		SandboxID:  p.SandboxID,
		Hostname:   p.Hostname,
		Port:       p.Port,
		SSLStatus:  p.SSLStatus,
		AuthConfig: p.AuthConfig,
		CreatedAt:  p.CreatedAt,
	}
}

// CreatePreviewURL 为沙箱内的端口创建预览地址。端口取值 1 到 65535。
// 同端口已有预览地址时返回 409 的 *APIError。
func (s *Sandbox) CreatePreviewURL(ctx context.Context, port int, options ...PreviewOption) (*PreviewURL, error) {
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("sandbox: preview port must be within 1-65535, got %d", port)
	}
	opts := &previewOpts{}
	for _, option := range options {
		option(opts)
	}
	if opts.authConfig == nil {
		opts.authConfig = map[string]interface{}{}
	}

	p, err := s.controlAPI.CreatePreviewURL(ctx, s.sandboxID, apis.CreatePreviewRequest{
		Port:       port,
		Domain:     opts.domain,
		AuthConfig: opts.authConfig,
	})
	if err != nil {
		return nil, err
	}
	return previewFromAPI(p), nil
}

// ListPreviewURLs 列出沙箱的全部预览地址，无预览地址时返回空切片。
func (s *Sandbox) ListPreviewURLs(ctx context.Context) ([]PreviewURL, error) {
	items, err := s.controlAPI.ListPreviewURLs(ctx, s.sandboxID)
	if err != nil {
		return nil, err
	}
	urls := make([]PreviewURL, 0, len(items))
	for i := range items {
		urls = append(urls, *previewFromAPI(&items[i]))
	}
	return urls, nil
}

// DeletePreviewURL 删除指定端口的预览地址。
// 预览地址已不存在时视为成功。
func (s *Sandbox) DeletePreviewURL(ctx context.Context, port int) error {
	err := s.controlAPI.DeletePreviewURL(ctx, s.sandboxID, port)
	if apis.IsNotFound(err) {
		return nil
	}
	return err
}
