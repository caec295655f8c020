package sandbox

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/opensandbox/sandbox-go/apis"
	"github.com/opensandbox/sandbox-go/internal/configfile"
	"github.com/opensandbox/sandbox-go/internal/env"
)

// DefaultEndpoint 默认的控制面地址。
const DefaultEndpoint = "https://app.opensandbox.dev"

// Config 客户端配置。零值字段按环境变量、配置文件、内置默认值的
// 顺序填充。
type Config struct {
	// APIKey 平台 API Key，控制面请求以 X-API-Key 头携带。
	APIKey string
	// Endpoint 控制面地址。SDK 会自动追加 /api 前缀，
	// 除非地址已以 /api 结尾。
	Endpoint string
	// GitDomain git 服务域名，作为沙箱未下发 gitURL 时的回落值。
	GitDomain string
	// Org 组织 slug，作为沙箱未下发 orgSlug 时的回落值。
	Org string
	// HTTPClient 自定义 HTTP 客户端，为 nil 时使用 http.DefaultClient。
	HTTPClient *http.Client
}

// Client 平台客户端，负责创建和重连沙箱。
type Client struct {
	config Config

	// endpoint 是规范化后、未追加 /api 前缀的地址，
	// 用于推导 WebSocket 流地址。
	endpoint string
	api      *apis.Client
}

// NewClient 创建平台客户端。config 为 nil 时等价于空配置。
func NewClient(config *Config) (*Client, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}

	if cfg.APIKey == "" {
		cfg.APIKey = env.APIKeyFromEnvironment()
	}
	if cfg.APIKey == "" {
		if key, err := configfile.APIKeyFromConfigFile(); err != nil {
			return nil, err
		} else {
			cfg.APIKey = key
		}
	}
	if cfg.APIKey == "" {
		return nil, errors.New("sandbox: api key is required")
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = env.EndpointFromEnvironment()
	}
	if cfg.Endpoint == "" {
		if endpoint, err := configfile.EndpointFromConfigFile(); err != nil {
			return nil, err
		} else {
			cfg.Endpoint = endpoint
		}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	if cfg.GitDomain == "" {
		cfg.GitDomain = env.GitDomainFromEnvironment()
	}
	if cfg.GitDomain == "" {
		if domain, err := configfile.GitDomainFromConfigFile(); err != nil {
			return nil, err
		} else {
			cfg.GitDomain = domain
		}
	}

	if cfg.Org == "" {
		cfg.Org = env.OrgFromEnvironment()
	}
	if cfg.Org == "" {
		if org, err := configfile.OrgFromConfigFile(); err != nil {
			return nil, err
		} else {
			cfg.Org = org
		}
	}

	endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	apiBase := endpoint
	if !strings.HasSuffix(apiBase, "/api") {
		apiBase += "/api"
	}

	return &Client{
		config:   cfg,
		endpoint: endpoint,
		api:      apis.NewClient(apiBase, apis.APIKey(cfg.APIKey), cfg.HTTPClient),
	}, nil
}

// Endpoint 返回规范化后的控制面地址（不含 /api 前缀）。
func (c *Client) Endpoint() string {
	return c.endpoint
}

// API 返回底层控制面 API 客户端，供需要直接访问端点的调用方使用。
func (c *Client) API() *apis.Client {
	return c.api
}

// Create 创建沙箱并返回句柄。Timeout 零值按 300 秒处理。
func (c *Client) Create(ctx context.Context, params CreateParams) (*Sandbox, error) {
	if err := defaultValidator.Validate(params); err != nil {
		return nil, err
	}
	if params.Timeout <= 0 {
		params.Timeout = 300
	}

	info, err := c.api.CreateSandbox(ctx, apis.CreateSandboxRequest{
		TemplateID: params.TemplateID,
		Timeout:    params.Timeout,
		Envs:       params.Envs,
		Metadata:   params.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return newSandbox(c, info), nil
}

// CreateAndWait 创建沙箱并轮询等待其进入运行状态。
func (c *Client) CreateAndWait(ctx context.Context, params CreateParams, options ...PollOption) (*Sandbox, error) {
	sb, err := c.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := sb.WaitForReady(ctx, options...); err != nil {
		return nil, err
	}
	return sb, nil
}

// Connect 按标识重连已有沙箱。沙箱不存在时返回 *APIError（404）。
// 多个客户端实例可同时连接同一沙箱。
func (c *Client) Connect(ctx context.Context, sandboxID string) (*Sandbox, error) {
	info, err := c.api.GetSandbox(ctx, sandboxID)
	if err != nil {
		return nil, err
	}
	return newSandbox(c, info), nil
}

// List 列出当前组织下的沙箱快照。
func (c *Client) List(ctx context.Context) ([]SandboxInfo, error) {
	items, err := c.api.ListSandboxes(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]SandboxInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, SandboxInfo{
			SandboxID:  item.SandboxID,
			TemplateID: item.TemplateID,
			Status:     SandboxStatus(item.Status),
			StartedAt:  item.StartedAt,
			EndAt:      item.EndAt,
			Metadata:   item.Metadata,
		})
	}
	return infos, nil
}

// Close 关闭客户端持有的空闲连接。
func (c *Client) Close() {
	if c.config.HTTPClient != nil {
		c.config.HTTPClient.CloseIdleConnections()
	} else {
		http.DefaultClient.CloseIdleConnections()
	}
}

// websocketURL 将 HTTP 地址改写为 WebSocket 地址。
func websocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
