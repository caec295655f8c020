package apis

import (
	"context"
	"net/http"
)

// CreateSandbox 创建沙箱。POST /sandboxes
func (c *Client) CreateSandbox(ctx context.Context, body CreateSandboxRequest) (*Sandbox, error) {
	var ret Sandbox
	if err := c.doJSON(ctx, http.MethodPost, "/sandboxes", nil, body, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// ListSandboxes 列出沙箱。GET /sandboxes
func (c *Client) ListSandboxes(ctx context.Context) ([]Sandbox, error) {
	var ret []Sandbox
	if err := c.doJSON(ctx, http.MethodGet, "/sandboxes", nil, nil, &ret); err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []Sandbox{}
	}
	return ret, nil
}

// GetSandbox 查询沙箱。GET /sandboxes/{id}
func (c *Client) GetSandbox(ctx context.Context, sandboxID string) (*Sandbox, error) {
	var ret Sandbox
	if err := c.doJSON(ctx, http.MethodGet, "/sandboxes/"+sandboxID, nil, nil, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// DeleteSandbox 终止沙箱。DELETE /sandboxes/{id}
func (c *Client) DeleteSandbox(ctx context.Context, sandboxID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/sandboxes/"+sandboxID, nil, nil, nil)
}

// UpdateSandboxTimeout 重置沙箱的空闲超时倒计时。POST /sandboxes/{id}/timeout
func (c *Client) UpdateSandboxTimeout(ctx context.Context, sandboxID string, body UpdateTimeoutRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/sandboxes/"+sandboxID+"/timeout", nil, body, nil)
}

// RunCommand 在沙箱内执行命令并等待完成。POST /sandboxes/{id}/commands
func (c *Client) RunCommand(ctx context.Context, sandboxID string, body RunCommandRequest) (*RunCommandResponse, error) {
	var ret RunCommandResponse
	if err := c.doJSON(ctx, http.MethodPost, "/sandboxes/"+sandboxID+"/commands", nil, body, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}
