package apis

import (
	"context"
	"net/http"
)

// CreatePTY 创建 PTY 会话（REST 握手，后续由调用方升级到 WebSocket 流）。
// POST /sandboxes/{id}/pty
func (c *Client) CreatePTY(ctx context.Context, sandboxID string, body CreatePTYRequest) (*CreatePTYResponse, error) {
	var ret CreatePTYResponse
	if err := c.doJSON(ctx, http.MethodPost, "/sandboxes/"+sandboxID+"/pty", nil, body, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}
