package apis

import (
	"context"
	"net/http"
	"strconv"
)

// CreatePreviewURL 为沙箱端口创建预览地址。POST /sandboxes/{id}/preview
func (c *Client) CreatePreviewURL(ctx context.Context, sandboxID string, body CreatePreviewRequest) (*PreviewURL, error) {
	var ret PreviewURL
	if err := c.doJSON(ctx, http.MethodPost, "/sandboxes/"+sandboxID+"/preview", nil, body, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// ListPreviewURLs 列出沙箱的预览地址。GET /sandboxes/{id}/preview
func (c *Client) ListPreviewURLs(ctx context.Context, sandboxID string) ([]PreviewURL, error) {
	var ret []PreviewURL
	if err := c.doJSON(ctx, http.MethodGet, "/sandboxes/"+sandboxID+"/preview", nil, nil, &ret); err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []PreviewURL{}
	}
	return ret, nil
}

// DeletePreviewURL 删除指定端口的预览地址。DELETE /sandboxes/{id}/preview/{port}
func (c *Client) DeletePreviewURL(ctx context.Context, sandboxID string, port int) error {
	return c.doJSON(ctx, http.MethodDelete, "/sandboxes/"+sandboxID+"/preview/"+strconv.Itoa(port), nil, nil, nil)
}
