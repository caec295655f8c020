package apis

import (
	"context"
	"net/http"
)

// CreateRepository 在 git 服务上创建仓库。POST /repos
// 同名仓库已存在时返回 409 的 *APIError，由调用方决定是否沿用。
func (c *Client) CreateRepository(ctx context.Context, body CreateRepositoryRequest) (*Repository, error) {
	var ret Repository
	if err := c.doJSON(ctx, http.MethodPost, "/repos", nil, body, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}
