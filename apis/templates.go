package apis

import (
	"context"
	"net/http"
)

// ListTemplates 列出模板。GET /templates
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var ret []Template
	if err := c.doJSON(ctx, http.MethodGet, "/templates", nil, nil, &ret); err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []Template{}
	}
	return ret, nil
}

// GetTemplate 查询模板。GET /templates/{id}
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	var ret Template
	if err := c.doJSON(ctx, http.MethodGet, "/templates/"+templateID, nil, nil, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// BuildTemplate 提交模板构建。POST /templates
func (c *Client) BuildTemplate(ctx context.Context, body BuildTemplateRequest) (*Template, error) {
	var ret Template
	if err := c.doJSON(ctx, http.MethodPost, "/templates", nil, body, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// DeleteTemplate 删除模板。DELETE /templates/{id}
func (c *Client) DeleteTemplate(ctx context.Context, templateID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/templates/"+templateID, nil, nil, nil)
}
