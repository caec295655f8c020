package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/opensandbox/sandbox-go/apis"
)

// Template 沙箱模板。
type Template struct {
	TemplateID string
	Name       string
	Tag        string
	BuildID    string
	Status     string
	CreatedAt  time.Time
}

// BuildParams 构建模板的参数。
type BuildParams struct {
	// Name 模板名，必填。
	Name string `validate:"required"`
	// Dockerfile 模板的 Dockerfile 内容，必填。
	Dockerfile string `validate:"required"`
	// Tag 模板标签，可选。
	Tag string
}

func templateFromAPI(t *apis.Template) *Template {
	return &Template{
		TemplateID: t.TemplateID,
		Name:       t.Name,
		Tag:        t.Tag,
		BuildID:    t.BuildID,
		Status:     t.Status,
		CreatedAt:  t.CreatedAt,
	}
}

// ListTemplates 列出当前组织可用的模板。
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	items, err := c.api.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	templates := make([]Template, 0, len(items))
	for i := range items {
		templates = append(templates, *templateFromAPI(&items[i]))
	}
	return templates, nil
}

// GetTemplate 查询模板。
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	t, err := c.api.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return templateFromAPI(t), nil
}

// BuildTemplate 提交模板构建，返回构建中的模板。
func (c *Client) BuildTemplate(ctx context.Context, params BuildParams) (*Template, error) {
	if err := defaultValidator.Validate(params); err != nil {
		return nil, err
	}
	t, err := c.api.BuildTemplate(ctx, apis.BuildTemplateRequest{
		Name:       params.Name,
		Dockerfile: params.Dockerfile,
		Tag:        params.Tag,
	})
	if err != nil {
		return nil, err
	}
	return templateFromAPI(t), nil
}

// DeleteTemplate 删除模板。
func (c *Client) DeleteTemplate(ctx context.Context, templateID string) error {
	return c.api.DeleteTemplate(ctx, templateID)
}

// WaitForBuild 轮询等待模板构建完成。构建失败时报错，
// 默认每 2 秒轮询一次。
func (c *Client) WaitForBuild(ctx context.Context, templateID string, options ...PollOption) (*Template, error) {
	cfg := newPollConfig(2*time.Second, options)
	return pollLoop(ctx, cfg, func(ctx context.Context) (*Template, bool, error) {
		t, err := c.GetTemplate(ctx, templateID)
		if err != nil {
			return nil, false, err
		}
		switch t.Status {
		case "ready":
			return t, true, nil
		case "error", "failed":
			return nil, false, fmt.Errorf("sandbox: template build failed: %s", templateID)
		}
		return t, false, nil
	})
}
