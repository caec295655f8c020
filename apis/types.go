package apis

import (
	"encoding/json"
	"time"
)

// Sandbox 创建/查询沙箱的响应体。
type Sandbox struct {
	SandboxID  string            `json:"sandboxID"`
	TemplateID string            `json:"templateID,omitempty"`
	Status     string            `json:"status"`
	StartedAt  time.Time         `json:"startedAt,omitempty"`
	EndAt      time.Time         `json:"endAt,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`

	// ConnectURL 与 Token 成对出现时表示存在数据面直连通道。
	ConnectURL string `json:"connectURL,omitempty"`
	Token      string `json:"token,omitempty"`

	// GitURL 与 OrgSlug 供 git 模块构造远端地址。
	GitURL  string `json:"gitURL,omitempty"`
	OrgSlug string `json:"orgSlug,omitempty"`
}

// CreateSandboxRequest 创建沙箱的请求体。
type CreateSandboxRequest struct {
	TemplateID string            `json:"templateID"`
	Timeout    int               `json:"timeout,omitempty"`
	Envs       map[string]string `json:"envs,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// UpdateTimeoutRequest 更新沙箱超时时间的请求体。
type UpdateTimeoutRequest struct {
	Timeout int `json:"timeout"`
}

// RunCommandRequest 执行命令的请求体。
type RunCommandRequest struct {
	Cmd     string            `json:"cmd"`
	Timeout int               `json:"timeout,omitempty"`
	Envs    map[string]string `json:"envs,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
}

// RunCommandResponse 命令执行完成后的响应体。
type RunCommandResponse struct {
	ExitCode int    `json:"exitCode"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// FileEntry 目录项。
type FileEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
	Size  int64  `json:"size,omitempty"`
}

// CreatePTYRequest 创建 PTY 会话的请求体。
type CreatePTYRequest struct {
	Cols  int    `json:"cols,omitempty"`
	Rows  int    `json:"rows,omitempty"`
	Shell string `json:"shell,omitempty"`
}

// CreatePTYResponse 创建 PTY 会话的响应体。
type CreatePTYResponse struct {
	SessionID string `json:"sessionID"`
	SandboxID string `json:"sandboxID,omitempty"`
}

// CreateRepositoryRequest 创建代码仓库的请求体。
type CreateRepositoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Repository 代码仓库的响应体。
type Repository struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
	CloneURL      string `json:"cloneUrl,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// CreatePreviewRequest 创建预览地址的请求体。authConfig 始终携带，
// 无配置时为空对象。
type CreatePreviewRequest struct {
	Port       int                    `json:"port"`
	Domain     string                 `json:"domain,omitempty"`
	AuthConfig map[string]interface{} `json:"authConfig"`
}

// PreviewURL 暴露沙箱端口的预览地址。
type PreviewURL struct {
	ID         string          `json:"id"`
	SandboxID  string          `json:"sandboxId"`
	Hostname   string          `json:"hostname"`
	Port       int             `json:"port"`
	SSLStatus  string          `json:"sslStatus,omitempty"`
	AuthConfig json.RawMessage `json:"authConfig,omitempty"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
}

// Template 模板的响应体。
type Template struct {
	TemplateID string    `json:"templateID"`
	Name       string    `json:"name"`
	Tag        string    `json:"tag,omitempty"`
	BuildID    string    `json:"buildID,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// BuildTemplateRequest 构建模板的请求体。
type BuildTemplateRequest struct {
	Name       string `json:"name"`
	Dockerfile string `json:"dockerfile"`
	Tag        string `json:"tag,omitempty"`
}
