package sandbox

import "time"

// SandboxStatus 沙箱状态。
type SandboxStatus string

const (
	// StatusRunning 沙箱正在运行，可以执行操作。
	StatusRunning SandboxStatus = "running"
	// StatusStopped 沙箱已停止或已被回收。
	StatusStopped SandboxStatus = "stopped"
)

// CreateParams 创建沙箱的参数。
type CreateParams struct {
	// TemplateID 沙箱模板标识，必填。
	TemplateID string `validate:"required"`
	// Timeout 空闲超时时间（秒），到期后沙箱被编排服务回收。
	// 零值按 300 秒处理。
	Timeout int `validate:"omitempty,gte=1"`
	// Envs 注入沙箱的环境变量。
	Envs map[string]string
	// Metadata 附加在沙箱上的元数据键值对。
	Metadata map[string]string
}

// CommandResult 命令执行结果。
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// EntryInfo 文件系统目录项。
type EntryInfo struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// RepoInfo 沙箱关联的代码仓库信息。
type RepoInfo struct {
	ID            string
	Name          string
	Slug          string
	Description   string
	DefaultBranch string
	CloneURL      string
	CreatedAt     string
}

// SandboxInfo 沙箱的远端快照信息。
type SandboxInfo struct {
	SandboxID  string
	TemplateID string
	Status     SandboxStatus
	StartedAt  time.Time
	EndAt      time.Time
	Metadata   map[string]string
}
