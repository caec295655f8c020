package sandbox

import (
	"context"
	"errors"
	"time"

	"github.com/opensandbox/sandbox-go/apis"
)

// DefaultCommandTimeout 命令的默认服务端超时时间。
const DefaultCommandTimeout = 60 * time.Second

// commandGraceMargin 客户端在服务端超时之上额外等待的宽限时间，
// 避免两端同时到期时丢失服务端的明确结果。
var commandGraceMargin = 5 * time.Second

// Commands 命令执行模块。零长结构体式的轻量句柄，每次从
// [Sandbox.Commands] 获取。
type Commands struct {
	sandbox *Sandbox
}

// CommandOption 配置单次命令执行的选项。
type CommandOption func(*commandOpts)

type commandOpts struct {
	timeout time.Duration
	envs    map[string]string
	cwd     string
}

// WithTimeout 设置命令的服务端超时时间，默认 60 秒。
func WithTimeout(d time.Duration) CommandOption {
	return func(o *commandOpts) { o.timeout = d }
}

// WithEnvs 设置命令的环境变量。
func WithEnvs(envs map[string]string) CommandOption {
	return func(o *commandOpts) { o.envs = envs }
}

// WithCwd 设置命令的工作目录。
func WithCwd(cwd string) CommandOption {
	return func(o *commandOpts) { o.cwd = cwd }
}

// Run 在沙箱内以 shell 执行命令并等待完成，返回退出码和两路输出。
// 命令以非零退出码结束不算错误，调用方检查 ExitCode。
// 服务端超时写入请求体，客户端在其上加 5 秒宽限时间后放弃等待，
// 此时返回 *CommandTimeoutError。本层不做重试，命令执行默认不可
// 安全重放。
func (c *Commands) Run(ctx context.Context, cmd string, options ...CommandOption) (*CommandResult, error) {
	opts := &commandOpts{timeout: DefaultCommandTimeout}
	for _, option := range options {
		option(opts)
	}

	runCtx, cancel := context.WithTimeout(ctx, opts.timeout+commandGraceMargin)
	defer cancel()

	resp, err := c.sandbox.dataAPI.RunCommand(runCtx, c.sandbox.sandboxID, apis.RunCommandRequest{
		Cmd:     cmd,
		Timeout: int(opts.timeout / time.Second),
		Envs:    opts.envs,
		Cwd:     opts.cwd,
	})
	if err != nil {
		// 宽限期到期且调用方的 ctx 未取消时归类为命令超时
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &CommandTimeoutError{Command: cmd, Timeout: opts.timeout}
		}
		var connErr *ConnectionError
		if errors.As(err, &connErr) && errors.Is(connErr.Err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &CommandTimeoutError{Command: cmd, Timeout: opts.timeout}
		}
		return nil, err
	}

	return &CommandResult{
		ExitCode: resp.ExitCode,
		Stdout:   resp.Stdout,
		Stderr:   resp.Stderr,
	}, nil
}
