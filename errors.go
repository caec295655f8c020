package sandbox

import (
	"errors"
	"fmt"
	"time"

	"github.com/opensandbox/sandbox-go/apis"
)

// APIError 服务端返回的非 2xx 响应，携带状态码与原始 body，
// 供调用方决定是否重试。
type APIError = apis.APIError

// ConnectionError 传输层失败（服务不可达、连接中断等）。
type ConnectionError = apis.ConnectionError

// ErrSessionNotConnected 在终端流打开前或关闭后执行流操作时返回。
var ErrSessionNotConnected = errors.New("sandbox: pty session not connected")

// CommandTimeoutError 客户端等待命令结果超时（含宽限时间）。
type CommandTimeoutError struct {
	Command string
	Timeout time.Duration
}

// Error 实现 error 接口。
func (e *CommandTimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %v: %s", e.Timeout, e.Command)
}

// IsNotFound 判断错误是否为"未找到"类型（沙箱标识或路径不存在）。
func IsNotFound(err error) bool {
	return apis.IsNotFound(err)
}
