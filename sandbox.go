package sandbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/opensandbox/sandbox-go/apis"
)

// Sandbox 沙箱句柄。句柄在构造时一次性计算路由决策：
// 生命周期操作始终走控制面，命令/文件/终端操作在存在数据面直连
// 通道时走数据面，否则回落到控制面。同一句柄可在多个 goroutine
// 间并发使用。
type Sandbox struct {
	sandboxID  string
	templateID string
	client     *Client

	// mu 保护缓存的状态字段。
	mu     sync.Mutex
	status SandboxStatus

	// controlAPI 承载生命周期操作，dataAPI 承载数据操作。
	// 无数据面通道时两者指向同一个客户端。
	controlAPI *apis.Client
	dataAPI    *apis.Client
	// streamBase 是终端 WebSocket 地址的 HTTP 基址。
	streamBase string

	gitDomain string
	orgSlug   string

	// git 凭证注入的幂等控制。
	credsGroup    singleflight.Group
	credsInjected atomic.Bool
	repoMu        sync.Mutex
	repoSlug      string
}

// newSandbox 按创建/连接响应构造句柄并计算路由。
func newSandbox(c *Client, info *apis.Sandbox) *Sandbox {
	s := &Sandbox{
		sandboxID:  info.SandboxID,
		templateID: info.TemplateID,
		client:     c,
		status:     SandboxStatus(info.Status),
		controlAPI: c.api,
		dataAPI:    c.api,
		streamBase: c.endpoint,
	}
	if s.status == "" {
		s.status = StatusRunning
	}

	// connectURL 与 token 成对下发时才启用数据面通道，
	// 数据面地址按原样使用，不做 /api 前缀处理。
	if info.ConnectURL != "" && info.Token != "" {
		connectURL := strings.TrimSuffix(info.ConnectURL, "/")
		s.dataAPI = apis.NewClient(connectURL, apis.BearerToken(info.Token), c.config.HTTPClient)
		s.streamBase = connectURL
	}

	if info.GitURL != "" {
		s.gitDomain = stripScheme(info.GitURL)
	} else {
		s.gitDomain = c.config.GitDomain
	}
	if info.OrgSlug != "" {
		s.orgSlug = info.OrgSlug
	} else {
		s.orgSlug = c.config.Org
	}

	return s
}

// ID 返回沙箱标识。
func (s *Sandbox) ID() string {
	return s.sandboxID
}

// TemplateID 返回创建沙箱所用的模板标识。
func (s *Sandbox) TemplateID() string {
	return s.templateID
}

// Status 返回缓存的沙箱状态。缓存只在 Kill 和 IsRunning 时刷新，
// 需要权威状态请调用 IsRunning。
func (s *Sandbox) Status() SandboxStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Kill 终止沙箱。等待远端确认成功后才把缓存状态置为 stopped。
func (s *Sandbox) Kill(ctx context.Context) error {
	if err := s.controlAPI.DeleteSandbox(ctx, s.sandboxID); err != nil {
		return err
	}
	s.mu.Lock()
	s.status = StatusStopped
	s.mu.Unlock()
	return nil
}

// IsRunning 查询远端状态并刷新缓存。沙箱标识已不存在（已被回收）时
// 返回 (false, nil) 而非报错。
func (s *Sandbox) IsRunning(ctx context.Context) (bool, error) {
	info, err := s.controlAPI.GetSandbox(ctx, s.sandboxID)
	if err != nil {
		if apis.IsNotFound(err) {
			s.mu.Lock()
			s.status = StatusStopped
			s.mu.Unlock()
			return false, nil
		}
		return false, err
	}

	status := SandboxStatus(info.Status)
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	return status == StatusRunning, nil
}

// SetTimeout 重置编排服务的空闲超时倒计时。timeout 不足 1 秒时报错。
func (s *Sandbox) SetTimeout(ctx context.Context, timeout time.Duration) error {
	seconds := int(timeout / time.Second)
	if seconds < 1 {
		return fmt.Errorf("sandbox: timeout must be at least 1s, got %v", timeout)
	}
	return s.controlAPI.UpdateSandboxTimeout(ctx, s.sandboxID, apis.UpdateTimeoutRequest{
		Timeout: seconds,
	})
}

// WaitForReady 轮询等待沙箱进入运行状态。默认每秒轮询一次，
// 截止时间由 ctx 控制。
func (s *Sandbox) WaitForReady(ctx context.Context, options ...PollOption) error {
	cfg := newPollConfig(time.Second, options)
	_, err := pollLoop(ctx, cfg, func(ctx context.Context) (struct{}, bool, error) {
		running, err := s.IsRunning(ctx)
		if err != nil {
			return struct{}{}, false, err
		}
		if !running && s.Status() == StatusStopped {
			return struct{}{}, false, errors.New("sandbox: stopped while waiting for ready")
		}
		return struct{}{}, running, nil
	})
	return err
}

// Commands 返回命令执行模块。
func (s *Sandbox) Commands() *Commands {
	return &Commands{sandbox: s}
}

// Files 返回文件系统模块。
func (s *Sandbox) Files() *Filesystem {
	return &Filesystem{sandbox: s}
}

// Pty 返回交互终端模块。
func (s *Sandbox) Pty() *Pty {
	return &Pty{sandbox: s}
}

// Git 返回版本控制模块。
func (s *Sandbox) Git() *Git {
	return &Git{sandbox: s}
}

// Close 释放句柄持有的空闲连接。只回收本地资源，
// 不影响远端沙箱的生命周期。
func (s *Sandbox) Close() {
	s.client.Close()
}

func stripScheme(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return strings.TrimSuffix(u[i+len("://"):], "/")
	}
	return strings.TrimSuffix(u, "/")
}
