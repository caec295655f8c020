// Package sandbox 提供 OpenSandbox 平台的 Go SDK，用于管理安全隔离的云端沙箱环境。
//
// 沙箱是由远端编排服务按模板创建的短生命周期隔离执行环境，通过 HTTP 与
// WebSocket 访问。SDK 负责会话与连接管理：决定请求走控制面还是数据面直连
// 通道、跨进程重连同一个沙箱，并在同一连接状态之上提供命令执行、文件系统、
// 交互终端和版本控制四类操作。
//
// # 核心概念
//
//   - Sandbox: 沙箱句柄，持有沙箱标识、缓存状态和路由决策
//   - 控制面: 负责沙箱生命周期（创建、查询、终止、超时续期）的端点
//   - 数据面: 创建/连接时可选下发的直连端点 + 沙箱级 token，
//     命令、文件和终端流量优先走此通道，未下发时回落到控制面
//
// # 快速开始
//
// 创建客户端并启动沙箱:
//
//	c, err := sandbox.NewClient(&sandbox.Config{
//	    APIKey: os.Getenv("OPENSANDBOX_API_KEY"),
//	})
//
//	sb, err := c.Create(ctx, sandbox.CreateParams{
//	    TemplateID: "base",
//	    Timeout:    300,
//	})
//
//	defer sb.Kill(ctx)
//
// # 沙箱生命周期
//
//   - [Client.Create] / [Client.CreateAndWait]: 创建沙箱（后者会轮询等待就绪）
//   - [Client.Connect]: 按标识重连已有沙箱，多个客户端实例可同时连接同一沙箱
//   - [Sandbox.Kill]: 终止沙箱（等待远端确认后才更新本地状态）
//   - [Sandbox.IsRunning]: 查询并刷新缓存状态，沙箱已被回收时返回 false 而非报错
//   - [Sandbox.SetTimeout]: 重置编排服务的空闲超时倒计时
//
// # 操作模块
//
// [Sandbox.Commands]、[Sandbox.Files]、[Sandbox.Pty]、[Sandbox.Git] 每次访问
// 返回新的轻量模块实例，始终反映句柄构造时计算的路由决策:
//
//	result, err := sb.Commands().Run(ctx, "echo hello",
//	    sandbox.WithTimeout(10*time.Second),
//	)
//
//	err = sb.Files().Write(ctx, "/tmp/hello.txt", []byte("Hello!"))
//
//	session, err := sb.Pty().Create(ctx, sandbox.PtySize{Cols: 80, Rows: 24},
//	    sandbox.WithOnOutput(func(data []byte) { os.Stdout.Write(data) }),
//	)
//	defer session.Close()
//
//	repo, err := sb.Git().Init(ctx)
//	_, err = sb.Git().Push(ctx, sandbox.WithCommitMessage("initial commit"))
//
// # 错误处理
//
// 本层不做任何自动重试（命令执行默认不可安全重放），错误以可区分的类型上抛:
// *APIError（非 2xx，携带状态码与响应 body）、*ConnectionError（传输层失败）、
// *CommandTimeoutError（客户端等待超时）、ErrSessionNotConnected（终端流未
// 打开或已关闭）。[Filesystem.Exists] 与 [Sandbox.IsRunning] 是两个刻意的
// 例外，按布尔语义降级而非上抛。
package sandbox
