package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/opensandbox/sandbox-go/apis"
)

// Pty 交互终端模块。
type Pty struct {
	sandbox *Sandbox
}

// PtySize 终端尺寸（列数与行数）。
type PtySize struct {
	Cols int
	Rows int
}

// PtyOption 配置终端会话的选项。
type PtyOption func(*ptyOpts)

type ptyOpts struct {
	shell    string
	onOutput func(data []byte)
}

// WithShell 设置终端使用的 shell，默认由服务端决定。
func WithShell(shell string) PtyOption {
	return func(o *ptyOpts) { o.shell = shell }
}

// WithOnOutput 设置输出回调。设置后 SDK 在后台持续读取输出并逐块
// 调用回调，此时 Recv 不可用。
func WithOnOutput(fn func(data []byte)) PtyOption {
	return func(o *ptyOpts) { o.onOutput = fn }
}

var errRecvWithCallback = errors.New("sandbox: pty session uses an output callback, Recv is unavailable")

// Create 创建终端会话：先通过 REST 握手分配会话，再升级到
// WebSocket 双向流。流量走句柄构造时计算的路由。
func (p *Pty) Create(ctx context.Context, size PtySize, options ...PtyOption) (*PtySession, error) {
	opts := &ptyOpts{}
	for _, option := range options {
		option(opts)
	}

	resp, err := p.sandbox.dataAPI.CreatePTY(ctx, p.sandbox.sandboxID, apis.CreatePTYRequest{
		Cols:  size.Cols,
		Rows:  size.Rows,
		Shell: opts.shell,
	})
	if err != nil {
		return nil, err
	}

	wsURL := websocketURL(p.sandbox.streamBase) +
		"/sandboxes/" + p.sandbox.sandboxID + "/pty/" + resp.SessionID
	conn, wsResp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, p.sandbox.dataAPI.UpgradeHeader())
	if err != nil {
		if wsResp != nil && wsResp.Body != nil {
			wsResp.Body.Close()
		}
		return nil, &ConnectionError{URL: wsURL, Err: err}
	}

	session := &PtySession{
		sessionID:  resp.SessionID,
		sandboxID:  p.sandbox.sandboxID,
		conn:       conn,
		onOutput:   opts.onOutput,
		readerDone: make(chan struct{}),
	}
	go session.readPump()
	return session, nil
}

// PtySession 已打开的终端会话。Send/Resize/Close 可并发调用，
// 输出由创建时注册的回调接收，或在未注册回调时通过 Recv 拉取。
type PtySession struct {
	sessionID string
	sandboxID string

	conn     *websocket.Conn
	onOutput func(data []byte)

	writeMu   sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once

	readerDone chan struct{}
	readErr    error

	// recvCh 仅在未注册回调时由 readPump 投递输出块。
	recvCh   chan []byte
	recvOnce sync.Once
}

// SessionID 返回终端会话标识。
func (s *PtySession) SessionID() string {
	return s.sessionID
}

// Send 向终端写入输入字节。会话未连接或已关闭时返回
// ErrSessionNotConnected。
func (s *PtySession) Send(data []byte) error {
	if s.conn == nil || s.closed.Load() {
		return ErrSessionNotConnected
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return &ConnectionError{URL: s.conn.RemoteAddr().String(), Err: err}
	}
	return nil
}

// Recv 拉取下一块终端输出。仅在未注册输出回调时可用，
// 流结束后返回 Err 记录的错误（正常关闭时为 ErrSessionNotConnected）。
func (s *PtySession) Recv(ctx context.Context) ([]byte, error) {
	if s.onOutput != nil {
		return nil, errRecvWithCallback
	}
	if s.conn == nil {
		return nil, ErrSessionNotConnected
	}
	select {
	case data, ok := <-s.recvChannel():
		if !ok {
			if err := s.streamErr(); err != nil {
				return nil, err
			}
			return nil, ErrSessionNotConnected
		}
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resize 调整终端尺寸，以 JSON 控制帧发送。
func (s *PtySession) Resize(size PtySize) error {
	if s.conn == nil || s.closed.Load() {
		return ErrSessionNotConnected
	}
	frame, err := json.Marshal(map[string]interface{}{
		"type": "resize",
		"cols": size.Cols,
		"rows": size.Rows,
	})
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return &ConnectionError{URL: s.conn.RemoteAddr().String(), Err: err}
	}
	return nil
}

// Close 关闭终端会话并等待后台读取退出。重复调用安全，
// 首次之后的调用直接返回 nil。
func (s *PtySession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.conn == nil {
			return
		}
		s.writeMu.Lock()
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		err = s.conn.Close()
		<-s.readerDone
	})
	return err
}

// Err 返回流的终止原因。主动 Close 或服务端正常关闭时为 nil，
// 流意外中断时为底层读取错误。后台读取未退出前返回 nil。
func (s *PtySession) Err() error {
	select {
	case <-s.readerDone:
		return s.streamErr()
	default:
		return nil
	}
}

func (s *PtySession) streamErr() error {
	if s.readErr == nil {
		return nil
	}
	if s.closed.Load() {
		return nil
	}
	if websocket.IsCloseError(s.readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	return s.readErr
}

func (s *PtySession) recvChannel() chan []byte {
	s.recvOnce.Do(func() {
		s.recvCh = make(chan []byte, 16)
	})
	return s.recvCh
}

// readPump 持续读取输出帧，按注册方式投递给回调或 Recv 通道。
// 读取出错时记录原因并退出，由 Err 暴露给调用方。
func (s *PtySession) readPump() {
	defer func() {
		if s.onOutput == nil {
			close(s.recvChannel())
		}
		close(s.readerDone)
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.readErr = err
			return
		}
		if s.onOutput != nil {
			s.onOutput(data)
		} else {
			select {
			case s.recvChannel() <- data:
			default:
				// 慢消费者时丢弃最旧的一块，保持流动
				select {
				case <-s.recvCh:
				default:
				}
				s.recvCh <- data
			}
		}
	}
}
