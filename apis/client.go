// Package apis 是控制面/数据面 REST API 的类型化客户端。
// 每个端点对应一个显式的请求/响应 schema，解码失败会直接报错，
// 不做动态字段探测。
package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/opensandbox/sandbox-go/internal/clientv2"
)

// Client 绑定一个基础地址和一份凭证的类型化 API 客户端。
// 控制面和数据面各持有一个实例，除凭证与地址外行为一致。
type Client struct {
	endpoint   string
	credential Credential
	client     clientv2.Client
}

// NewClient 创建 API 客户端。endpoint 不含结尾斜杠。
func NewClient(endpoint string, credential Credential, httpClient *http.Client) *Client {
	var core clientv2.Client
	if httpClient != nil {
		core = httpClient
	}
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		credential: credential,
		client:     clientv2.NewClient(core, clientv2.NewAuthInterceptor(credential)),
	}
}

// Endpoint 返回客户端绑定的基础地址。
func (c *Client) Endpoint() string {
	return c.endpoint
}

// UpgradeHeader 返回携带凭证的请求头，用于 WebSocket 升级。
func (c *Client) UpgradeHeader() http.Header {
	h := http.Header{}
	if c.credential != nil {
		c.credential.Apply(h)
	}
	return h
}

// do 发送请求并返回响应。传输层失败返回 *ConnectionError，
// 非 2xx 返回携带响应 body 的 *APIError。
func (c *Client) do(params clientv2.RequestParams) (*http.Response, error) {
	resp, err := clientv2.Do(c.client, params)
	if err != nil {
		return nil, &ConnectionError{URL: params.URL, Err: err}
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, NewAPIError(resp.StatusCode, body)
	}
	return resp, nil
}

// doJSON 发送请求并将 JSON 响应解码到 ret。ret 为 nil 时丢弃响应体。
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body interface{}, ret interface{}) error {
	params := clientv2.RequestParams{
		Context: ctx,
		Method:  method,
		URL:     c.endpoint + path,
		Query:   query,
	}
	if body != nil {
		getBody, err := clientv2.GetJSONRequestBody(body)
		if err != nil {
			return err
		}
		params.GetBody = getBody
	}

	resp, err := c.do(params)
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if ret == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(ret); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func pathQuery(path string) url.Values {
	q := url.Values{}
	q.Set("path", path)
	return q
}
