package apis

import (
	"context"
	"io"
	"net/http"

	"github.com/opensandbox/sandbox-go/internal/clientv2"
)

// ReadFile 读取文件内容。GET /sandboxes/{id}/files?path=
func (c *Client) ReadFile(ctx context.Context, sandboxID, path string) ([]byte, error) {
	resp, err := c.do(clientv2.RequestParams{
		Context: ctx,
		Method:  http.MethodGet,
		URL:     c.endpoint + "/sandboxes/" + sandboxID + "/files",
		Query:   pathQuery(path),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// WriteFile 写入文件，整体替换原内容。PUT /sandboxes/{id}/files?path=
// 请求体为原始文件内容。
func (c *Client) WriteFile(ctx context.Context, sandboxID, path string, content []byte) error {
	resp, err := c.do(clientv2.RequestParams{
		Context: ctx,
		Method:  http.MethodPut,
		URL:     c.endpoint + "/sandboxes/" + sandboxID + "/files",
		Query:   pathQuery(path),
		GetBody: clientv2.GetRawRequestBody(content, "application/octet-stream"),
	})
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// RemoveFile 删除文件或目录（目录为递归删除）。DELETE /sandboxes/{id}/files?path=
func (c *Client) RemoveFile(ctx context.Context, sandboxID, path string) error {
	return c.doJSON(ctx, http.MethodDelete, "/sandboxes/"+sandboxID+"/files", pathQuery(path), nil, nil)
}

// ListFiles 列出目录内容。GET /sandboxes/{id}/files/list?path=
// 服务端对空目录可能返回 null，统一归一为空切片。
func (c *Client) ListFiles(ctx context.Context, sandboxID, path string) ([]FileEntry, error) {
	var ret []FileEntry
	if err := c.doJSON(ctx, http.MethodGet, "/sandboxes/"+sandboxID+"/files/list", pathQuery(path), nil, &ret); err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []FileEntry{}
	}
	return ret, nil
}

// MakeDir 递归创建目录。POST /sandboxes/{id}/files/mkdir?path=
func (c *Client) MakeDir(ctx context.Context, sandboxID, path string) error {
	return c.doJSON(ctx, http.MethodPost, "/sandboxes/"+sandboxID+"/files/mkdir", pathQuery(path), nil, nil)
}
