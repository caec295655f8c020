package sandbox

import (
	"context"
)

// Filesystem 文件系统模块，路径均为沙箱内的绝对路径。
type Filesystem struct {
	sandbox *Sandbox
}

// Read 读取文件内容。路径不存在时返回 *APIError（404）。
func (f *Filesystem) Read(ctx context.Context, path string) ([]byte, error) {
	return f.sandbox.dataAPI.ReadFile(ctx, f.sandbox.sandboxID, path)
}

// ReadText 读取文件内容并按 UTF-8 文本返回。
func (f *Filesystem) ReadText(ctx context.Context, path string) (string, error) {
	data, err := f.Read(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write 写入文件，覆盖已有内容，按需创建父目录。
func (f *Filesystem) Write(ctx context.Context, path string, data []byte) error {
	return f.sandbox.dataAPI.WriteFile(ctx, f.sandbox.sandboxID, path, data)
}

// WriteText 写入文本文件。
func (f *Filesystem) WriteText(ctx context.Context, path string, text string) error {
	return f.Write(ctx, path, []byte(text))
}

// List 列出目录项。空目录返回空切片而非 nil。
func (f *Filesystem) List(ctx context.Context, path string) ([]EntryInfo, error) {
	items, err := f.sandbox.dataAPI.ListFiles(ctx, f.sandbox.sandboxID, path)
	if err != nil {
		return nil, err
	}
	entries := make([]EntryInfo, 0, len(items))
	for _, item := range items {
		entries = append(entries, EntryInfo{
			Name:  item.Name,
			Path:  item.Path,
			IsDir: item.IsDir,
			Size:  item.Size,
		})
	}
	return entries, nil
}

// MakeDir 创建目录，递归创建缺失的父目录。
func (f *Filesystem) MakeDir(ctx context.Context, path string) error {
	return f.sandbox.dataAPI.MakeDir(ctx, f.sandbox.sandboxID, path)
}

// Remove 删除文件或目录（目录递归删除）。
func (f *Filesystem) Remove(ctx context.Context, path string) error {
	return f.sandbox.dataAPI.RemoveFile(ctx, f.sandbox.sandboxID, path)
}

// Exists 判断路径是否存在。任何读取失败（含传输失败）都按
// 不存在处理，只返回布尔值。
func (f *Filesystem) Exists(ctx context.Context, path string) bool {
	_, err := f.sandbox.dataAPI.ReadFile(ctx, f.sandbox.sandboxID, path)
	return err == nil
}
