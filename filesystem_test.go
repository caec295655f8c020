package sandbox

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
)

// fakeFiles 以内存 map 模拟文件端点。
type fakeFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: map[string][]byte{}}
}

func (f *fakeFiles) handle(t *testing.T, w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read upload body: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		f.files[path] = data
	case http.MethodGet:
		data, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":"not_found","message":"no such file"}`))
			return
		}
		w.Write(data)
	case http.MethodDelete:
		delete(f.files, path)
	default:
		t.Errorf("unexpected method %s", r.Method)
	}
}

func TestFilesWriteReadRoundTrip(t *testing.T) {
	files := newFakeFiles()
	sb := connectTestSandbox(t, func(w http.ResponseWriter, r *http.Request) {
		files.handle(t, w, r)
	})

	content := []byte("hello\x00world")
	if err := sb.Files().Write(context.Background(), "/tmp/a.bin", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := sb.Files().Read(context.Background(), "/tmp/a.bin")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Read = %q, want %q", got, content)
	}

	// 覆盖写入整体替换原内容，不得残留旧字节
	if err := sb.Files().WriteText(context.Background(), "/tmp/a.bin", "hi"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	text, err := sb.Files().ReadText(context.Background(), "/tmp/a.bin")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "hi" {
		t.Errorf("ReadText = %q, want hi", text)
	}
}

func TestFilesReadMissingIsNotFound(t *testing.T) {
	files := newFakeFiles()
	sb := connectTestSandbox(t, func(w http.ResponseWriter, r *http.Request) {
		files.handle(t, w, r)
	})

	_, err := sb.Files().Read(context.Background(), "/missing")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not-found *APIError", err)
	}
}

func TestFilesListEmptyDirectory(t *testing.T) {
	sb := connectTestSandbox(t, func(w http.ResponseWriter, r *http.Request) {
		// 服务端对空目录返回 null
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	})

	entries, err := sb.Files().List(context.Background(), "/empty")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries == nil {
		t.Fatal("List should return an empty slice, not nil")
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestFilesListEntries(t *testing.T) {
	sb := connectTestSandbox(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("path"); got != "/data" {
			t.Errorf("path = %q, want /data", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"a.txt","path":"/data/a.txt","isDir":false,"size":5},
			{"name":"sub","path":"/data/sub","isDir":true}]`))
	})

	entries, err := sb.Files().List(context.Background(), "/data")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name != "a.txt" || entries[0].IsDir || entries[0].Size != 5 {
		t.Errorf("unexpected entry %+v", entries[0])
	}
	if entries[1].Name != "sub" || !entries[1].IsDir {
		t.Errorf("unexpected entry %+v", entries[1])
	}
}

func TestFilesExists(t *testing.T) {
	files := newFakeFiles()
	sb := connectTestSandbox(t, func(w http.ResponseWriter, r *http.Request) {
		files.handle(t, w, r)
	})

	if sb.Files().Exists(context.Background(), "/nope") {
		t.Error("Exists(/nope) = true, want false")
	}
	if err := sb.Files().WriteText(context.Background(), "/yes", "x"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !sb.Files().Exists(context.Background(), "/yes") {
		t.Error("Exists(/yes) = false, want true")
	}
}

func TestFilesRemove(t *testing.T) {
	files := newFakeFiles()
	sb := connectTestSandbox(t, func(w http.ResponseWriter, r *http.Request) {
		files.handle(t, w, r)
	})

	if err := sb.Files().WriteText(context.Background(), "/gone", "x"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if err := sb.Files().Remove(context.Background(), "/gone"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if sb.Files().Exists(context.Background(), "/gone") {
		t.Error("file still exists after Remove")
	}
}
