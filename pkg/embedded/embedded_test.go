package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/wheel.yaml":        {Data: []byte("singleSpin: true\n")},
		"data/presets/fast.yaml": {Data: []byte("spin: {}\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// nil 文件系统视为未初始化
	Init(nil)
	if IsInitialized() {
		t.Error("Expected Init(nil) to leave package uninitialized")
	}
}

// TestNotInitialized 未初始化时所有访问都返回 ErrNotInitialized
func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := Open("data/wheel.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open: expected ErrNotInitialized, got %v", err)
	}
	if _, err := ReadFile("data/wheel.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile: expected ErrNotInitialized, got %v", err)
	}
	if _, err := ReadDir("data"); err == nil {
		t.Error("ReadDir: expected error before Init()")
	}
	if Exists("data/wheel.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"标准路径", "data/wheel.yaml", "singleSpin: true\n", false},
		{"带 ./ 前缀", "./data/wheel.yaml", "singleSpin: true\n", false},
		{"子目录", "data/presets/fast.yaml", "spin: {}\n", false},
		{"未知前缀", "assets/logo.png", "", true},
		{"文件不存在", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q): %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestExistsAndReadDir 存在性检查与目录列举
func TestExistsAndReadDir(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/wheel.yaml") {
		t.Error("Expected data/wheel.yaml to exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("Expected data/nope.yaml to be missing")
	}

	entries, err := ReadDir("data/presets")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "fast.yaml" {
		t.Errorf("unexpected entries: %v", entries)
	}
}
