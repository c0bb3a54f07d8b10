package r2client

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigEndpoint(t *testing.T) {
	cfg := Config{AccountID: "abc123"}
	want := "https://abc123.r2.cloudflarestorage.com"
	if got := cfg.Endpoint(); got != want {
		t.Errorf("Endpoint() = %q, want %q", got, want)
	}
}

func TestNewRequiresAllFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing account", Config{AccessKeyID: "k", SecretKey: "s", BucketName: "b"}},
		{"missing key", Config{AccountID: "a", SecretKey: "s", BucketName: "b"}},
		{"missing secret", Config{AccountID: "a", AccessKeyID: "k", BucketName: "b"}},
		{"missing bucket", Config{AccountID: "a", AccessKeyID: "k", SecretKey: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(context.Background(), tt.cfg); err == nil {
				t.Error("New() with incomplete config should fail")
			}
		})
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := filepath.Join(tmpDir, "advisor.db")
	compressedPath := filepath.Join(tmpDir, "advisor.db.zst")
	restoredPath := filepath.Join(tmpDir, "restored.db")

	// SQLite files compress well; repeated text approximates that
	testData := strings.Repeat("CI_1.01 Mathematics 1 Monday 08:30 10:00 ", 2000)
	if err := os.WriteFile(srcPath, []byte(testData), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	if err := CompressFile(srcPath, compressedPath); err != nil {
		t.Fatalf("CompressFile: %v", err)
	}

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		t.Fatal(err)
	}
	compressedInfo, err := os.Stat(compressedPath)
	if err != nil {
		t.Fatalf("compressed file not created: %v", err)
	}
	if compressedInfo.Size() >= srcInfo.Size() {
		t.Errorf("compressed size %d not smaller than source %d", compressedInfo.Size(), srcInfo.Size())
	}

	f, err := os.Open(compressedPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := DecompressStream(f, restoredPath); err != nil {
		t.Fatalf("DecompressStream: %v", err)
	}

	restored, err := os.ReadFile(restoredPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(restored, []byte(testData)) {
		t.Error("round-tripped data does not match source")
	}
}

func TestDecompressStreamRejectsGarbage(t *testing.T) {
	tmpDir := t.TempDir()
	dst := filepath.Join(tmpDir, "out.db")

	err := DecompressStream(io.NopCloser(strings.NewReader("not zstd data")), dst)
	if err == nil {
		t.Error("DecompressStream should fail on non-zstd input")
	}
}
