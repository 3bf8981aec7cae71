package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/jsbind/internal/emitter"
)

const signature = `package: dom
decls:
  - type: element
  - val: width
    type: func(element) int
`

func writeSignature(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dom.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing signature: %v", err)
	}
	return path
}

func TestRun_PrintsArchive(t *testing.T) {
	t.Parallel()
	path := writeSignature(t, signature)
	var stdout, stderr bytes.Buffer
	if code := Run([]string{path}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	files := emitter.Unarchive(stdout.Bytes())
	if len(files) != 1 || files[0].Filename != "dom.go" {
		t.Fatalf("archive files = %v", files)
	}
	if !strings.Contains(string(files[0].Content), "func Width(arg0 Element) int {") {
		t.Errorf("unexpected output:\n%s", files[0].Content)
	}
}

func TestRun_WritesDirectory(t *testing.T) {
	t.Parallel()
	path := writeSignature(t, signature)
	out := filepath.Join(t.TempDir(), "gen")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"-o", out, "-package", "web", path}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty with -o, got %q", stdout.String())
	}
	src, err := os.ReadFile(filepath.Join(out, "web.go"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(src), "package web") {
		t.Errorf("unexpected output:\n%s", src)
	}
}

func TestRun_Diagnostic(t *testing.T) {
	t.Parallel()
	path := writeSignature(t, "package: dom\ndecls:\n  - val: w\n    type: func(widget) int\n")
	var stdout, stderr bytes.Buffer
	if code := Run([]string{path}, &stdout, &stderr); code != ExitError {
		t.Fatalf("exit = %d, want %d", code, ExitError)
	}
	if stdout.Len() != 0 {
		t.Errorf("no output expected on error, got %q", stdout.String())
	}
	want := path + ":4:16: error[UnresolvedType]: "
	if !strings.HasPrefix(stderr.String(), want) {
		t.Errorf("stderr = %q, want prefix %q", stderr.String(), want)
	}
	if strings.Contains(stderr.String(), "\033[") {
		t.Error("diagnostics written to a buffer must not be colored")
	}
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no file", nil, ExitUsage},
		{"two files", []string{"a.yaml", "b.yaml"}, ExitUsage},
		{"unknown flag", []string{"-x", "a.yaml"}, ExitUsage},
		{"help", []string{"-h"}, ExitOK},
		{"missing file", []string{filepath.Join(t.TempDir(), "none.yaml")}, ExitError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			if code := Run(tt.args, &stdout, &stderr); code != tt.want {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.want, stderr.String())
			}
		})
	}
}

func TestRun_WarnsOnExtension(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "dom.sig")
	if err := os.WriteFile(path, []byte(signature), 0o644); err != nil {
		t.Fatalf("writing signature: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := Run([]string{path}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "warning:") {
		t.Errorf("expected an extension warning, got %q", stderr.String())
	}
}
