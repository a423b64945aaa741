package main

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/ironsheep/grayscale-mcp/internal/server"
)

// executeCommand runs rootCmd with args and stdin, returning stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	pretty = false
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

const basicImageJSON = `[[[255,0,0],[0,255,0]],[[0,0,255],[255,255,255]]]`

func checkBasicGray(t *testing.T, out string) {
	t.Helper()

	var gray [][]float64
	if err := json.Unmarshal([]byte(out), &gray); err != nil {
		t.Fatalf("Failed to decode output %q: %v", out, err)
	}
	want := [][]float64{{76.245, 149.685}, {29.07, 255.0}}
	if len(gray) != len(want) {
		t.Fatalf("height: got %d, want %d", len(gray), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if diff := math.Abs(gray[i][j] - want[i][j]); diff > 1e-10 {
				t.Errorf("gray[%d][%d]: got %v, want %v", i, j, gray[i][j], want[i][j])
			}
		}
	}
}

func TestConvertCommand_Stdin(t *testing.T) {
	out, err := executeCommand(t, basicImageJSON, "convert")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	checkBasicGray(t, out)
}

func TestConvertCommand_Dash(t *testing.T) {
	out, err := executeCommand(t, basicImageJSON, "convert", "-")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	checkBasicGray(t, out)
}

func TestConvertCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.json")
	if err := os.WriteFile(path, []byte(basicImageJSON), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	out, err := executeCommand(t, "", "convert", "--pretty", path)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "\n  ") {
		t.Errorf("expected indented output, got %q", out)
	}
	checkBasicGray(t, out)
}

func TestConvertCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"empty image", `[]`, []string{"convert"}, "empty_image"},
		{"ragged rows", `[[[1,2,3]],[[4,5,6],[7,8,9]]]`, []string{"convert"}, "ragged_rows"},
		{"two channels", `[[[1,2],[3,4]]]`, []string{"convert"}, "invalid_pixel"},
		{"bad json", `{not json`, []string{"convert"}, "failed to decode image"},
		{"missing file", ``, []string{"convert", filepath.Join(os.TempDir(), "does-not-exist.json")}, "failed to open input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatalf("expected error, got output %q", out)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
			if out != "" {
				t.Errorf("expected no output on failure, got %q", out)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "grayscale-mcp "+Version) {
		t.Errorf("unexpected version output: %q", out)
	}
	if !strings.Contains(out, "Git commit:") {
		t.Errorf("version output missing commit: %q", out)
	}
}

func TestPersistentFlagsReachConfig(t *testing.T) {
	t.Cleanup(func() {
		flags := rootCmd.PersistentFlags()
		for name, value := range map[string]string{"log-level": "info", "max-request-bytes": strconv.Itoa(server.DefaultMaxRequestBytes)} {
			if err := flags.Set(name, value); err != nil {
				t.Errorf("failed to reset --%s: %v", name, err)
			}
			flags.Lookup(name).Changed = false
		}
	})

	if _, err := executeCommand(t, "", "version", "--log-level", "debug", "--max-request-bytes", "1234"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !debugEnabled() {
		t.Errorf("log_level: got %q, want debug", viper.GetString("log_level"))
	}
	if got := viper.GetInt("max_request_bytes"); got != 1234 {
		t.Errorf("max_request_bytes: got %d, want 1234", got)
	}
}

func TestServeCommand(t *testing.T) {
	stdin := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"grayscale_to_gray","arguments":{"image":[[[1,1,1]]]}}}`,
	}, "\n") + "\n"

	out, err := executeCommand(t, stdin, "serve")
	if err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], `"name":"grayscale-mcp"`) {
		t.Errorf("initialize response missing server name: %s", lines[0])
	}
	if strings.Contains(lines[1], `"error"`) {
		t.Errorf("tool call failed: %s", lines[1])
	}
}
