package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/dataquality/internal/config"
	"github.com/JonMunkholm/dataquality/internal/csv"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func scanConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	zips := filepath.Join(dir, "zips.json")
	writeFile(t, zips, `{"MA": ["02109"], "California": ["90210"]}`)

	input := filepath.Join(dir, "input.csv")
	writeFile(t, input, "social_security,state,zip,phone1,email\n"+
		"123456789,ma,2109,(123) 456-7890,a@b.com\n"+
		"na,CA,02109,555,\n")

	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatal(err)
	}

	return &config.Config{
		Scan: config.ScanConfig{
			InputFile:   input,
			OutputPath:  out,
			PhoneFormat: "hyphen",
			MaxFileSize: 1 << 20,
			Timeout:     time.Minute,
		},
		Reference: config.ReferenceConfig{ZipsFile: zips},
	}
}

func TestRunScan(t *testing.T) {
	cfg := scanConfig(t)

	var stdout bytes.Buffer
	if err := runScan(context.Background(), cfg, &stdout); err != nil {
		t.Fatalf("runScan: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(cfg.Scan.OutputPath, csv.OutputFileName))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "social_security,state,zip,phone1,email\n" +
		"123-45-6789,MA,02109,123-456-7890,a@b.com\n" +
		"na,CA,02109,555,\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}

	for _, s := range []string{"Scanned 2 records", "State/zip mismatches", "Summary"} {
		if !strings.Contains(stdout.String(), s) {
			t.Errorf("report missing %q:\n%s", s, stdout.String())
		}
	}
}

func TestRunScan_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(t *testing.T, cfg *config.Config)
		want   error
	}{
		{
			name: "output path is a file",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Scan.OutputPath = cfg.Scan.InputFile
			},
			want: csv.ErrNotDirectory,
		},
		{
			name: "input is a directory",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Scan.InputFile = cfg.Scan.OutputPath
			},
			want: csv.ErrInputNotFile,
		},
		{
			name: "missing input",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Scan.InputFile = filepath.Join(t.TempDir(), "nope.csv")
			},
			want: os.ErrNotExist,
		},
		{
			name: "missing zips file",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Reference.ZipsFile = filepath.Join(t.TempDir(), "nope.json")
			},
			want: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scanConfig(t)
			tt.modify(t, cfg)

			err := runScan(context.Background(), cfg, io.Discard)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}

			if _, statErr := os.Stat(filepath.Join(cfg.Scan.OutputPath, csv.OutputFileName)); statErr == nil {
				t.Error("output written despite error")
			}
		})
	}
}

func TestReferenceStatesCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "states.txt")
	out := filepath.Join(dir, "states.json")
	writeFile(t, in, "Massachusetts MA\nNew York NY\n")

	var f flags
	root := newRootCmd(&f)
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"reference", "states", in, "--out", out})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"New York": "NY"`) {
		t.Errorf("states.json = %s", data)
	}
	if got, want := stdout.String(), "wrote 2 states to "+out+"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("PHONE_FORMAT", "hyphen")
	t.Setenv("OUTPUT_PATH", "/from/env")

	var f flags
	root := newRootCmd(&f)
	if err := root.ParseFlags([]string{"--phone-format", "paren", "--env-file", filepath.Join(t.TempDir(), "none.env")}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(root, &f)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Scan.PhoneFormat != "paren" {
		t.Errorf("PhoneFormat = %q, want %q", cfg.Scan.PhoneFormat, "paren")
	}
	if cfg.Scan.OutputPath != "/from/env" {
		t.Errorf("OutputPath = %q, want %q", cfg.Scan.OutputPath, "/from/env")
	}
}
