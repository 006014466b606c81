package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string  `mapstructure:"name"`
	Rate  float64 `mapstructure:"rate"`
	Items []struct {
		Key string `mapstructure:"key"`
	} `mapstructure:"items"`
}

func TestLoadReader_JSON(t *testing.T) {
	var s sample
	err := LoadReader(strings.NewReader(`{"name":"village","rate":60,"items":[{"key":"wall"},{"key":"tower"}]}`), "json", &s)
	if err != nil {
		t.Fatalf("LoadReader err=%v", err)
	}
	if s.Name != "village" || s.Rate != 60 || len(s.Items) != 2 || s.Items[1].Key != "tower" {
		t.Fatalf("解析结果不符: %+v", s)
	}
}

func TestLoadFile_与FindUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "configs", "conf.yml")
	if err := os.WriteFile(path, []byte("name: yml\nrate: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := FindUpward(nested, filepath.Join("configs", "conf.yml")); got != path {
		t.Fatalf("FindUpward got=%s want=%s", got, path)
	}
	var s sample
	if err := LoadFile(path, &s); err != nil {
		t.Fatalf("LoadFile err=%v", err)
	}
	if s.Name != "yml" || s.Rate != 1.5 {
		t.Fatalf("got=%+v", s)
	}
	if err := LoadFile(filepath.Join(root, "missing.yml"), &s); err == nil {
		t.Fatalf("期望文件不存在时返回 error")
	}
}
