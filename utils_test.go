package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestGameLoggerWritesEverySink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console, extra bytes.Buffer

	gl, err := NewGameLogger(dir, "open_mode", "人狼ゲーム", &console, &extra)
	if err != nil {
		t.Fatalf("NewGameLogger: %v", err)
	}

	if !regexp.MustCompile(`open_mode_\d{14}\.md$`).MatchString(gl.Path()) {
		t.Errorf("Path = %q", gl.Path())
	}
	if filepath.Dir(gl.Path()) != dir {
		t.Errorf("log not written under %s", dir)
	}
	if !strings.Contains(console.String(), "📝 ログファイル作成: "+gl.Path()) {
		t.Error("log path not announced on console")
	}

	gl.Printf("生存者: %d名", 9)
	gl.LogPhase("📅 1日目開始", 1)
	if err := gl.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(gl.Path())
	if err != nil {
		t.Fatal(err)
	}
	file := string(data)
	if !strings.HasPrefix(file, "人狼ゲーム ログ - ") {
		t.Errorf("header = %q", strings.SplitN(file, "\n", 2)[0])
	}
	if !strings.Contains(file, separatorWide) {
		t.Error("header separator missing")
	}
	for _, sink := range []string{file, console.String(), extra.String()} {
		if !strings.Contains(sink, "生存者: 9名\n") {
			t.Error("line missing from a sink")
		}
		if !strings.Contains(sink, "📅 1日目開始 - 1日目") {
			t.Error("phase heading missing from a sink")
		}
	}
	// The header goes to the file only
	if strings.Contains(extra.String(), "ログ - ") {
		t.Error("header leaked to extra sink")
	}
}

func TestLogPhaseWithoutDay(t *testing.T) {
	gl, console := newTestGameLogger(t)
	gl.LogPhase("🎉 人狼ゲーム完了！", 0)
	want := separatorPhase + "\n🎉 人狼ゲーム完了！\n" + separatorPhase + "\n"
	if !strings.HasSuffix(console.String(), want) {
		t.Errorf("console = %q", console.String())
	}
}
