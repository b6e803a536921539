package main

import (
	"strings"
	"testing"
)

func TestEveryPromptRenders(t *testing.T) {
	prompts := newTestPrompts(t)
	data := promptData{
		Day:        2,
		Alive:      []string{"あきら", "ゆうき"},
		Candidates: []string{"ゆうき"},
	}

	game := []string{"wolf_plan", "wolf_reply", "night_fortune", "night_guard", "morning", "discussion", "vote"}
	for _, name := range game {
		t.Run(name, func(t *testing.T) {
			got, err := prompts.Render(name, data)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(got, "必ず日本語のみで発言してください") {
				t.Error("missing Japanese-only instruction")
			}
			if strings.Contains(got, "<no value>") {
				t.Errorf("unfilled field in %q", got)
			}
		})
	}

	for _, task := range roundtableTasks {
		if _, err := prompts.Render(task.template, nil); err != nil {
			t.Errorf("Render(%s): %v", task.template, err)
		}
	}
}

func TestPromptBranches(t *testing.T) {
	prompts := newTestPrompts(t)

	tests := []struct {
		name     string
		template string
		data     promptData
		want     string
		notWant  string
	}{
		{"first morning", "morning", promptData{Day: 1, FirstDay: true}, "初日なので襲撃は行われませんでした", "昨夜の襲撃結果"},
		{"later morning", "morning", promptData{Day: 3}, "昨夜の襲撃結果を発表してください", "初日"},
		{"anonymous first morning", "morning", promptData{Day: 1, FirstDay: true, Anonymous: true}, "特別な出来事はありませんでした", "襲撃"},
		{"no dead", "morning", promptData{Day: 1}, "死亡者: なし", ""},
		{"dead listed", "morning", promptData{Day: 2, Dead: []string{"たけし"}}, "死亡者: たけし", ""},
		{"open fortune", "night_fortune", promptData{Day: 1}, "占い師として", "調査"},
		{"anonymous fortune", "night_fortune", promptData{Day: 1, Anonymous: true}, "【調査】", "占い"},
		{"anonymous guard", "night_guard", promptData{Day: 1, Anonymous: true}, "【保護】", "騎士"},
		{"anonymous discussion", "discussion", promptData{Day: 1, Anonymous: true}, "推理と意見", "狂人"},
		{"open vote", "vote", promptData{Candidates: []string{"a", "b"}}, "投票候補者: a, b", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prompts.Render(tt.template, tt.data)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("missing %q in %q", tt.want, got)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("unexpected %q in %q", tt.notWant, got)
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := newTestPrompts(t).Render("lynch", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
