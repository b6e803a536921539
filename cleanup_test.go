package main

import (
	"strings"
	"testing"
	"testing/quick"
)

func TestCleanSpeech(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain japanese", "たろうさんが怪しいと思います。", "たろうさんが怪しいと思います。"},
		{"prefix before reasoning marker", "私は市民です。\nThought: I should lie", "私は市民です。"},
		{"blank prefix drops marker", "Thought: 私は占い師です。", "私は占い師です。"},
		{"final answer line removed", "Final Answer: done\n投票します。", "投票します。"},
		{"agent final answer removed", "Agent Final Answer: x\nはなこに投票します。", "はなこに投票します。"},
		{"case insensitive", "final answer: ok\n議論しましょう。", "議論しましょう。"},
		{"english lines dropped when japanese exists", "I think so.\nそう思います。\nOK", "そう思います。"},
		{"no japanese keeps trimmed text", "  hello world  ", "hello world"},
		{"only boilerplate becomes placeholder", "Action: vote\nObservation: none", noSpeechPlaceholder},
		{"empty becomes placeholder", "   ", noSpeechPlaceholder},
		{"katakana counts", "カメレオン", "カメレオン"},
		{"kanji counts", "人狼", "人狼"},
		{"removal stops at line break", "Based on the logs\nけんじさんです。", "けんじさんです。"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSpeech(tt.in); got != tt.want {
				t.Errorf("CleanSpeech(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

var cleanupFixtures = []string{
	"",
	"Thought:",
	"Thought: Thought:",
	"ThoThought:ught: 考え中",
	"私は市民です。\nThought: plan\nFinal Answer: 私は市民です。",
	"Action: x\nAction Input: y\nObservation: z\n結論です。",
	"I need to think.\nBased on this, vote.\n",
	"\n\n  \n",
	"Agent Final Answer: 最終回答",
	"ミックス mixed 文章\r\nsecond line",
}

func TestCleanSpeechIdempotentOnFixtures(t *testing.T) {
	for _, in := range cleanupFixtures {
		once := CleanSpeech(in)
		if twice := CleanSpeech(once); twice != once {
			t.Errorf("not idempotent for %q: %q -> %q", in, once, twice)
		}
		if once == "" {
			t.Errorf("CleanSpeech(%q) returned empty", in)
		}
	}
}

func TestCleanSpeechProperties(t *testing.T) {
	f := func(parts []string, pick []uint8) bool {
		// Splice random text with the markers the cleaner looks for
		markers := []string{"Thought:", "Final Answer:", "Action:", "\n", "人狼", "I need to", " "}
		var b strings.Builder
		for i, p := range parts {
			b.WriteString(p)
			if i < len(pick) {
				b.WriteString(markers[int(pick[i])%len(markers)])
			}
		}
		in := b.String()

		once := CleanSpeech(in)
		return once != "" && CleanSpeech(once) == once
	}

	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}
