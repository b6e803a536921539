package main

import (
	"log"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// noSpeechPlaceholder replaces a response that has nothing left after cleanup.
const noSpeechPlaceholder = "（発言なし）"

const reasoningMarker = "Thought:"

// boilerplatePatterns strip agent scaffolding. Each removal stops at the next line break.
var boilerplatePatterns = compileBoilerplate(
	`Agent Final Answer:.*?(?=\n|$)`,
	`Final Answer:.*?(?=\n|$)`,
	`Action:.*?(?=\n|$)`,
	`Observation:.*?(?=\n|$)`,
	`I need to.*?(?=\n|$)`,
	`Based on.*?(?=\n|$)`,
)

func compileBoilerplate(exprs ...string) []*regexp2.Regexp {
	res := make([]*regexp2.Regexp, len(exprs))
	for i, expr := range exprs {
		res[i] = regexp2.MustCompile(expr, regexp2.IgnoreCase|regexp2.Singleline)
	}
	return res
}

// CleanSpeech reduces a raw model reply to the in-character Japanese speech.
// The result is never empty and CleanSpeech(CleanSpeech(s)) == CleanSpeech(s).
func CleanSpeech(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, reasoningMarker) {
		prefix, _, _ := strings.Cut(text, reasoningMarker)
		if strings.TrimSpace(prefix) != "" {
			text = prefix
		} else {
			for strings.Contains(text, reasoningMarker) {
				text = strings.ReplaceAll(text, reasoningMarker, "")
			}
		}
	}

	for _, re := range boilerplatePatterns {
		out, err := re.Replace(text, "", -1, -1)
		if err != nil {
			log.Printf("CleanSpeech: pattern %q: %v", re.String(), err)
			continue
		}
		text = out
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && hasJapanese(line) {
			kept = append(kept, line)
		}
	}
	if len(kept) > 0 {
		return strings.Join(kept, "\n")
	}

	if text = strings.TrimSpace(text); text != "" {
		return text
	}
	return noSpeechPlaceholder
}

func hasJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
