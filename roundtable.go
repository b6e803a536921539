package main

import (
	"context"
	"fmt"
)

type roundtableTask struct {
	speaker  int // index into roundtableCast
	template string
	heading  string
}

// roundtableTasks run strictly in order; each sees every earlier output.
var roundtableTasks = []roundtableTask{
	{0, "roundtable_1", "シニアソフトウェアエンジニア（40代）の発言"},
	{1, "roundtable_2", "シニアバックエンドデベロッパー（30代後半）の発言"},
	{2, "roundtable_3", "シニアフロントエンドデベロッパー（40代）の発言"},
	{3, "roundtable_4", "ジュニアデベロッパー（20代）の発言"},
	{0, "roundtable_5", "シニアソフトウェアエンジニア（40代）のアドバイス"},
}

// Roundtable is the four-developer career discussion.
type Roundtable struct {
	cast      []Persona
	responder Responder
	out       *GameLogger
	store     *Store
	runID     string
	prompts   *Prompts
}

// Run executes the five tasks. The first failure aborts the discussion.
func (rt *Roundtable) Run(ctx context.Context) error {
	rt.out.Println(separatorPhase)
	rt.out.Println("🤖 AI時代のデベロッパーキャリア ディスカッション")
	rt.out.Printf("👥 %d人のエージェントによる実際の会話", len(rt.cast))
	rt.out.Println(separatorPhase)
	rt.out.Println("")
	for _, p := range rt.cast {
		rt.out.Printf("  - %s", p.Label)
	}
	rt.out.Println("\n🎯 会話開始...")

	for i, task := range roundtableTasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		speaker := rt.cast[task.speaker]

		prompt, err := rt.prompts.Render(task.template, nil)
		if err != nil {
			return err
		}
		history, err := rt.store.visibleHistory(rt.runID, Viewer{Name: speaker.ID})
		if err != nil {
			return err
		}

		DebugLog("Roundtable.Run", "task %d speaker=%s history=%d", i+1, speaker.ID, len(history))
		text, err := rt.responder.Respond(ctx, speaker, history, prompt)

		u := Utterance{
			RunID:      rt.runID,
			Day:        0,
			Phase:      "roundtable",
			Speaker:    speaker.ID,
			Label:      speaker.Label,
			Visibility: VisibilityPublic,
			Prompt:     prompt,
			Response:   text,
		}
		if err != nil {
			u.Error = err.Error()
		}
		if recErr := rt.store.recordUtterance(u); recErr != nil {
			logError("Roundtable.Run: record", recErr)
		}
		if err != nil {
			rt.out.Printf("\n❌ エラーが発生しました: %v", err)
			return fmt.Errorf("roundtable task %d (%s): %w", i+1, speaker.ID, err)
		}

		rt.out.Println(separatorNarrow)
		rt.out.Println(task.heading)
		rt.out.Println(separatorNarrow)
		rt.out.Println(text)
		rt.out.Println("")
	}

	rt.out.Println(separatorPhase)
	rt.out.Println("🎉 ディスカッション完了！")
	rt.out.Println(separatorPhase)
	return nil
}
