package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

const defaultMaxDays = 4

// Phase is one step of the fixed daily cycle.
type Phase string

const (
	PhaseNight      Phase = "night"
	PhaseMorning    Phase = "morning"
	PhaseDiscussion Phase = "discussion"
	PhaseVoting     Phase = "voting"
)

// phaseCycle is the order every day runs in. No phase is ever skipped.
var phaseCycle = []Phase{PhaseNight, PhaseMorning, PhaseDiscussion, PhaseVoting}

// gameMode holds what differs between the open and anonymous variants.
type gameMode struct {
	name        string
	logPrefix   string
	title       string
	banner      []string
	closing     string
	wolfMeeting bool                // wolves plan together at night
	hideNight   bool                // night turns run without printing anything
	revealRoles bool                // print who had which role at the end
	clean       func(string) string // applied to every response, nil to keep raw text
}

func openMode() gameMode {
	return gameMode{
		name:      modeOpen,
		logPrefix: "open_mode",
		title:     "🐺 人狼ゲーム（公開モード）",
		banner: []string{
			"🐺 人狼ゲーム - 10人村 🐺",
			"🎭 人狼2 狂人1 占い師1 騎士1 市民4 ゲームマスター1",
			"📋 初日噛み無し | 人狼夜会話あり | スペシャリスト対戦",
		},
		closing:     "🏆 本格的な人狼戦が繰り広げられました！",
		wolfMeeting: true,
	}
}

func anonymousMode() gameMode {
	return gameMode{
		name:      modeAnonymous,
		logPrefix: "anonymous_mode",
		title:     "🎭 人狼ゲーム（匿名モード）",
		banner: []string{
			"🎭 人狼ゲーム - 10人村（匿名モード）🎭",
			"🕵️ 誰が人狼なのか推理しながら観戦しよう！",
			"📋 初日噛み無し | 人狼夜会話非表示 | 参加型観戦",
		},
		closing:     "🕵️ さあ、あなたの推理は当たっていましたか？",
		hideNight:   true,
		revealRoles: true,
		clean:       CleanSpeech,
	}
}

func modeByName(name string) (gameMode, error) {
	switch name {
	case modeOpen:
		return openMode(), nil
	case modeAnonymous:
		return anonymousMode(), nil
	}
	return gameMode{}, fmt.Errorf("no game mode %q", name)
}

// turnKind selects the progress and result wording of a turn.
type turnKind int

const (
	turnSpeak turnKind = iota
	turnAct
	turnVote
)

func (k turnKind) verb() string {
	switch k {
	case turnAct:
		return "行動"
	case turnVote:
		return "投票"
	}
	return "発言"
}

type turnSpec struct {
	speaker    Persona
	viewer     Viewer
	phase      Phase
	kind       turnKind
	template   string
	data       promptData
	visibility string
	silent     bool
}

// Sequencer drives one game from the first night to the day cap.
type Sequencer struct {
	state       *GameState
	mode        gameMode
	cast        map[string]Persona
	responder   Responder
	out         *GameLogger
	store       *Store
	runID       string
	prompts     *Prompts
	maxDays     int
	turnTimeout time.Duration
}

// Run plays maxDays full cycles. Turn failures never stop it; only ctx does.
func (s *Sequencer) Run(ctx context.Context) error {
	s.printIntro()

	for !s.state.GameOver && s.state.DayCount < s.maxDays {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.state.beginDay()
		s.out.LogPhase(fmt.Sprintf("📅 %d日目開始", s.state.DayCount), s.state.DayCount)
		s.out.Printf("生存者: %d名", len(s.state.alivePlayers()))

		for _, phase := range phaseCycle {
			if err := s.runPhase(ctx, phase); err != nil {
				return err
			}
		}
		s.out.Printf("\n✅ %d日目終了", s.state.DayCount)
	}

	s.printSummary()
	return nil
}

func (s *Sequencer) runPhase(ctx context.Context, phase Phase) error {
	DebugLog("runPhase", "day=%d phase=%s", s.state.DayCount, phase)
	switch phase {
	case PhaseNight:
		s.state.TimeOfDay = TimeNight
		return s.night(ctx)
	case PhaseMorning:
		s.state.TimeOfDay = TimeDay
		return s.morning(ctx)
	case PhaseDiscussion:
		return s.discussion(ctx)
	case PhaseVoting:
		return s.voting(ctx)
	}
	return fmt.Errorf("unknown phase %q", phase)
}

func (s *Sequencer) baseData() promptData {
	alive := s.state.aliveNames()
	return promptData{
		Day:        s.state.DayCount,
		FirstDay:   s.state.DayCount == 1,
		Anonymous:  s.mode.hideNight,
		Alive:      alive,
		Dead:       s.state.Dead,
		Candidates: alive,
	}
}

func (s *Sequencer) playerTurn(p Player, phase Phase, kind turnKind, tmpl, visibility string, silent bool) turnSpec {
	return turnSpec{
		speaker:    s.cast[p.Name],
		viewer:     Viewer{Name: p.Name, Role: p.Role},
		phase:      phase,
		kind:       kind,
		template:   tmpl,
		data:       s.baseData(),
		visibility: visibility,
		silent:     silent,
	}
}

func (s *Sequencer) night(ctx context.Context) error {
	day := s.state.DayCount
	s.out.Printf("\n🌙 %d日目の夜", day)
	if day == 1 {
		s.out.Println("※ 初日なので襲撃は行われません")
	}
	if s.mode.hideNight {
		s.out.Println("※ 人狼の会話は見えません...")
	}
	s.out.Println(separatorNarrow)

	var turns []turnSpec
	if wolves := s.state.aliveWithRole(RoleWerewolf); s.mode.wolfMeeting && len(wolves) >= 2 {
		turns = append(turns,
			s.playerTurn(wolves[0], PhaseNight, turnSpeak, "wolf_plan", VisibilityTeamWerewolf, false),
			s.playerTurn(wolves[1], PhaseNight, turnSpeak, "wolf_reply", VisibilityTeamWerewolf, false),
		)
	}
	visibility := VisibilityActor
	if s.mode.hideNight {
		visibility = VisibilityHidden
	}
	var actions []turnSpec
	for _, p := range s.state.aliveWithRole(RoleFortuneTeller) {
		actions = append(actions, s.playerTurn(p, PhaseNight, turnAct, "night_fortune", visibility, s.mode.hideNight))
	}
	for _, p := range s.state.aliveWithRole(RoleKnight) {
		actions = append(actions, s.playerTurn(p, PhaseNight, turnAct, "night_guard", visibility, s.mode.hideNight))
	}

	if s.mode.hideNight {
		s.out.Println("\n🌙 夜が更けていきます...")
		s.out.Println("💤 村は静寂に包まれています...")
		s.out.Println("🌟 何かが起こっているかもしれませんが、誰にもわかりません...")
	}

	if len(turns) > 0 {
		s.out.Println("\n🐺 人狼の秘密会議...")
		for _, t := range turns {
			if _, err := s.turn(ctx, t); err != nil {
				return err
			}
		}
	}

	if !s.mode.hideNight {
		s.out.Println("\n🔮 各役職の夜行動...")
	}
	for _, t := range actions {
		text, err := s.turn(ctx, t)
		if err != nil {
			return err
		}
		if text != "" {
			s.state.NightActions[t.viewer.Name] = text
		}
	}

	if s.mode.hideNight {
		s.out.Println("🌅 夜が明けようとしています...")
	}
	return nil
}

func (s *Sequencer) morning(ctx context.Context) error {
	s.out.Printf("\n☀️ %d日目の昼 - 議論フェーズ", s.state.DayCount)
	s.out.Println(separatorNarrow)

	_, err := s.turn(ctx, turnSpec{
		speaker:    s.cast[gameMasterID],
		viewer:     Viewer{Name: gameMasterID},
		phase:      PhaseMorning,
		kind:       turnSpeak,
		template:   "morning",
		data:       s.baseData(),
		visibility: VisibilityPublic,
	})
	return err
}

func (s *Sequencer) discussion(ctx context.Context) error {
	for _, p := range s.state.alivePlayers() {
		if _, err := s.turn(ctx, s.playerTurn(p, PhaseDiscussion, turnSpeak, "discussion", VisibilityPublic, false)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) voting(ctx context.Context) error {
	s.out.Printf("\n🗳️ %d日目の投票フェーズ", s.state.DayCount)
	s.out.Println(separatorNarrow)

	for _, p := range s.state.alivePlayers() {
		text, err := s.turn(ctx, s.playerTurn(p, PhaseVoting, turnVote, "vote", VisibilityPublic, false))
		if err != nil {
			return err
		}
		if text != "" {
			s.state.Votes[p.Name] = text
		}
	}
	return nil
}

// turn runs one responder call. A failed call is logged and yields "" with a
// nil error; the only error returned is the run's own cancellation.
func (s *Sequencer) turn(ctx context.Context, t turnSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	label := t.speaker.Label
	if label == "" {
		label = t.viewer.Name
	}
	verb := t.kind.verb()

	prompt, err := s.prompts.Render(t.template, t.data)
	if err != nil {
		s.reportFailure(t, label, verb, err)
		return "", nil
	}

	history, err := s.store.visibleHistory(s.runID, t.viewer)
	if err != nil {
		logError("Sequencer.turn: history for "+t.viewer.Name, err)
	}

	if !t.silent {
		s.out.Printf("\n%sが%s中...", label, verb)
	}

	callCtx := ctx
	if s.turnTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.turnTimeout)
		defer cancel()
	}
	text, err := s.responder.Respond(callCtx, t.speaker, history, prompt)
	if err == nil && s.mode.clean != nil {
		text = s.mode.clean(text)
	}

	u := Utterance{
		RunID:      s.runID,
		Day:        s.state.DayCount,
		Phase:      string(t.phase),
		Speaker:    t.viewer.Name,
		Label:      label,
		Visibility: t.visibility,
		Prompt:     prompt,
		Response:   text,
	}
	if err != nil {
		u.Error = err.Error()
	}
	if recErr := s.store.recordUtterance(u); recErr != nil {
		logError("Sequencer.turn: record", recErr)
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		s.reportFailure(t, label, verb, err)
		return "", nil
	}

	if !t.silent {
		if t.kind == turnVote {
			s.out.Printf("\n%sの投票: %s", label, text)
		} else {
			s.out.Printf("\n%s: %s", label, text)
		}
	}
	return text, nil
}

// reportFailure logs a skipped turn. Silent turns only reach the process log.
func (s *Sequencer) reportFailure(t turnSpec, label, verb string, err error) {
	if t.silent {
		log.Printf("%s night turn failed: %v", t.viewer.Name, err)
		return
	}
	s.out.Printf("❌ %sの%sエラー: %v", label, verb, err)
}

func (s *Sequencer) printIntro() {
	s.out.Println(separatorWide)
	for _, line := range s.mode.banner {
		s.out.Println(line)
	}
	s.out.Println(separatorWide)
	s.out.Println("")

	if s.mode.revealRoles {
		s.out.Println("\n🎯 今回のプレイヤー構成:")
		for _, p := range s.state.Players {
			s.out.Printf("👤 %sさん", p.Name)
		}
		s.out.Println("")
		s.out.Println("🔍 役職は完全にランダム配置されました！")
		s.out.Println(roleComposition(s.state.Players))
		s.out.Println("")
		return
	}

	s.out.Println("\n🎯 役職配置:")
	for _, role := range roleOrder {
		var names []string
		for _, p := range s.state.playersWithRole(role) {
			names = append(names, fmt.Sprintf("%s(%s)", p.Name, s.cast[p.Name].Label))
		}
		if len(names) > 0 {
			s.out.Printf("%s: %s", role.DisplayName(), strings.Join(names, ", "))
		}
	}
	s.out.Println("")
}

func (s *Sequencer) printSummary() {
	s.out.Println("\n🎉 人狼ゲーム完了！")
	s.out.Printf("📊 総日数: %d日", s.state.DayCount)
	if s.mode.closing != "" {
		s.out.Println(s.mode.closing)
	}
	if !s.mode.revealRoles {
		return
	}
	s.out.Println("\n🔍 答え合わせ:")
	for _, role := range roleOrder {
		var names []string
		for _, p := range s.state.playersWithRole(role) {
			names = append(names, p.Name+"さん")
		}
		if len(names) > 0 {
			s.out.Printf("%s: %s", role.DisplayName(), strings.Join(names, ", "))
		}
	}
}

// roleComposition renders e.g. "🐺 人狼2名 | 🃏 狂人1名 | ...".
func roleComposition(players []Player) string {
	var parts []string
	for _, role := range roleOrder {
		n := 0
		for _, p := range players {
			if p.Role == role {
				n++
			}
		}
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s%d名", role.DisplayName(), n))
		}
	}
	return strings.Join(parts, " | ")
}
