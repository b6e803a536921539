package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"
)

// runDeps are the collaborators shared by every run mode.
type runDeps struct {
	responder Responder
	store     *Store
	prompts   *Prompts
	console   io.Writer
	extra     []io.Writer // additional transcript sinks, e.g. the spectator hub
}

// setupGame seats the players for mode and builds their personas.
func setupGame(mode gameMode, seed uint64) (*GameState, map[string]Persona, error) {
	assigner := newRoleAssigner(seed)
	switch mode.name {
	case modeOpen:
		return newGameState(openModePlayers()), openCast(), nil
	case modeAnonymous:
		players, err := assigner.Assign(candidateNames, standardRoleCounts())
		if err != nil {
			return nil, nil, fmt.Errorf("assign roles: %w", err)
		}
		return newGameState(players), anonymousCast(players, assigner.rng), nil
	}
	return nil, nil, fmt.Errorf("no game mode %q", mode.name)
}

// runGame plays one open or anonymous game end to end.
func runGame(ctx context.Context, cfg AppConfig, mode gameMode, deps runDeps) error {
	seed, err := newSeed()
	if err != nil {
		return err
	}
	state, cast, err := setupGame(mode, seed)
	if err != nil {
		return err
	}

	out, err := NewGameLogger(cfg.LogDir, mode.logPrefix, mode.title, deps.console, deps.extra...)
	if err != nil {
		return err
	}
	defer out.Close()

	runID, err := deps.store.createRun(mode.name)
	if err != nil {
		return err
	}
	if err := deps.store.addPlayers(runID, state.Players); err != nil {
		return err
	}
	log.Printf("Game %s started: mode=%s players=%d days=%d", runID, mode.name, len(state.Players), cfg.MaxDays)

	seq := &Sequencer{
		state:       state,
		mode:        mode,
		cast:        cast,
		responder:   deps.responder,
		out:         out,
		store:       deps.store,
		runID:       runID,
		prompts:     deps.prompts,
		maxDays:     cfg.MaxDays,
		turnTimeout: time.Duration(cfg.TurnTimeout) * time.Second,
	}
	if err := seq.Run(ctx); err != nil {
		return err
	}
	log.Printf("Game %s complete, transcript at %s", runID, out.Path())
	return nil
}

// runRoundtable runs the career discussion.
func runRoundtable(ctx context.Context, cfg AppConfig, deps runDeps) error {
	out, err := NewGameLogger(cfg.LogDir, modeRoundtable, "🤖 AI時代のデベロッパーキャリア ディスカッション", deps.console, deps.extra...)
	if err != nil {
		return err
	}
	defer out.Close()

	runID, err := deps.store.createRun(modeRoundtable)
	if err != nil {
		return err
	}
	rt := &Roundtable{
		cast:      roundtableCast(),
		responder: deps.responder,
		out:       out,
		store:     deps.store,
		runID:     runID,
		prompts:   deps.prompts,
	}
	return rt.Run(ctx)
}
