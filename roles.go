package main

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Role is a player's secret role.
type Role string

const (
	RoleWerewolf      Role = "werewolf"
	RoleMadman        Role = "madman"
	RoleFortuneTeller Role = "fortune_teller"
	RoleKnight        Role = "knight"
	RoleCitizen       Role = "citizen"
)

// roleOrder fixes the expansion order of a role multiset.
var roleOrder = []Role{RoleWerewolf, RoleMadman, RoleFortuneTeller, RoleKnight, RoleCitizen}

var roleDisplayNames = map[Role]string{
	RoleWerewolf:      "🐺 人狼",
	RoleMadman:        "🃏 狂人",
	RoleFortuneTeller: "🔮 占い師",
	RoleKnight:        "🛡️ 騎士",
	RoleCitizen:       "👥 市民",
}

// DisplayName is the Japanese label used in transcripts.
func (r Role) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// Team returns "werewolf" for roles that win with the wolves, "villager" otherwise.
func (r Role) Team() string {
	if r == RoleWerewolf || r == RoleMadman {
		return "werewolf"
	}
	return "villager"
}

// RoleCounts is a multiset of roles.
type RoleCounts map[Role]int

// Total is the number of players the multiset needs.
// Unknown roles and non-positive counts contribute nothing.
func (c RoleCounts) Total() int {
	n := 0
	for _, role := range roleOrder {
		if count := c[role]; count > 0 {
			n += count
		}
	}
	return n
}

// standardRoleCounts is the nine-player setup.
func standardRoleCounts() RoleCounts {
	return RoleCounts{
		RoleWerewolf:      2,
		RoleMadman:        1,
		RoleFortuneTeller: 1,
		RoleKnight:        1,
		RoleCitizen:       4,
	}
}

// buildRolePool expands counts into a flat slice in roleOrder.
func buildRolePool(counts RoleCounts) []Role {
	pool := make([]Role, 0, counts.Total())
	for _, role := range roleOrder {
		for i := 0; i < counts[role]; i++ {
			pool = append(pool, role)
		}
	}
	return pool
}

// candidateNames is the name pool for anonymous games.
var candidateNames = []string{
	"たろう", "はなこ", "けんじ", "あやか", "ひろし",
	"みさき", "だいすけ", "ゆり", "まさき", "あい",
	"りょうた", "まお", "しゅん", "みき", "かずや",
	"さくら", "とものり", "みゆき", "こうた", "なな",
}

var (
	errPoolTooSmall  = errors.New("candidate pool smaller than role count")
	errDuplicateName = errors.New("duplicate candidate name")
)

// newSeed draws a fresh seed from the OS entropy source.
func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// roleAssigner deals names and roles from a seeded PRNG.
type roleAssigner struct {
	rng *rand.Rand
}

func newRoleAssigner(seed uint64) *roleAssigner {
	return &roleAssigner{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// shuffleRoles shuffles the role pool in place (Fisher-Yates).
func (a *roleAssigner) shuffleRoles(roles []Role) {
	for i := len(roles) - 1; i > 0; i-- {
		j := a.rng.IntN(i + 1)
		roles[i], roles[j] = roles[j], roles[i]
	}
}

// sampleNames picks n distinct names from pool without replacement.
// pool is not modified.
func (a *roleAssigner) sampleNames(pool []string, n int) ([]string, error) {
	if n > len(pool) {
		return nil, fmt.Errorf("%w: need %d, have %d", errPoolTooSmall, n, len(pool))
	}
	names := append([]string(nil), pool...)
	for i := 0; i < n; i++ {
		j := i + a.rng.IntN(len(names)-i)
		names[i], names[j] = names[j], names[i]
	}
	return names[:n], nil
}

// Assign draws counts.Total() names from candidates and deals one role to each.
// Every returned player is alive.
func (a *roleAssigner) Assign(candidates []string, counts RoleCounts) ([]Player, error) {
	seen := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", errDuplicateName, name)
		}
		seen[name] = true
	}

	names, err := a.sampleNames(candidates, counts.Total())
	if err != nil {
		return nil, err
	}
	roles := buildRolePool(counts)
	a.shuffleRoles(roles)

	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{Name: name, Role: roles[i], Alive: true}
	}
	return players, nil
}

// openModePlayers is the fixed cast of the open variant, one identifier per role slot.
func openModePlayers() []Player {
	return []Player{
		{Name: "werewolf1", Role: RoleWerewolf, Alive: true},
		{Name: "werewolf2", Role: RoleWerewolf, Alive: true},
		{Name: "madman", Role: RoleMadman, Alive: true},
		{Name: "fortune_teller", Role: RoleFortuneTeller, Alive: true},
		{Name: "knight", Role: RoleKnight, Alive: true},
		{Name: "citizen1", Role: RoleCitizen, Alive: true},
		{Name: "citizen2", Role: RoleCitizen, Alive: true},
		{Name: "citizen3", Role: RoleCitizen, Alive: true},
		{Name: "citizen4", Role: RoleCitizen, Alive: true},
	}
}
