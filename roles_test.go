package main

import (
	"errors"
	"fmt"
	"testing"
	"testing/quick"
)

func TestBuildRolePool(t *testing.T) {
	pool := buildRolePool(standardRoleCounts())
	want := []Role{
		RoleWerewolf, RoleWerewolf, RoleMadman, RoleFortuneTeller, RoleKnight,
		RoleCitizen, RoleCitizen, RoleCitizen, RoleCitizen,
	}
	if len(pool) != len(want) {
		t.Fatalf("pool size = %d, want %d", len(pool), len(want))
	}
	for i := range want {
		if pool[i] != want[i] {
			t.Errorf("pool[%d] = %s, want %s", i, pool[i], want[i])
		}
	}
}

func TestRoleCountsTotalIgnoresUnknownRoles(t *testing.T) {
	counts := RoleCounts{RoleWerewolf: 2, Role("vampire"): 3, RoleCitizen: -1}
	if got := counts.Total(); got != 2 {
		t.Errorf("Total() = %d, want 2", got)
	}
	if got := len(buildRolePool(counts)); got != 2 {
		t.Errorf("pool size = %d, want 2", got)
	}
}

// Every seed must produce a bijection: distinct names from the pool, and the
// exact role multiset.
func TestAssignIsBijection(t *testing.T) {
	f := func(seed uint64) bool {
		counts := standardRoleCounts()
		players, err := newRoleAssigner(seed).Assign(candidateNames, counts)
		if err != nil {
			t.Logf("seed %d: %v", seed, err)
			return false
		}
		if len(players) != counts.Total() {
			return false
		}

		inPool := make(map[string]bool)
		for _, n := range candidateNames {
			inPool[n] = true
		}
		seen := make(map[string]bool)
		got := make(RoleCounts)
		for _, p := range players {
			if !inPool[p.Name] || seen[p.Name] || !p.Alive {
				return false
			}
			seen[p.Name] = true
			got[p.Role]++
		}
		for _, role := range roleOrder {
			if got[role] != counts[role] {
				return false
			}
		}
		return true
	}

	if err := quick.Check(f, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

func TestAssignPoolTooSmall(t *testing.T) {
	_, err := newRoleAssigner(1).Assign(candidateNames[:8], standardRoleCounts())
	if !errors.Is(err, errPoolTooSmall) {
		t.Errorf("expected errPoolTooSmall, got %v", err)
	}
}

func TestAssignExactPool(t *testing.T) {
	players, err := newRoleAssigner(7).Assign(candidateNames[:9], standardRoleCounts())
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(players) != 9 {
		t.Errorf("expected all 9 candidates seated, got %d", len(players))
	}
}

func TestAssignRejectsDuplicateNames(t *testing.T) {
	pool := append([]string{"たろう"}, candidateNames...)
	_, err := newRoleAssigner(1).Assign(pool, standardRoleCounts())
	if !errors.Is(err, errDuplicateName) {
		t.Errorf("expected errDuplicateName, got %v", err)
	}
}

func TestSameSeedSameSeating(t *testing.T) {
	a, err := newRoleAssigner(99).Assign(candidateNames, standardRoleCounts())
	if err != nil {
		t.Fatal(err)
	}
	b, err := newRoleAssigner(99).Assign(candidateNames, standardRoleCounts())
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Errorf("same seed gave different seatings:\n%v\n%v", a, b)
	}
}

// Fresh seeds must not keep producing the same seating.
func TestFreshSeedsVary(t *testing.T) {
	seatings := make(map[string]bool)
	for i := 0; i < 10; i++ {
		seed, err := newSeed()
		if err != nil {
			t.Fatalf("newSeed: %v", err)
		}
		players, err := newRoleAssigner(seed).Assign(candidateNames, standardRoleCounts())
		if err != nil {
			t.Fatal(err)
		}
		seatings[fmt.Sprint(players)] = true
	}
	if len(seatings) < 2 {
		t.Errorf("10 fresh seeds produced %d distinct seatings", len(seatings))
	}
}

func TestSampleNamesLeavesPoolUntouched(t *testing.T) {
	pool := append([]string(nil), candidateNames...)
	if _, err := newRoleAssigner(3).sampleNames(pool, 9); err != nil {
		t.Fatal(err)
	}
	for i := range pool {
		if pool[i] != candidateNames[i] {
			t.Fatalf("pool modified at %d: %s", i, pool[i])
		}
	}
}

func TestOpenModePlayersMatchStandardCounts(t *testing.T) {
	got := make(RoleCounts)
	for _, p := range openModePlayers() {
		got[p.Role]++
	}
	for role, n := range standardRoleCounts() {
		if got[role] != n {
			t.Errorf("%s: got %d, want %d", role, got[role], n)
		}
	}
}
