package phh_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/phh"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/poker"
)

func players(stacks ...int) []game.PlayerInfo {
	names := []string{"alice", "bob", "carol"}
	out := make([]game.PlayerInfo, len(stacks))
	for i, s := range stacks {
		out[i] = game.PlayerInfo{ID: names[i], Stack: s}
	}
	return out
}

func play(t *testing.T, h *game.HandState, steps ...any) *game.HandState {
	t.Helper()
	for i := 0; i < len(steps); i += 2 {
		next, err := h.Apply(steps[i].(string), steps[i+1].(game.Action))
		if err != nil {
			t.Fatalf("step %d: %v", i/2, err)
		}
		h = next
	}
	return h
}

func TestFromHandShowdown(t *testing.T) {
	deck, err := poker.NewStackedDeck(poker.MustParseCards("Kh Kd Qh Qd Ah Ad 2c 7s 9d 3c 8h")...)
	if err != nil {
		t.Fatal(err)
	}
	h, err := game.StartHand(nil, players(100, 300, 300), 0, 5, 10,
		game.WithDeck(deck), game.WithHandID("hand-1"))
	if err != nil {
		t.Fatal(err)
	}
	h = play(t, h,
		"alice", game.Do(game.AllIn),
		"bob", game.Do(game.AllIn),
		"carol", game.Do(game.Call),
	)

	at := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	hist, err := phh.FromHand(h, phh.Options{Table: "main", IncludeHoleCards: true, Timestamp: at})
	if err != nil {
		t.Fatalf("FromHand: %v", err)
	}

	wantActions := []string{
		"d dh p1 KhKd",
		"d dh p2 QhQd",
		"d dh p3 AhAd",
		"p3 cbr 100",
		"p1 cbr 300",
		"p2 cc",
		"d db 2c7s9d",
		"d db 3c",
		"d db 8h",
		"p1 sm KhKd",
		"p2 sm QhQd",
		"p3 sm AhAd",
	}
	if !reflect.DeepEqual(hist.Actions, wantActions) {
		t.Fatalf("actions mismatch\ngot:  %q\nwant: %q", hist.Actions, wantActions)
	}

	checks := []struct {
		name      string
		got, want any
	}{
		{"players", hist.Players, []string{"bob", "carol", "alice"}},
		{"seats", hist.Seats, []int{2, 3, 1}},
		{"blinds", hist.BlindsOrStraddles, []int{5, 10, 0}},
		{"starting", hist.StartingStacks, []int{300, 300, 100}},
		{"finishing", hist.FinishingStacks, []int{400, 0, 300}},
		{"winnings", hist.Winnings, []int{400, 0, 300}},
		{"board", hist.Board, []string{"2c", "7s", "9d", "3c", "8h"}},
		{"variant", hist.Variant, "NT"},
		{"table", hist.Table, "main"},
		{"hand", hist.HandID, "hand-1"},
		{"min bet", hist.MinBet, 10},
		{"time", hist.Time, "09:30:00"},
		{"day", hist.Day, 17},
		{"month", hist.Month, 10},
		{"year", hist.Year, 2026},
	}
	for _, c := range checks {
		if !reflect.DeepEqual(c.got, c.want) {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestFromHandFoldedOutMasksCards(t *testing.T) {
	h, err := game.StartHand(randutil.New(3), players(1000, 1000, 1000), 0, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	h = play(t, h,
		"alice", game.Do(game.Call),
		"bob", game.Do(game.Call),
		"carol", game.Do(game.Check),
		"bob", game.BetTo(20),
		"carol", game.Do(game.Fold),
		"alice", game.Do(game.Fold),
	)

	hist, err := phh.FromHand(h, phh.Options{})
	if err != nil {
		t.Fatalf("FromHand: %v", err)
	}

	wantActions := []string{
		"d dh p1 ????",
		"d dh p2 ????",
		"d dh p3 ????",
		"p3 cc",
		"p1 cc",
		"p2 cc",
		"d db " + h.Board[0].String() + h.Board[1].String() + h.Board[2].String(),
		"p1 cbr 20",
		"p2 f",
		"p3 f",
	}
	if !reflect.DeepEqual(hist.Actions, wantActions) {
		t.Fatalf("actions mismatch\ngot:  %q\nwant: %q", hist.Actions, wantActions)
	}
	if hist.Time != "" {
		t.Errorf("time should be empty without a timestamp, got %q", hist.Time)
	}
	if !reflect.DeepEqual(hist.Winnings, []int{30, 0, 0}) {
		t.Errorf("winnings: got %v", hist.Winnings)
	}
}

func TestFromHandRequiresFinishedHand(t *testing.T) {
	h, err := game.StartHand(randutil.New(3), players(1000, 1000), 0, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := phh.FromHand(h, phh.Options{}); err == nil {
		t.Fatal("expected error for an unfinished hand")
	}
}
