package phh

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/poker"
)

const defaultVariant = "NT"

// Options controls how a finished hand is recorded
type Options struct {
	Table            string
	Variant          string
	IncludeHoleCards bool // otherwise dealt cards are masked as ????
	Timestamp        time.Time
}

// FromHand records a finished hand. Only players dealt into the hand are
// listed, in PHH position order starting with the small blind.
func FromHand(h *game.HandState, opts Options) (*HandHistory, error) {
	if !h.IsFinished() {
		return nil, fmt.Errorf("phh: hand %s is %s, not finished", h.HandID, h.Phase)
	}
	if opts.Variant == "" {
		opts.Variant = defaultVariant
	}

	order := positionOrder(h)
	n := len(order)
	pos := make(map[int]int, n)

	hist := &HandHistory{
		Variant:           opts.Variant,
		Table:             opts.Table,
		SeatCount:         len(h.Players),
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            h.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Actions:           make([]string, 0, n+len(h.Actions)+8),
		Players:           make([]string, n),
		HandID:            h.HandID,
		Board:             make([]string, len(h.Board)),
		Timestamp:         opts.Timestamp,
	}

	for i, seat := range order {
		p := h.Players[seat]
		pos[seat] = i
		hist.Seats[i] = seat + 1
		hist.StartingStacks[i] = p.StartStack
		hist.FinishingStacks[i] = p.Stack
		hist.Players[i] = p.Name
		hist.Actions = append(hist.Actions, dealAction(i, p.HoleCards, opts.IncludeHoleCards))
	}
	for _, w := range h.Winners {
		hist.Winnings[pos[w.Seat]] = w.Amount
	}
	for i, c := range h.Board {
		hist.Board[i] = c.String()
	}

	street, level := game.Preflop, 0
	for _, a := range h.Actions {
		if a.Street != street {
			hist.Actions = appendBoard(hist.Actions, h.Board, street, a.Street)
			street, level = a.Street, 0
		}

		kind := a.Kind
		switch kind {
		case game.PostSmallBlind, game.PostBigBlind:
			hist.BlindsOrStraddles[pos[a.Seat]] = a.Amount
		case game.AllIn:
			// An all-in that does not raise the level is a call.
			if a.BetTo <= level {
				kind = game.Call
			}
		}
		level = max(level, a.BetTo)

		if formatted, ok := FormatAction(pos[a.Seat], kind, a.BetTo); ok {
			hist.Actions = append(hist.Actions, formatted)
		}
	}
	hist.Actions = appendBoard(hist.Actions, h.Board, street, game.River)

	if h.Showdown {
		for i, seat := range order {
			if p := h.Players[seat]; p.Live() {
				hist.Actions = append(hist.Actions, fmt.Sprintf("p%d sm %s", i+1, joinCards(p.HoleCards)))
			}
		}
	}

	populateTimeFields(hist)
	return hist, nil
}

// positionOrder lists the dealt-in seats starting with the small blind
func positionOrder(h *game.HandState) []int {
	order := game.SeatOrder(h.Players, h.Dealer)
	if i := slices.Index(order, h.SmallBlindSeat); i > 0 {
		order = slices.Concat(order[i:], order[:i])
	}
	return order
}

func dealAction(pos int, holeCards []poker.Card, include bool) string {
	cards := "????"
	if include && len(holeCards) == 2 {
		cards = joinCards(holeCards)
	}
	return fmt.Sprintf("d dh p%d %s", pos+1, cards)
}

// appendBoard emits the board deals for every street after from up to and
// including to, stopping at the first street that was never dealt.
func appendBoard(actions []string, board []poker.Card, from, to game.Phase) []string {
	for street := from + 1; street <= to; street++ {
		cards := streetCards(board, street)
		if len(cards) == 0 {
			break
		}
		actions = append(actions, "d db "+joinCards(cards))
	}
	return actions
}

func streetCards(board []poker.Card, street game.Phase) []poker.Card {
	switch {
	case street == game.Flop && len(board) >= 3:
		return board[:3]
	case street == game.Turn && len(board) >= 4:
		return board[3:4]
	case street == game.River && len(board) >= 5:
		return board[4:5]
	}
	return nil
}

func joinCards(cards []poker.Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func populateTimeFields(hist *HandHistory) {
	t := hist.Timestamp
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	hist.Time = utc.Format("15:04:05")
	hist.TimeZone = "UTC"
	hist.Day = utc.Day()
	hist.Month = int(utc.Month())
	hist.Year = utc.Year()
}
