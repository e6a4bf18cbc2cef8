package game

import (
	"github.com/lox/holdemcore/poker"
)

// Snapshot is a serializable view of a hand from one player's seat
type Snapshot struct {
	HandID          string        `json:"hand_id"`
	Phase           string        `json:"phase"`
	Board           []string      `json:"community_cards"`
	Players         []PlayerView  `json:"players"`
	Pot             int           `json:"pot"`
	Pots            []PotView     `json:"pots"`
	CurrentBet      int           `json:"current_bet"`
	MinRaiseTo      int           `json:"min_raise_to"`
	CurrentPlayerID string        `json:"current_player_id,omitempty"`
	DealerSeat      int           `json:"dealer_seat"`
	SmallBlind      int           `json:"small_blind"`
	BigBlind        int           `json:"big_blind"`
	LegalActions    []ActionView  `json:"legal_actions,omitempty"`
	Winners         []WinnerView  `json:"winners,omitempty"`
	Actions         []ActionEntry `json:"action_history"`
}

// PlayerView is a player as seen by the snapshot's viewer
type PlayerView struct {
	ID           string   `json:"player_id"`
	Name         string   `json:"name"`
	Seat         int      `json:"seat"`
	Stack        int      `json:"stack"`
	Bet          int      `json:"current_bet"`
	TotalBet     int      `json:"total_bet"`
	HoleCards    []string `json:"hole_cards,omitempty"`
	InHand       bool     `json:"in_hand"`
	Folded       bool     `json:"folded"`
	AllIn        bool     `json:"all_in"`
	IsDealer     bool     `json:"is_dealer"`
	IsSmallBlind bool     `json:"is_small_blind"`
	IsBigBlind   bool     `json:"is_big_blind"`
}

// PotView is a pot with its eligible players named
type PotView struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible_players"`
}

// ActionView is a legal action offered to the viewer
type ActionView struct {
	Action string `json:"action"`
	Min    int    `json:"min,omitempty"`
	Max    int    `json:"max,omitempty"`
}

// WinnerView is a winner of a finished hand
type WinnerView struct {
	PlayerID string   `json:"player_id"`
	Amount   int      `json:"amount"`
	Hand     string   `json:"hand,omitempty"`
	Cards    []string `json:"cards,omitempty"`
}

// ActionEntry is one line of the public action history
type ActionEntry struct {
	PlayerID string `json:"player_id"`
	Street   string `json:"street"`
	Action   string `json:"action"`
	Amount   int    `json:"amount"`
	BetTo    int    `json:"bet_to"`
	AllIn    bool   `json:"all_in,omitempty"`
}

// Snapshot returns the hand as viewerID may see it. Hole cards are visible
// to their owner, and to everyone for live players once the hand reached a
// showdown. An empty viewerID sees only public information.
func (h *HandState) Snapshot(viewerID string) Snapshot {
	s := Snapshot{
		HandID:     h.HandID,
		Phase:      h.Phase.String(),
		Board:      cardStrings(h.Board),
		Pot:        h.TotalPot(),
		CurrentBet: h.Betting.CurrentBet,
		DealerSeat: h.Dealer,
		SmallBlind: h.SmallBlind,
		BigBlind:   h.BigBlind,
		Players:    make([]PlayerView, len(h.Players)),
		Actions:    make([]ActionEntry, len(h.Actions)),
	}
	if h.Phase.IsStreet() {
		s.MinRaiseTo = h.Betting.MinRaiseTo()
	}

	for i, p := range h.Players {
		view := PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Seat:         p.Seat,
			Stack:        p.Stack,
			Bet:          p.Bet,
			TotalBet:     p.TotalBet,
			InHand:       p.InHand,
			Folded:       p.Folded,
			AllIn:        p.AllIn,
			IsDealer:     p.Dealer,
			IsSmallBlind: p.SmallBlind,
			IsBigBlind:   p.BigBlind,
		}
		if h.canSee(viewerID, p) {
			view.HoleCards = cardStrings(p.HoleCards)
		}
		s.Players[i] = view
	}

	for _, pot := range h.Pots {
		pv := PotView{Amount: pot.Amount, Eligible: make([]string, len(pot.Eligible))}
		for i, seat := range pot.Eligible {
			pv.Eligible[i] = h.Players[seat].ID
		}
		s.Pots = append(s.Pots, pv)
	}

	if cur := h.CurrentPlayer(); cur != nil {
		s.CurrentPlayerID = cur.ID
		if viewerID == cur.ID {
			for _, va := range h.Betting.LegalActions(h.Players, cur) {
				s.LegalActions = append(s.LegalActions, ActionView{Action: va.Kind.String(), Min: va.Min, Max: va.Max})
			}
		}
	}

	for _, w := range h.Winners {
		wv := WinnerView{PlayerID: w.PlayerID, Amount: w.Amount}
		if h.Showdown {
			wv.Hand = w.Hand.String()
			wv.Cards = cardStrings(w.BestFive)
		}
		s.Winners = append(s.Winners, wv)
	}

	for i, a := range h.Actions {
		s.Actions[i] = ActionEntry{
			PlayerID: a.PlayerID,
			Street:   a.Street.String(),
			Action:   a.Kind.String(),
			Amount:   a.Amount,
			BetTo:    a.BetTo,
			AllIn:    a.AllIn,
		}
	}
	return s
}

func (h *HandState) canSee(viewerID string, p *Player) bool {
	switch {
	case len(p.HoleCards) == 0:
		return false
	case viewerID != "" && viewerID == p.ID:
		return true
	default:
		return h.Showdown && p.Live()
	}
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
