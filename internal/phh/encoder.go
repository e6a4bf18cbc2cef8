package phh

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdemcore/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSession writes hands as a PHHS session, one numbered table per hand.
func EncodeSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return nil
}

// FormatAction converts a player action to its PHH string. pos is the
// zero-based PHH position and betTo the player's street total afterwards.
// It returns false for blind posts, which are captured in blinds_or_straddles.
func FormatAction(pos int, kind game.ActionKind, betTo int) (string, bool) {
	player := fmt.Sprintf("p%d", pos+1)
	switch kind {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Bet, game.Raise, game.AllIn:
		if betTo <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, betTo), true
	case game.PostSmallBlind, game.PostBigBlind:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", player, kind, betTo), true
	}
}
