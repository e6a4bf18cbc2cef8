package game

// NoSeat marks the absence of a seat (no raiser yet, nobody left to act)
const NoSeat = -1

// NextEligibleSeat returns the first seat after from, wrapping around the
// table, whose player can still act. It returns NoSeat when nobody can.
func NextEligibleSeat(players []*Player, from int) int {
	return nextSeat(players, from, (*Player).CanAct)
}

// nextInHandSeat returns the next seat after from that was dealt in
func nextInHandSeat(players []*Player, from int) int {
	return nextSeat(players, from, func(p *Player) bool { return p.InHand })
}

func nextSeat(players []*Player, from int, ok func(*Player) bool) int {
	n := len(players)
	if n == 0 {
		return NoSeat
	}
	for i := 1; i <= n; i++ {
		pos := ((from+i)%n + n) % n
		if ok(players[pos]) {
			return pos
		}
	}
	return NoSeat
}

// SeatOrder lists the seats dealt into the hand clockwise, starting with the
// seat immediately after the dealer. It decides odd-chip priority.
func SeatOrder(players []*Player, dealer int) []int {
	order := make([]int, 0, len(players))
	for i := 1; i <= len(players); i++ {
		pos := (dealer + i) % len(players)
		if players[pos].InHand {
			order = append(order, pos)
		}
	}
	return order
}

func countPlayers(players []*Player, ok func(*Player) bool) int {
	n := 0
	for _, p := range players {
		if ok(p) {
			n++
		}
	}
	return n
}
