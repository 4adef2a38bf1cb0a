// Package potmanager turns a ledger of per-player contributions into main
// and side pots and pays them out at showdown.
package potmanager

import (
	"errors"
	"fmt"
	"sort"
)

// errors
var (
	ErrPlayerAlreadySeated = errors.New("player is already seated")
	ErrPlayerNotSeated     = errors.New("player is not seated")
)

// InvariantError is returned when the pot layers stop adding up to the
// contribution ledger. It carries the full ledger for diagnosis.
type InvariantError struct {
	Total         int
	LayerSum      int
	Contributions map[int64]int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("pot layers sum to %d but contributions total %d: %v", e.LayerSum, e.Total, e.Contributions)
}

// Layer is a single pot layer. Eligible lists the players, in seat order,
// who can win the layer at showdown.
type Layer struct {
	Amount   int     `json:"amount"`
	Eligible []int64 `json:"eligible"`
}

// Manager is a contribution ledger for a single hand
type Manager struct {
	seats         []int64
	contributions map[int64]int
	folded        map[int64]bool
}

// New returns an empty manager
func New() *Manager {
	return &Manager{
		contributions: make(map[int64]int),
		folded:        make(map[int64]bool),
	}
}

// SeatPlayer adds a player to the ledger. Seat order determines odd-chip
// distribution at showdown, so players must be seated clockwise.
func (m *Manager) SeatPlayer(id int64) error {
	if _, ok := m.contributions[id]; ok {
		return ErrPlayerAlreadySeated
	}

	m.seats = append(m.seats, id)
	m.contributions[id] = 0
	return nil
}

// Contribute records chips a player has put into the pot
func (m *Manager) Contribute(id int64, amount int) error {
	if _, ok := m.contributions[id]; !ok {
		return ErrPlayerNotSeated
	}

	if amount < 0 {
		panic("contribution cannot be negative")
	}

	m.contributions[id] += amount
	return nil
}

// MarkFolded removes a player from pot eligibility. Their chips stay in
// the pot.
func (m *Manager) MarkFolded(id int64) error {
	if _, ok := m.contributions[id]; !ok {
		return ErrPlayerNotSeated
	}

	m.folded[id] = true
	return nil
}

// Total returns the sum of all contributions
func (m *Manager) Total() int {
	total := 0
	for _, amount := range m.contributions {
		total += amount
	}

	return total
}

// Contribution returns the amount a player has put into the pot
func (m *Manager) Contribution(id int64) int {
	return m.contributions[id]
}

// Layers partitions the pot into a main pot and side pots by distinct
// contribution level. A player is eligible for every layer their
// contribution fully covers, unless they folded.
func (m *Manager) Layers() ([]Layer, error) {
	levels := make([]int, 0, len(m.contributions))
	seen := make(map[int]bool)
	for _, amount := range m.contributions {
		if amount > 0 && !seen[amount] {
			seen[amount] = true
			levels = append(levels, amount)
		}
	}
	sort.Ints(levels)

	layers := make([]Layer, 0, len(levels))
	layerSum := 0
	prev := 0
	for _, level := range levels {
		layer := Layer{}
		for _, id := range m.seats {
			contribution := m.contributions[id]
			if contribution <= prev {
				continue
			}

			slice := contribution - prev
			if slice > level-prev {
				slice = level - prev
			}
			layer.Amount += slice

			if contribution >= level && !m.folded[id] {
				layer.Eligible = append(layer.Eligible, id)
			}
		}

		layerSum += layer.Amount
		layers = append(layers, layer)
		prev = level
	}

	if total := m.Total(); layerSum != total {
		contributions := make(map[int64]int, len(m.contributions))
		for id, amount := range m.contributions {
			contributions[id] = amount
		}

		return nil, &InvariantError{
			Total:         total,
			LayerSum:      layerSum,
			Contributions: contributions,
		}
	}

	return layers, nil
}

// Award pays out every layer to its best eligible hand and returns the
// payout per player. strengths maps each showdown player to a comparable
// hand strength. A layer nobody can win, because its only contributors
// folded, rolls into the next lower layer. When a layer splits unevenly,
// the odd chips go to the first winner clockwise from the dealer.
func (m *Manager) Award(strengths map[int64]int, dealerIndex int) (map[int64]int, error) {
	layers, err := m.Layers()
	if err != nil {
		return nil, err
	}

	payouts := make(map[int64]int)
	carry := 0
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		layer.Amount += carry
		carry = 0

		winners := m.layerWinners(layer, strengths)
		if len(winners) == 0 {
			if i == 0 {
				return nil, fmt.Errorf("no eligible winner for pot layer of %d", layer.Amount)
			}

			carry = layer.Amount
			continue
		}

		share := layer.Amount / len(winners)
		remainder := layer.Amount % len(winners)
		for _, id := range winners {
			payouts[id] += share
		}

		if remainder > 0 {
			payouts[m.firstFromDealer(winners, dealerIndex)] += remainder
		}
	}

	return payouts, nil
}

// layerWinners returns the eligible players holding the best hand, in
// seat order
func (m *Manager) layerWinners(layer Layer, strengths map[int64]int) []int64 {
	best := 0
	var winners []int64
	for _, id := range layer.Eligible {
		strength, ok := strengths[id]
		if !ok {
			continue
		}

		if winners == nil || strength > best {
			best = strength
			winners = []int64{id}
		} else if strength == best {
			winners = append(winners, id)
		}
	}

	return winners
}

// firstFromDealer returns the winner seated closest to the dealer's left
func (m *Manager) firstFromDealer(winners []int64, dealerIndex int) int64 {
	isWinner := make(map[int64]bool, len(winners))
	for _, id := range winners {
		isWinner[id] = true
	}

	n := len(m.seats)
	for i := 1; i <= n; i++ {
		id := m.seats[(dealerIndex+i)%n]
		if isWinner[id] {
			return id
		}
	}

	return winners[0]
}
