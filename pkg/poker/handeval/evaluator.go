package handeval

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"drawpoker-server/pkg/deck"
)

// HandSize is the number of cards in a draw poker hand
const HandSize = 5

// ErrInvalidHand is an error when evaluation is attempted on anything other than five unique cards
var ErrInvalidHand = errors.New("hand must contain exactly five unique cards")

// Evaluation is the result of scoring a five-card hand
type Evaluation struct {
	Category    Category `json:"category"`
	Tiebreakers []int    `json:"tiebreakers"`
	Description string   `json:"description"`
}

// Evaluate scores a five-card hand.
// The function is pure: it never mutates the input and the same cards always
// produce the same result.
func Evaluate(cards deck.Hand) (*Evaluation, error) {
	if len(cards) != HandSize {
		return nil, ErrInvalidHand
	}

	seen := make(map[deck.Card]bool, HandSize)
	for _, card := range cards {
		if seen[*card] {
			return nil, ErrInvalidHand
		}
		seen[*card] = true
	}

	ranks := make([]int, HandSize)
	rankCounts := make(map[int]int)
	isFlush := true
	for i, card := range cards {
		ranks[i] = card.Rank
		rankCounts[card.Rank]++
		if card.Suit != cards[0].Suit {
			isFlush = false
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	isStraight := len(rankCounts) == HandSize && ranks[0]-ranks[4] == 4

	// the wheel: ace plays low and ranks below the 6-high straight
	if !isStraight && len(rankCounts) == HandSize && ranks[0] == deck.Ace && ranks[1] == 5 && ranks[4] == 2 {
		isStraight = true
		ranks = []int{5, 4, 3, 2, deck.LowAce}
	}

	groups := groupByCount(rankCounts)

	switch {
	case isFlush && isStraight:
		if ranks[0] == deck.Ace {
			return &Evaluation{RoyalFlush, ranks, "Royal flush"}, nil
		}
		return &Evaluation{StraightFlush, ranks, fmt.Sprintf("Straight flush, %s high", deck.RankName(ranks[0]))}, nil

	case groups[0].count == 4:
		quad, kicker := groups[0].rank, groups[1].rank
		return &Evaluation{FourOfAKind, []int{quad, kicker}, fmt.Sprintf("Four of a kind, %ss", deck.RankName(quad))}, nil

	case groups[0].count == 3 && groups[1].count == 2:
		trips, pair := groups[0].rank, groups[1].rank
		return &Evaluation{
			FullHouse,
			[]int{trips, pair},
			fmt.Sprintf("Full house, %ss over %ss", deck.RankName(trips), deck.RankName(pair)),
		}, nil

	case isFlush:
		return &Evaluation{Flush, ranks, fmt.Sprintf("Flush, %s high", deck.RankName(ranks[0]))}, nil

	case isStraight:
		return &Evaluation{Straight, ranks, fmt.Sprintf("Straight, %s high", deck.RankName(ranks[0]))}, nil

	case groups[0].count == 3:
		trips := groups[0].rank
		return &Evaluation{
			ThreeOfAKind,
			append([]int{trips}, kickers(ranks, trips)...),
			fmt.Sprintf("Three of a kind, %ss", deck.RankName(trips)),
		}, nil

	case groups[0].count == 2 && groups[1].count == 2:
		high, low, kicker := groups[0].rank, groups[1].rank, groups[2].rank
		return &Evaluation{
			TwoPair,
			[]int{high, low, kicker},
			fmt.Sprintf("Two pair, %ss and %ss", deck.RankName(high), deck.RankName(low)),
		}, nil

	case groups[0].count == 2:
		pair := groups[0].rank
		return &Evaluation{
			OnePair,
			append([]int{pair}, kickers(ranks, pair)...),
			fmt.Sprintf("Pair of %ss", deck.RankName(pair)),
		}, nil
	}

	return &Evaluation{HighCard, ranks, fmt.Sprintf("%s high", deck.RankName(ranks[0]))}, nil
}

// Compare returns a negative number if a ranks below b, zero if they are equal,
// and a positive number if a ranks above b
func Compare(a, b *Evaluation) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}

	for i := range a.Tiebreakers {
		if i >= len(b.Tiebreakers) {
			break
		}

		if a.Tiebreakers[i] != b.Tiebreakers[i] {
			return a.Tiebreakers[i] - b.Tiebreakers[i]
		}
	}

	return 0
}

// Strength collapses the evaluation into a single comparable integer.
// Tiebreaker values never reach 15, so base-15 positions cannot collide.
func (e *Evaluation) Strength() int {
	strength := float64(e.Category) * math.Pow(15, HandSize)

	padded := make([]int, HandSize)
	copy(padded, e.Tiebreakers)
	for i := 0; i < HandSize; i++ {
		strength += float64(padded[i]) * math.Pow(15, float64(HandSize-1-i))
	}

	return int(strength)
}

type rankGroup struct {
	rank  int
	count int
}

// groupByCount orders ranks by occurrence count descending, then rank descending
func groupByCount(rankCounts map[int]int) []rankGroup {
	groups := make([]rankGroup, 0, len(rankCounts))
	for rank, count := range rankCounts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	return groups
}

// kickers returns the ranks not part of the made hand, highest first
func kickers(sortedRanks []int, exclude ...int) []int {
	k := make([]int, 0, len(sortedRanks))

Outer:
	for _, rank := range sortedRanks {
		for _, ex := range exclude {
			if rank == ex {
				continue Outer
			}
		}
		k = append(k, rank)
	}

	return k
}
