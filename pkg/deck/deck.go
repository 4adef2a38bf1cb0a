package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"math/rand"
	"time"
)

// ErrDeckExhausted is an error when a deal is attempted and there are not enough undealt cards
var ErrDeckExhausted = errors.New("not enough cards left in the deck")

// Deck represents a playing deck with undealt, dealt, and discarded piles.
// The three piles always partition the 52-card universe.
type Deck struct {
	Cards     []*Card `json:"cards"`
	dealt     []*Card
	discarded []*Card
	seed      int64
	rng       *rand.Rand
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		seed: -1,
	}

	d.buildDeck()
	return d
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (d *Deck) SetSeed(seed int64) {
	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, 52)
	for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
		for rank := 2; rank <= 14; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
	d.dealt = nil
	d.discarded = nil
}

// Shuffle will shuffle the undealt pile
// You can manually specify the seed, or you can leave it as 0 for a time-based seed.
func (d *Deck) Shuffle(seed int64) {
	if seed < 0 {
		panic("seed cannot be < 0")
	}

	if seed == 0 {
		d.ensureRNG()
	} else {
		d.SetSeed(seed)
	}

	d.shuffleCards(d.Cards)
}

func (d *Deck) shuffleCards(cards []*Card) {
	for j := len(cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Seed returns the seed used to shuffle the deck
func (d *Deck) Seed() int64 {
	return d.seed
}

// HashCode returns a SHA1 hash code of the undealt pile.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Deal removes the top n cards from the undealt pile and moves them to the dealt pile.
// If fewer than n cards remain, ErrDeckExhausted is returned and no cards move.
func (d *Deck) Deal(n int) ([]*Card, error) {
	if n < 0 {
		panic("cannot deal a negative number of cards")
	}

	if n > len(d.Cards) {
		return nil, ErrDeckExhausted
	}

	cards := d.Cards[:n]
	d.Cards = d.Cards[n:]
	d.dealt = append(d.dealt, cards...)

	return cards, nil
}

// Draw will deal the next card
func (d *Deck) Draw() (*Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return nil, err
	}

	return cards[0], nil
}

// AddDiscarded moves previously dealt cards into the discard pile
func (d *Deck) AddDiscarded(cards ...*Card) {
	for _, card := range cards {
		for i, dealt := range d.dealt {
			if dealt.Equal(card) {
				d.dealt = append(d.dealt[:i], d.dealt[i+1:]...)
				break
			}
		}

		d.discarded = append(d.discarded, card)
	}
}

// ReshuffleDiscards shuffles the discard pile back into the undealt pile
func (d *Deck) ReshuffleDiscards() {
	d.Cards = append(d.Cards, d.discarded...)
	d.discarded = nil
	d.ensureRNG()
	d.shuffleCards(d.Cards)
}

// ReshuffleAll restores the full 52-card universe into the undealt pile and shuffles it
func (d *Deck) ReshuffleAll() {
	d.Cards = append(d.Cards, d.dealt...)
	d.Cards = append(d.Cards, d.discarded...)
	d.dealt = nil
	d.discarded = nil
	d.ensureRNG()
	d.shuffleCards(d.Cards)
}

func (d *Deck) ensureRNG() {
	if d.rng == nil {
		d.SetSeed(time.Now().UnixNano())
	}
}

// NeedsReshuffle returns true when fewer than want cards remain undealt
func (d *Deck) NeedsReshuffle(want int) bool {
	return len(d.Cards) < want
}

// CanDraw returns true if there are {want} cards left in the undealt pile
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// Remaining returns the number of cards left in the undealt pile
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// DealtCount returns the number of cards in the dealt pile
func (d *Deck) DealtCount() int {
	return len(d.dealt)
}

// DiscardedCount returns the number of cards in the discard pile
func (d *Deck) DiscardedCount() int {
	return len(d.discarded)
}
