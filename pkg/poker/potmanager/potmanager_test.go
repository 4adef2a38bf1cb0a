package potmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seated(t *testing.T, contributions ...int) *Manager {
	t.Helper()

	m := New()
	for i, amount := range contributions {
		id := int64(i + 1)
		assert.NoError(t, m.SeatPlayer(id))
		assert.NoError(t, m.Contribute(id, amount))
	}

	return m
}

func TestManager_SeatPlayer(t *testing.T) {
	a := assert.New(t)

	m := New()
	a.NoError(m.SeatPlayer(1))
	a.Equal(ErrPlayerAlreadySeated, m.SeatPlayer(1))
	a.Equal(ErrPlayerNotSeated, m.Contribute(2, 10))
	a.Equal(ErrPlayerNotSeated, m.MarkFolded(2))
}

func TestManager_Layers_singlePot(t *testing.T) {
	a := assert.New(t)

	m := seated(t, 50, 50, 50)
	layers, err := m.Layers()
	a.NoError(err)
	a.Equal([]Layer{
		{Amount: 150, Eligible: []int64{1, 2, 3}},
	}, layers)
	a.Equal(150, m.Total())
}

func TestManager_Layers_sidePots(t *testing.T) {
	a := assert.New(t)

	// 100/200/300 layers into 300 + 200 + 100
	m := seated(t, 100, 200, 300)
	layers, err := m.Layers()
	a.NoError(err)
	a.Equal([]Layer{
		{Amount: 300, Eligible: []int64{1, 2, 3}},
		{Amount: 200, Eligible: []int64{2, 3}},
		{Amount: 100, Eligible: []int64{3}},
	}, layers)
	a.Equal(600, m.Total())
}

func TestManager_Layers_foldedChipsStay(t *testing.T) {
	a := assert.New(t)

	m := seated(t, 100, 200, 300)
	a.NoError(m.MarkFolded(3))

	layers, err := m.Layers()
	a.NoError(err)
	a.Equal([]Layer{
		{Amount: 300, Eligible: []int64{1, 2}},
		{Amount: 200, Eligible: []int64{2}},
		{Amount: 100}, // folded chips stay in the pot
	}, layers)
	a.Equal(600, m.Total())
}

func TestManager_Layers_zeroContribution(t *testing.T) {
	a := assert.New(t)

	m := seated(t, 0, 60, 60)
	layers, err := m.Layers()
	a.NoError(err)
	a.Equal([]Layer{
		{Amount: 120, Eligible: []int64{2, 3}},
	}, layers)
}

func TestManager_Award_splitsAndRemainder(t *testing.T) {
	a := assert.New(t)

	m := seated(t, 25, 25, 25)
	payouts, err := m.Award(map[int64]int{1: 500, 2: 500, 3: 100}, 0)
	a.NoError(err)

	// 75 splits 37/37 with the odd chip to the first winner left of the
	// dealer in seat 0
	a.Equal(map[int64]int{1: 37, 2: 38}, payouts)
}

func TestManager_Award_sidePots(t *testing.T) {
	a := assert.New(t)

	m := seated(t, 100, 200, 300)

	// the short stack holds the best hand and only wins the main pot;
	// the remaining layers go to the next best eligible hand
	payouts, err := m.Award(map[int64]int{1: 900, 2: 500, 3: 100}, 2)
	a.NoError(err)
	a.Equal(map[int64]int{1: 300, 2: 200, 3: 100}, payouts)

	total := 0
	for _, amount := range payouts {
		total += amount
	}
	a.Equal(m.Total(), total)
}

func TestManager_Award_winByFold(t *testing.T) {
	a := assert.New(t)

	m := seated(t, 30, 30, 10)
	a.NoError(m.MarkFolded(1))
	a.NoError(m.MarkFolded(3))

	payouts, err := m.Award(map[int64]int{2: 1}, 0)
	a.NoError(err)
	a.Equal(map[int64]int{2: 70}, payouts)
}

func TestManager_Award_foldedTopContributor(t *testing.T) {
	a := assert.New(t)

	// seat 1 raised to 100 and later folded; seats 2 and 3 called all-in
	// for less, leaving the top layer with no eligible players. Those 40
	// chips roll into the layer below.
	m := seated(t, 100, 50, 60)
	a.NoError(m.MarkFolded(1))

	payouts, err := m.Award(map[int64]int{2: 500, 3: 900}, 0)
	a.NoError(err)
	a.Equal(map[int64]int{3: 210}, payouts)
	a.Equal(m.Total(), payouts[3])

	// when the shorter all-in holds the best hand, the rolled-down chips
	// still go to the only player covering the middle layer
	payouts, err = m.Award(map[int64]int{2: 900, 3: 500}, 0)
	a.NoError(err)
	a.Equal(map[int64]int{2: 150, 3: 60}, payouts)
}

func TestManager_Award_noEligibleWinner(t *testing.T) {
	a := assert.New(t)

	m := seated(t, 50, 50)
	_, err := m.Award(map[int64]int{}, 0)
	a.EqualError(err, "no eligible winner for pot layer of 100")
}

func TestInvariantError_Error(t *testing.T) {
	err := &InvariantError{
		Total:         600,
		LayerSum:      500,
		Contributions: map[int64]int{1: 600},
	}
	assert.Equal(t, "pot layers sum to 500 but contributions total 600: map[1:600]", err.Error())
}
