// Package betting runs a single betting round as a strict state machine
// over pluggable decision providers.
package betting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drawpoker-server/pkg/deck"
	"drawpoker-server/pkg/poker/action"
	"drawpoker-server/pkg/poker/event"
	"drawpoker-server/pkg/poker/potmanager"
	"drawpoker-server/pkg/poker/table"

	"github.com/sirupsen/logrus"
)

// errors
var (
	ErrInvalidAction = errors.New("invalid action")
	ErrOutOfTurn     = errors.New("player acted out of turn")
)

// State is the lifecycle state of a betting round
type State int

// states
const (
	StateWaitingAction State = iota
	StateRoundComplete
)

// Config holds the table rules a betting round enforces
type Config struct {
	// MinBet is the minimum raise increment, normally the big blind
	MinBet int

	// MaxRaiseMultiplier caps a raise at the current bet times the
	// multiplier. Zero means uncapped. When the round opens at zero,
	// MinBet stands in as the cap base.
	MaxRaiseMultiplier int

	// MaxRaisesPerRound caps the number of raises. Zero means uncapped.
	MaxRaisesPerRound int

	// DecisionTimeout bounds each provider call. Zero means no deadline.
	DecisionTimeout time.Duration

	// RetryBudget is how many times an invalid decision is re-requested
	// before the safe default is applied. Timeouts and provider errors
	// are never retried.
	RetryBudget int
}

// Snapshot is the read-only view handed to a decision provider
type Snapshot struct {
	PlayerID   int64              `json:"playerId"`
	Position   int                `json:"position"`
	Chips      int                `json:"chips"`
	Cards      deck.Hand          `json:"cards"`
	RoundBet   int                `json:"roundBet"`
	CurrentBet int                `json:"currentBet"`
	ToCall     int                `json:"toCall"`
	MinRaiseTo int                `json:"minRaiseTo"`
	MaxRaiseTo int                `json:"maxRaiseTo"` // 0 = only the stack caps it
	Raises     int                `json:"raises"`
	Pot        int                `json:"pot"`
	PotLayers  []potmanager.Layer `json:"potLayers"`
	Actions    []action.Action    `json:"actions"`
}

// DecisionProvider supplies a player's decision for the given snapshot.
// The context carries the decision deadline; a provider error or an
// expired context makes the round substitute the safe default.
type DecisionProvider interface {
	Decide(ctx context.Context, snapshot *Snapshot) (action.Decision, error)
}

// Round is a single betting round. It owns the turn cursor and the
// current bet; chips move through the player states and the pot ledger
// it was given.
type Round struct {
	logger    logrus.FieldLogger
	config    Config
	players   []*table.PlayerState
	providers map[int64]DecisionProvider
	pot       *potmanager.Manager
	sink      event.Sink

	currentBet int
	raises     int
	turn       int
	acted      map[int64]bool
	state      State
}

// NewRound builds a betting round over the players in seat order.
// firstToAct indexes into players; openingBet is the bet already on the
// table (the big blind pre-draw, zero post-draw). Blinds must already be
// reflected in the player states and the pot ledger.
func NewRound(logger logrus.FieldLogger, config Config, players []*table.PlayerState, providers map[int64]DecisionProvider, pot *potmanager.Manager, sink event.Sink, firstToAct, openingBet int) *Round {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if sink == nil {
		sink = event.Discard
	}

	r := &Round{
		logger:     logger,
		config:     config,
		players:    players,
		providers:  providers,
		pot:        pot,
		sink:       sink,
		currentBet: openingBet,
		turn:       firstToAct,
		acted:      make(map[int64]bool),
	}

	r.updateState()
	if r.state == StateWaitingAction && !r.pending(r.players[r.turn]) {
		r.advance()
	}

	return r
}

// State returns the round's lifecycle state
func (r *Round) State() State {
	return r.state
}

// CurrentBet returns the bet each player must match
func (r *Round) CurrentBet() int {
	return r.currentBet
}

// Raises returns the number of raises so far
func (r *Round) Raises() int {
	return r.raises
}

// Turn returns the player whose decision is awaited, or nil once the
// round is complete
func (r *Round) Turn() *table.PlayerState {
	if r.state != StateWaitingAction {
		return nil
	}

	return r.players[r.turn]
}

// Run requests and applies decisions until the round completes or the
// context is canceled
func (r *Round) Run(ctx context.Context) error {
	for r.state == StateWaitingAction {
		if err := ctx.Err(); err != nil {
			return err
		}

		player := r.players[r.turn]
		decision := r.requestDecision(ctx, player)
		if err := r.apply(player, decision); err != nil {
			// the safe default is always legal; anything else here is
			// a programmer error
			return err
		}
	}

	return nil
}

// Act applies a decision for the given player. It enforces turn order
// and validity, leaving all state untouched on error.
func (r *Round) Act(playerID int64, decision action.Decision) error {
	player := r.Turn()
	if player == nil || player.ID != playerID {
		return ErrOutOfTurn
	}

	if err := r.Validate(player, decision); err != nil {
		return err
	}

	return r.apply(player, decision)
}

// Validate checks a decision against the round state without applying it
func (r *Round) Validate(player *table.PlayerState, decision action.Decision) error {
	if !decision.Action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAction, string(decision.Action))
	}

	owed := r.currentBet - player.RoundBet

	switch decision.Action {
	case action.Fold:
		return nil
	case action.Check:
		if owed > 0 {
			return fmt.Errorf("%w: cannot check facing a bet of ${%d}", ErrInvalidAction, owed)
		}
		return nil
	case action.Call:
		if owed == 0 {
			return fmt.Errorf("%w: nothing to call", ErrInvalidAction)
		}
		return nil
	case action.Raise:
		return r.validateRaise(player, decision.Amount)
	}

	return ErrInvalidAction
}

func (r *Round) validateRaise(player *table.PlayerState, amount int) error {
	if r.config.MaxRaisesPerRound > 0 && r.raises >= r.config.MaxRaisesPerRound {
		return fmt.Errorf("%w: the bet cannot be raised more than %d times", ErrInvalidAction, r.config.MaxRaisesPerRound)
	}

	// a raise past the stack is an implicit all-in
	allIn := player.RoundBet + player.Chips
	if amount > allIn {
		amount = allIn
	}

	if amount <= r.currentBet {
		return fmt.Errorf("%w: raise to ${%d} does not exceed the current bet of ${%d}", ErrInvalidAction, amount, r.currentBet)
	}

	// a short all-in raise is always allowed
	if amount < r.minRaiseTo() && amount != allIn {
		return fmt.Errorf("%w: raise must be to at least ${%d}", ErrInvalidAction, r.minRaiseTo())
	}

	if max := r.maxRaiseTo(); max > 0 && amount > max {
		return fmt.Errorf("%w: raise to ${%d} exceeds the cap of ${%d}", ErrInvalidAction, amount, max)
	}

	return nil
}

func (r *Round) minRaiseTo() int {
	return r.currentBet + r.config.MinBet
}

func (r *Round) maxRaiseTo() int {
	if r.config.MaxRaiseMultiplier == 0 {
		return 0
	}

	base := r.currentBet
	if base == 0 {
		base = r.config.MinBet
	}

	return base * r.config.MaxRaiseMultiplier
}

// SnapshotFor builds the provider view for the given player
func (r *Round) SnapshotFor(player *table.PlayerState) *Snapshot {
	owed := r.currentBet - player.RoundBet
	if owed < 0 {
		owed = 0
	}

	layers, err := r.pot.Layers()
	if err != nil {
		r.logger.WithError(err).Error("could not compute pot layers")
	}

	var cards deck.Hand
	if player.Hand != nil {
		cards = player.Hand.Cards()
	}

	return &Snapshot{
		PlayerID:   player.ID,
		Position:   player.Position,
		Chips:      player.Chips,
		Cards:      cards,
		RoundBet:   player.RoundBet,
		CurrentBet: r.currentBet,
		ToCall:     owed,
		MinRaiseTo: r.minRaiseTo(),
		MaxRaiseTo: r.maxRaiseTo(),
		Raises:     r.raises,
		Pot:        r.pot.Total(),
		PotLayers:  layers,
		Actions:    r.validActions(player),
	}
}

func (r *Round) validActions(player *table.PlayerState) []action.Action {
	owed := r.currentBet - player.RoundBet

	actions := []action.Action{action.Fold}
	if owed > 0 {
		actions = append(actions, action.Call)
	} else {
		actions = append(actions, action.Check)
	}

	canRaise := r.config.MaxRaisesPerRound == 0 || r.raises < r.config.MaxRaisesPerRound
	if canRaise && player.RoundBet+player.Chips > r.currentBet {
		actions = append(actions, action.Raise)
	}

	return actions
}

func (r *Round) requestDecision(ctx context.Context, player *table.PlayerState) action.Decision {
	provider, ok := r.providers[player.ID]
	if !ok {
		return r.safeDefault(player)
	}

	for attempt := 0; attempt <= r.config.RetryBudget; attempt++ {
		decision, err := r.decide(ctx, provider, player)
		if err != nil {
			// timeouts and provider failures fall straight through to
			// the safe default
			r.logger.WithError(err).WithField("playerId", player.ID).Warn("decision provider failed")
			r.sink.Emit(event.New(event.TypeDecisionError, fmt.Sprintf("%s did not respond", player.Name)).WithPlayer(player.ID))
			break
		}

		if err := r.Validate(player, decision); err != nil {
			r.logger.WithError(err).WithField("playerId", player.ID).Warn("rejected decision")
			r.sink.Emit(event.New(event.TypeDecisionError, fmt.Sprintf("%s: %s", player.Name, err.Error())).WithPlayer(player.ID))
			continue
		}

		return decision
	}

	return r.safeDefault(player)
}

func (r *Round) decide(ctx context.Context, provider DecisionProvider, player *table.PlayerState) (action.Decision, error) {
	if r.config.DecisionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.DecisionTimeout)
		defer cancel()
	}

	return provider.Decide(ctx, r.SnapshotFor(player))
}

// safeDefault is check when nothing is owed, otherwise fold
func (r *Round) safeDefault(player *table.PlayerState) action.Decision {
	if r.currentBet > player.RoundBet {
		return action.NewDecision(action.Fold)
	}

	return action.NewDecision(action.Check)
}

func (r *Round) apply(player *table.PlayerState, decision action.Decision) error {
	paid := 0

	switch decision.Action {
	case action.Fold:
		player.Folded = true
		if err := r.pot.MarkFolded(player.ID); err != nil {
			return err
		}
	case action.Check:
		// no chips move
	case action.Call:
		paid = player.Bet(r.currentBet - player.RoundBet)
		if err := r.pot.Contribute(player.ID, paid); err != nil {
			return err
		}
	case action.Raise:
		paid = player.Bet(decision.Amount - player.RoundBet)
		if err := r.pot.Contribute(player.ID, paid); err != nil {
			return err
		}

		r.currentBet = player.RoundBet
		r.raises++
		r.acted = make(map[int64]bool)
	}

	r.acted[player.ID] = true

	r.sink.Emit(event.New(event.TypePlayerActed, fmt.Sprintf("%s %s", player.Name, decision.LogMessage(paid))).
		WithPlayer(player.ID).
		WithAmount(paid))

	r.updateState()
	if r.state == StateWaitingAction {
		r.advance()
	}

	return nil
}

// pending returns true if the player still owes a decision
func (r *Round) pending(player *table.PlayerState) bool {
	return player.CanAct() && !r.acted[player.ID]
}

func (r *Round) updateState() {
	inHand := 0
	for _, player := range r.players {
		if player.InHand() {
			inHand++
		}
	}

	if inHand <= 1 {
		r.state = StateRoundComplete
		return
	}

	for _, player := range r.players {
		if r.pending(player) {
			r.state = StateWaitingAction
			return
		}
	}

	r.state = StateRoundComplete
}

func (r *Round) advance() {
	n := len(r.players)
	for i := 1; i <= n; i++ {
		next := (r.turn + i) % n
		if r.pending(r.players[next]) {
			r.turn = next
			return
		}
	}
}
