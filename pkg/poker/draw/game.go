// Package draw implements a five-card draw game controller: a strict
// phase machine over the deck, the betting rounds, and the pot.
package draw

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"drawpoker-server/internal/rng"
	"drawpoker-server/pkg/deck"
	"drawpoker-server/pkg/poker/betting"
	"drawpoker-server/pkg/poker/event"
	"drawpoker-server/pkg/poker/handeval"
	"drawpoker-server/pkg/poker/potmanager"
	"drawpoker-server/pkg/poker/table"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// errors
var (
	ErrNotEnoughPlayers = errors.New("a game requires at least two players")
	ErrDuplicatePlayer  = errors.New("duplicate player id")
	ErrMissingProvider  = errors.New("every seat requires a decision provider")
)

// Seat is a player joining a game
type Seat struct {
	ID       int64
	Name     string
	Provider Provider
}

// Game is a five-card draw game. It is not safe for concurrent use;
// each game runs on a single goroutine and suspends only while waiting
// on a decision provider.
type Game struct {
	logger    logrus.FieldLogger
	options   Options
	gameID    string
	dck       *deck.Deck
	players   []*table.PlayerState
	providers map[int64]Provider
	sink      event.Sink
	recorder  Recorder

	dealer     int
	round      int
	pot        *potmanager.Manager
	eliminated []PlayerSnapshot
}

// NewGame seats the players and prepares the first hand. Seat order is
// table order; the first dealer is seat 0.
func NewGame(logger logrus.FieldLogger, options Options, seats []Seat) (*Game, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	if len(seats) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	players := make([]*table.PlayerState, len(seats))
	providers := make(map[int64]Provider, len(seats))
	for i, seat := range seats {
		if seat.Provider == nil {
			return nil, ErrMissingProvider
		}
		if _, ok := providers[seat.ID]; ok {
			return nil, ErrDuplicatePlayer
		}

		players[i] = table.NewPlayerState(seat.ID, seat.Name, options.StartingChips)
		players[i].Position = i
		providers[seat.ID] = seat.Provider
	}

	seed := options.Seed
	if seed == 0 {
		seed = rng.Seed()
	}

	d := deck.New()
	d.SetSeed(seed)

	return &Game{
		logger:    logger.WithField("game", "draw-poker"),
		options:   options,
		gameID:    uuid.New().String(),
		dck:       d,
		players:   players,
		providers: providers,
		sink:      event.Discard,
		round:     1,
	}, nil
}

// SetSink directs game events to the given sink
func (g *Game) SetSink(sink event.Sink) {
	if sink == nil {
		sink = event.Discard
	}

	g.sink = sink
}

// SetRecorder persists a snapshot after every phase
func (g *Game) SetRecorder(recorder Recorder) {
	g.recorder = recorder
}

// ID returns the game's unique identifier
func (g *Game) ID() string {
	return g.gameID
}

// Round returns the current hand number, starting at 1
func (g *Game) Round() int {
	return g.round
}

// Finished returns true once the game cannot continue
func (g *Game) Finished() bool {
	if len(g.players) <= 1 {
		return true
	}

	return g.options.MaxRounds > 0 && g.round > g.options.MaxRounds
}

// Winner returns the last chipped player, or nil while the game is live
func (g *Game) Winner() *table.PlayerState {
	if len(g.players) != 1 {
		return nil
	}

	return g.players[0]
}

// Dealer returns the player holding the button
func (g *Game) Dealer() *table.PlayerState {
	return g.players[g.dealer]
}

// Standings lists remaining players by chip count, then eliminated
// players in reverse order of elimination
func (g *Game) Standings() []PlayerSnapshot {
	standings := make([]PlayerSnapshot, 0, len(g.players)+len(g.eliminated))
	for _, p := range g.players {
		standings = append(standings, playerSnapshot(p))
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Chips > standings[j].Chips
	})

	for i := len(g.eliminated) - 1; i >= 0; i-- {
		standings = append(standings, g.eliminated[i])
	}

	return standings
}

// Run plays hands until one player holds all the chips, the configured
// hand limit is reached, or the context is canceled
func (g *Game) Run(ctx context.Context) error {
	for !g.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := g.PlayRound(ctx); err != nil {
			return err
		}
	}

	g.emit(event.New(event.TypeGameFinished, g.finalMessage()))
	return nil
}

func (g *Game) finalMessage() string {
	if winner := g.Winner(); winner != nil {
		return fmt.Sprintf("%s wins the game with ${%d}", winner.Name, winner.Chips)
	}

	return fmt.Sprintf("game stopped after %d hands", g.round-1)
}

// PlayRound plays a single hand from antes through cleanup
func (g *Game) PlayRound(ctx context.Context) error {
	if len(g.players) < 2 {
		return ErrNotEnoughPlayers
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	g.startHand()

	g.collectAntes(ctx)
	g.postBlinds(ctx)

	if err := g.dealHands(ctx); err != nil {
		return err
	}

	if g.contendersCount() > 1 {
		if err := g.bettingRound(ctx, PhasePreDrawBetting); err != nil {
			return err
		}
	}

	if g.contendersCount() > 1 {
		if err := g.drawPhase(ctx); err != nil {
			return err
		}
	}

	if g.contendersCount() > 1 {
		if err := g.bettingRound(ctx, PhasePostDrawBetting); err != nil {
			return err
		}
	}

	payouts, err := g.showdown()
	if err != nil {
		return err
	}

	g.record(ctx, PhaseShowdown)
	g.cleanup(ctx, payouts)
	return nil
}

func (g *Game) startHand() {
	g.pot = potmanager.New()
	for _, p := range g.players {
		p.NewHand()
		if err := g.pot.SeatPlayer(p.ID); err != nil {
			panic(fmt.Sprintf("could not seat player %d: %v", p.ID, err))
		}
	}

	g.dck.ReshuffleAll()
	g.dck.Shuffle(0)

	dealerName := g.players[g.dealer].Name
	g.emit(event.New(event.TypeHandStarted, fmt.Sprintf("hand %d started, %s has the button", g.round, dealerName)))
}

func (g *Game) collectAntes(ctx context.Context) {
	if g.options.Ante == 0 {
		return
	}

	g.forEachFromDealer(func(p *table.PlayerState) {
		paid := p.Bet(g.options.Ante)
		g.contribute(p, paid)
		g.emit(event.New(event.TypeAntePosted, fmt.Sprintf("%s posted a ${%d} ante", p.Name, paid)).
			WithPlayer(p.ID).
			WithAmount(paid))
	})

	// antes never count toward calling the blinds
	for _, p := range g.players {
		p.NewBettingRound()
	}

	g.record(ctx, PhaseAntes)
}

func (g *Game) postBlinds(ctx context.Context) {
	sb, bb := g.blindIndexes()

	for _, post := range []struct {
		player *table.PlayerState
		amount int
		name   string
	}{
		{g.players[sb], g.options.SmallBlind, "small"},
		{g.players[bb], g.options.BigBlind, "big"},
	} {
		paid := post.player.Bet(post.amount)
		g.contribute(post.player, paid)
		g.emit(event.New(event.TypeBlindPosted, fmt.Sprintf("%s posted the ${%d} %s blind", post.player.Name, paid, post.name)).
			WithPlayer(post.player.ID).
			WithAmount(paid))
	}

	g.record(ctx, PhaseBlinds)
}

func (g *Game) dealHands(ctx context.Context) error {
	for _, p := range g.players {
		cards, err := g.dck.Deal(handeval.HandSize)
		if err != nil {
			return err
		}

		p.Hand = handeval.NewHand(cards...)
	}

	g.emit(event.New(event.TypeCardsDealt, fmt.Sprintf("dealt %d cards to each player", handeval.HandSize)))
	g.record(ctx, PhaseDeal)
	return nil
}

func (g *Game) bettingRound(ctx context.Context, phase Phase) error {
	firstToAct, openingBet := g.bettingStart(phase)

	providers := make(map[int64]betting.DecisionProvider, len(g.providers))
	for id, provider := range g.providers {
		providers[id] = provider
	}

	round := betting.NewRound(g.logger, betting.Config{
		MinBet:             g.options.MinBet,
		MaxRaiseMultiplier: g.options.MaxRaiseMultiplier,
		MaxRaisesPerRound:  g.options.MaxRaisesPerRound,
		DecisionTimeout:    g.options.DecisionTimeout,
		RetryBudget:        g.options.RetryBudget,
	}, g.players, providers, g.pot, g.sink, firstToAct, openingBet)

	if err := round.Run(ctx); err != nil {
		return err
	}

	for _, p := range g.players {
		p.NewBettingRound()
	}

	g.record(ctx, phase)
	return nil
}

// bettingStart returns the index of the first player to act and the bet
// already on the table
func (g *Game) bettingStart(phase Phase) (int, int) {
	n := len(g.players)
	if phase == PhasePreDrawBetting {
		_, bb := g.blindIndexes()
		return (bb + 1) % n, g.options.BigBlind
	}

	return (g.dealer + 1) % n, 0
}

// blindIndexes returns the small and big blind seats. Heads-up, the
// dealer posts the small blind.
func (g *Game) blindIndexes() (int, int) {
	n := len(g.players)
	if n == 2 {
		return g.dealer, (g.dealer + 1) % n
	}

	return (g.dealer + 1) % n, (g.dealer + 2) % n
}

func (g *Game) drawPhase(ctx context.Context) error {
	var fatal error
	g.forEachFromDealer(func(p *table.PlayerState) {
		if fatal != nil || !p.InHand() {
			return
		}

		fatal = g.drawFor(ctx, p)
	})
	if fatal != nil {
		return fatal
	}

	g.record(ctx, PhaseDraw)
	return nil
}

func (g *Game) drawFor(ctx context.Context, p *table.PlayerState) error {
	positions, err := g.drawDiscards(ctx, p)
	if err != nil {
		g.logger.WithError(err).WithField("playerId", p.ID).Warn("draw selection failed")
		g.emit(event.New(event.TypeDecisionError, fmt.Sprintf("%s keeps all cards", p.Name)).WithPlayer(p.ID))
		return nil
	}

	if len(positions) == 0 {
		g.emit(event.New(event.TypeCardsDrawn, fmt.Sprintf("%s stands pat", p.Name)).WithPlayer(p.ID))
		return nil
	}

	discarded, err := p.Hand.Discard(positions)
	if err != nil {
		g.logger.WithError(err).WithField("playerId", p.ID).Warn("rejected draw selection")
		g.emit(event.New(event.TypeDecisionError, fmt.Sprintf("%s keeps all cards", p.Name)).WithPlayer(p.ID))
		return nil
	}

	g.dck.AddDiscarded(discarded...)
	if g.dck.NeedsReshuffle(len(discarded)) {
		g.dck.ReshuffleDiscards()
		g.emit(event.New(event.TypeDeckShuffled, "discards shuffled back into the deck"))
	}

	cards, err := g.dck.Deal(len(discarded))
	if err != nil {
		// even the reshuffled discards cannot cover the draw
		return fmt.Errorf("cannot replace %s's discards: %w", p.Name, err)
	}

	p.Hand.AddCards(cards...)
	g.emit(event.New(event.TypeCardsDrawn, fmt.Sprintf("%s drew %d", p.Name, len(discarded))).
		WithPlayer(p.ID).
		WithAmount(len(discarded)))
	return nil
}

func (g *Game) drawDiscards(ctx context.Context, p *table.PlayerState) ([]int, error) {
	if g.options.DecisionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.options.DecisionTimeout)
		defer cancel()
	}

	return g.providers[p.ID].DrawDiscards(ctx, &DrawView{
		PlayerID: p.ID,
		Position: p.Position,
		Cards:    p.Hand.Cards(),
		Chips:    p.Chips,
		Pot:      g.pot.Total(),
		Round:    g.round,
	})
}

func (g *Game) showdown() (map[int64]int, error) {
	contenders := g.contenders()
	if len(contenders) == 0 {
		return nil, errors.New("no contenders at showdown")
	}

	if len(contenders) == 1 {
		// uncontested pot, no cards are shown
		winner := contenders[0]
		g.emit(event.New(event.TypeHandFinished, fmt.Sprintf("%s wins ${%d} uncontested", winner.Name, g.pot.Total())).
			WithPlayer(winner.ID))
		return map[int64]int{winner.ID: g.pot.Total()}, nil
	}

	strengths := make(map[int64]int, len(contenders))
	for _, p := range contenders {
		eval, err := p.Hand.Evaluation()
		if err != nil {
			return nil, fmt.Errorf("could not evaluate %s's hand: %w", p.Name, err)
		}

		strengths[p.ID] = eval.Strength()
		g.emit(event.New(event.TypeCardsShown, fmt.Sprintf("%s shows %s", p.Name, eval.Description)).
			WithPlayer(p.ID).
			WithCards(p.Hand.Cards()))
	}

	return g.pot.Award(strengths, g.dealer)
}

func (g *Game) cleanup(ctx context.Context, payouts map[int64]int) {
	for _, p := range g.players {
		amount, ok := payouts[p.ID]
		if !ok {
			continue
		}

		p.Win(amount)
		g.emit(event.New(event.TypePotAwarded, fmt.Sprintf("%s won ${%d}", p.Name, amount)).
			WithPlayer(p.ID).
			WithAmount(amount))
	}

	g.record(ctx, PhaseCleanup)

	nextDealerID := g.nextDealerID()

	remaining := make([]*table.PlayerState, 0, len(g.players))
	for _, p := range g.players {
		p.NewHand()
		if p.Chips == 0 {
			g.eliminated = append(g.eliminated, playerSnapshot(p))
			g.emit(event.New(event.TypePlayerBusted, fmt.Sprintf("%s was eliminated", p.Name)).WithPlayer(p.ID))
			continue
		}

		remaining = append(remaining, p)
	}
	g.players = remaining

	g.dealer = 0
	for i, p := range g.players {
		if p.ID == nextDealerID {
			g.dealer = i
			break
		}
	}

	g.round++
}

// nextDealerID finds the first player clockwise from the dealer who
// will survive the hand
func (g *Game) nextDealerID() int64 {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		p := g.players[(g.dealer+i)%n]
		if p.Chips > 0 {
			return p.ID
		}
	}

	return g.players[g.dealer].ID
}

func (g *Game) contenders() []*table.PlayerState {
	var contenders []*table.PlayerState
	for _, p := range g.players {
		if p.InHand() {
			contenders = append(contenders, p)
		}
	}

	return contenders
}

func (g *Game) contendersCount() int {
	return len(g.contenders())
}

// forEachFromDealer visits every player clockwise starting left of the
// dealer
func (g *Game) forEachFromDealer(fn func(p *table.PlayerState)) {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		fn(g.players[(g.dealer+i)%n])
	}
}

func (g *Game) contribute(p *table.PlayerState, amount int) {
	if err := g.pot.Contribute(p.ID, amount); err != nil {
		panic(fmt.Sprintf("could not contribute for player %d: %v", p.ID, err))
	}
}

func (g *Game) emit(e *event.Event) {
	g.sink.Emit(e.WithRound(g.round))
}

// Snapshot returns the public game state for the given phase
func (g *Game) Snapshot(phase Phase) *Snapshot {
	layers, err := g.pot.Layers()
	if err != nil {
		g.logger.WithError(err).Error("could not compute pot layers")
	}

	players := make([]PlayerSnapshot, len(g.players))
	for i, p := range g.players {
		players[i] = playerSnapshot(p)
	}

	return &Snapshot{
		GameID:  g.gameID,
		Round:   g.round,
		Phase:   phase,
		Pot:     g.pot.Total(),
		Layers:  layers,
		Players: players,
		Time:    timeNow(),
	}
}

func (g *Game) record(ctx context.Context, phase Phase) {
	if g.recorder == nil {
		return
	}

	if err := g.recorder.Record(ctx, g.Snapshot(phase)); err != nil {
		g.logger.WithError(err).Warn("could not record snapshot")
	}
}

func playerSnapshot(p *table.PlayerState) PlayerSnapshot {
	return PlayerSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Chips:    p.Chips,
		RoundBet: p.RoundBet,
		HandBet:  p.HandBet,
		Folded:   p.Folded,
		AllIn:    p.AllIn,
	}
}
