package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"klondike/internal/app"
	"klondike/internal/bot"
	"klondike/internal/config"
	"klondike/internal/domain"
	"klondike/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one player's game.
type MatchState struct {
	Owner    string               `json:"owner"`    // User ID of the only player, empty until the first join
	Presence runtime.Presence     `json:"-"`        // Owner's current connection, nil while away
	Tick     int64                `json:"tick"`     // Last processed tick
	Moves    int                  `json:"moves"`    // Accepted moves in the current deal
	Idle     int                  `json:"idle"`     // Consecutive ticks without a connected owner
	Settings config.MatchSettings `json:"settings"` // Values from the runtime environment
	App      *app.Service         `json:"-"`
	Session  *app.Session         `json:"-"`
	Advisor  *bot.Agent           `json:"-"` // nil when hints are disabled
	Results  ports.ResultPort     `json:"-"` // nil disables result storage
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return newMatchHandler(), nil
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit deals the game. params may carry "seed" to replay a known deal.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	settings, err := config.LoadMatchSettings(env)
	if err != nil {
		logger.Warn("MatchInit: Invalid match settings, using defaults: %v", err)
		settings = config.DefaultMatchSettings()
	}

	state := &MatchState{
		Settings: settings,
		App:      app.NewService(nil),
	}
	if nk != nil {
		state.Results = NewNakamaResultAdapter(nk)
	}
	if settings.HintsEnabled {
		state.Advisor = newAdvisor(settings.HintLevel, logger)
	}

	seed, hasSeed, err := seedParam(params)
	if err != nil {
		logger.Warn("MatchInit: Ignoring seed param: %v", err)
	}
	var seedPtr *int64
	if hasSeed {
		seedPtr = &seed
	}
	// Nobody is connected yet; MatchJoin sends the table.
	state.Session, _ = state.App.NewSession(seedPtr)
	logger.Info("MatchInit: Dealt game with seed %d.", state.Session.Seed())

	label, err := labelFor(state).encode()
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, settings.TickRate, label
}

func newAdvisor(level string, logger runtime.Logger) *bot.Agent {
	lvl, err := bot.ParseLevel(level)
	if err != nil {
		logger.Warn("MatchInit: %v, falling back to smart hints", err)
		lvl = bot.BotLevelSmart
	}
	brain, err := bot.NewBrain(lvl)
	if err != nil {
		logger.Error("MatchInit: Failed to create hint advisor: %v", err)
		return nil
	}
	return &bot.Agent{ID: "advisor", Name: "Advisor (" + lvl.String() + ")", Strategy: brain}
}

// Integers above 2^53 cannot be told apart from their neighbours once
// decoded as float64.
const maxExactFloatSeed = 1 << 53

// seedParam reads an optional seed from match params. Values arrive as
// Go numbers from the RPC, or as float64/string when created from JSON.
func seedParam(params map[string]interface{}) (int64, bool, error) {
	raw, ok := params["seed"]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int64:
		return v, true, nil
	case int:
		return int64(v), true, nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxExactFloatSeed {
			return 0, false, errors.New("seed must be an integer no larger than 2^53")
		}
		return int64(v), true, nil
	case json.Number:
		n, err := v.Int64()
		return n, err == nil, err
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil, err
	default:
		return 0, false, errors.New("seed must be an integer")
	}
}

// MatchJoinAttempt admits the first player and afterwards only that player,
// who may reconnect with a new session.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Owner == "" {
		// Claim the game now so a second attempt in the same tick is refused.
		matchState.Owner = presence.GetUserId()
		logger.Info("MatchJoinAttempt: %s owns the game.", presence.GetUserId())
		return matchState, true, ""
	}
	if matchState.Owner == presence.GetUserId() {
		return matchState, true, ""
	}
	logger.Debug("MatchJoinAttempt: Rejecting %s, game belongs to %s.", presence.GetUserId(), matchState.Owner)
	return matchState, false, "Game is single player"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.Owner == "" {
			matchState.Owner = p.GetUserId()
			logger.Info("MatchJoin: %s owns the game.", p.GetUserId())
		}
		if p.GetUserId() != matchState.Owner {
			logger.Warn("MatchJoin: Ignoring unexpected presence %s.", p.GetUserId())
			continue
		}
		matchState.Presence = p
		matchState.Idle = 0
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.sendSnapshot(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave marks the owner away when their current connection drops. The
// match keeps running so the owner can find it again with RpcResumeGame;
// MatchLoop ends it after Settings.IdleTicks. A leave from a session the
// owner has already replaced is ignored.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() != matchState.Owner {
			continue
		}
		if matchState.Presence != nil && matchState.Presence.GetSessionId() != p.GetSessionId() {
			logger.Debug("MatchLeave: Stale session %s of %s left.", p.GetSessionId(), p.GetUserId())
			continue
		}
		logger.Info("MatchLeave: Owner %s disconnected, waiting up to %d ticks.", p.GetUserId(), matchState.Settings.IdleTicks)
		matchState.Presence = nil
		matchState.Idle = 0
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	if matchState.Presence == nil {
		matchState.Idle++
		if matchState.Idle >= matchState.Settings.IdleTicks {
			logger.Info("MatchLoop: No owner for %d ticks, terminating match.", matchState.Idle)
			return nil
		}
	}

	for _, msg := range messages {
		if msg.GetUserId() != matchState.Owner {
			logger.Warn("MatchLoop: Message from non-owner %s dropped.", msg.GetUserId())
			continue
		}

		switch msg.GetOpCode() {
		case OpMove:
			if quit := mh.handleMove(ctx, matchState, dispatcher, logger, msg); quit {
				logger.Info("MatchLoop: %s quit the game.", msg.GetUserId())
				return nil
			}
		case OpDraw:
			draw := domain.NewMove(domain.PileRef{Kind: domain.Stock}, domain.PileRef{Kind: domain.Waste})
			mh.applyMove(ctx, matchState, dispatcher, logger, draw)
		case OpHint:
			mh.handleHint(matchState, dispatcher, logger)
		case OpNewDeal:
			mh.handleNewDeal(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

// handleMove decodes a token move and applies it. It reports true when the
// player sent the quit token.
func (mh *matchHandler) handleMove(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) bool {
	var request MoveMessage
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleMove: Invalid payload from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, CodeBadRequest, "invalid move payload")
		return false
	}

	req, err := moveFromWire(request)
	if errors.Is(err, domain.ErrQuit) {
		return true
	}
	if err != nil {
		logger.Warn("handleMove: Bad pile token from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, CodeBadRequest, err.Error())
		return false
	}

	mh.applyMove(ctx, state, dispatcher, logger, req)
	return false
}

func (mh *matchHandler) applyMove(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, req domain.MoveRequest) {
	events, err := state.App.ApplyMove(state.Session, req)
	if err != nil {
		code := CodeInternal
		var moveErr *domain.MoveError
		switch {
		case errors.As(err, &moveErr):
			code = string(moveErr.Code)
			logger.Debug("applyMove: %s rejected: %v", req, err)
		case errors.Is(err, app.ErrGameWon):
			code = CodeGameWon
		default:
			logger.Error("applyMove: %s failed: %v", req, err)
		}
		mh.sendError(state, dispatcher, logger, code, err.Error())
		return
	}

	state.Moves++
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleHint(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Advisor == nil {
		mh.sendError(state, dispatcher, logger, CodeHintsDisabled, "hints are disabled")
		return
	}

	move, err := state.Advisor.Play(state.Session.Game())
	if err != nil {
		logger.Error("handleHint: %s failed: %v", state.Advisor.Name, err)
		mh.sendError(state, dispatcher, logger, CodeInternal, "no hint available")
		return
	}

	var hint HintMessage
	if !move.None {
		wire := moveToWire(move.Request)
		hint = HintMessage{From: wire.From, To: wire.To, Reason: move.Reason}
	}
	mh.send(state, dispatcher, logger, OpHintResult, hint)
}

func (mh *matchHandler) handleNewDeal(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var request NewDealMessage
	if data := msg.GetData(); len(data) > 0 {
		if err := json.Unmarshal(data, &request); err != nil {
			logger.Warn("handleNewDeal: Invalid payload from %s: %v", msg.GetUserId(), err)
			mh.sendError(state, dispatcher, logger, CodeBadRequest, "invalid new deal payload")
			return
		}
	}

	events, err := state.App.Redeal(state.Session, request.Seed)
	if err != nil {
		logger.Error("handleNewDeal: %v", err)
		mh.sendError(state, dispatcher, logger, CodeInternal, err.Error())
		return
	}
	state.Moves = 0
	logger.Info("handleNewDeal: Dealt game with seed %d.", state.Session.Seed())

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts an app event to its wire message and sends it.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	seed := state.Session.Seed()
	won := state.Session.HasWon()

	switch ev.Kind {
	case app.EventGameDealt:
		p := ev.Payload.(app.GameDealtPayload)
		mh.send(state, dispatcher, logger, OpSnapshot, snapshotToWire(p.Seed, p.Snapshot, false))
	case app.EventCardsMoved:
		p := ev.Payload.(app.CardsMovedPayload)
		mh.send(state, dispatcher, logger, OpMoveApplied, MoveAppliedMessage{
			Move:     moveToWire(p.Move),
			Cards:    cardsToWire(p.Cards),
			Snapshot: snapshotToWire(seed, p.Snapshot, won),
		})
	case app.EventStockDrawn:
		p := ev.Payload.(app.StockDrawnPayload)
		draw := domain.NewMove(domain.PileRef{Kind: domain.Stock}, domain.PileRef{Kind: domain.Waste})
		mh.send(state, dispatcher, logger, OpMoveApplied, MoveAppliedMessage{
			Move:     moveToWire(draw),
			Cards:    cardsToWire([]domain.Card{p.Card}),
			Snapshot: snapshotToWire(seed, p.Snapshot, won),
		})
	case app.EventStockRecycled:
		p := ev.Payload.(app.StockRecycledPayload)
		mh.send(state, dispatcher, logger, OpStockRecycled, StockRecycledMessage{
			Count:    p.Count,
			Snapshot: snapshotToWire(seed, p.Snapshot, won),
		})
	case app.EventGameWon:
		p := ev.Payload.(app.GameWonPayload)
		logger.Info("Event: game_won (owner=%s, seed=%d, moves=%d)", state.Owner, p.Seed, state.Moves)
		mh.send(state, dispatcher, logger, OpGameWon, GameWonMessage{Seed: p.Seed, Moves: state.Moves})
		mh.recordWin(ctx, state, logger, p.Seed)
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
	}
}

func (mh *matchHandler) recordWin(ctx context.Context, state *MatchState, logger runtime.Logger, seed int64) {
	if state.Results == nil {
		return
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	result := ports.GameResult{
		UserID:  state.Owner,
		MatchID: matchID,
		Seed:    seed,
		Moves:   state.Moves,
		WonAt:   time.Now().UTC(),
	}
	if err := state.Results.RecordWin(ctx, result); err != nil {
		logger.Error("Failed to record win: %v", err)
	}
}

func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Session == nil {
		return
	}
	msg := snapshotToWire(state.Session.Seed(), state.Session.Snapshot(), state.Session.HasWon())
	mh.send(state, dispatcher, logger, OpSnapshot, msg)
}

// sendError reports a rejected request to the owner.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code, message string) {
	mh.send(state, dispatcher, logger, OpMoveRejected, MoveRejectedMessage{Code: code, Message: message})
}

// send delivers payload to the owner's current connection.
func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload interface{}) {
	if state.Presence == nil {
		logger.Debug("Dropping op %d: owner not connected", opCode)
		return
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal op %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, []runtime.Presence{state.Presence}, nil, true); err != nil {
		logger.Error("Failed to send op %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := labelFor(state).encode()
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminating with %d seconds grace", graceSeconds)
	return state
}

// MatchSignal answers "snapshot" with the current table as JSON; other
// signals are ignored.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok || data != "snapshot" || matchState.Session == nil {
		return state, ""
	}
	s := matchState.Session
	bytes, err := json.Marshal(snapshotToWire(s.Seed(), s.Snapshot(), s.HasWon()))
	if err != nil {
		logger.Error("MatchSignal: Failed to marshal snapshot: %v", err)
		return state, ""
	}
	return state, string(bytes)
}
