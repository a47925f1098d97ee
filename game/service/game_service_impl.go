package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/wricardo/klondike/game/engine"
)

// gameServiceImpl implements the GameService interface. Engines are not safe
// for concurrent use, so every engine access happens under mu.
type gameServiceImpl struct {
	sessions SessionManager
	defaults engine.Options
	logger   *zap.SugaredLogger
	mu       sync.Mutex
}

// NewGameService creates a new game service instance. defaults supplies the
// seed for sessions created without one.
func NewGameService(sessions SessionManager, defaults engine.Options, logger *zap.SugaredLogger) GameService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &gameServiceImpl{
		sessions: sessions,
		defaults: defaults,
		logger:   logger,
	}
}

// CreateSession deals a new game in a new session
func (s *gameServiceImpl) CreateSession(ctx context.Context, seed int64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.defaults
	if seed != 0 {
		opts.Seed = seed
	}
	if err := engine.ValidateOptions(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	sess, err := s.sessions.Create("", opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Infow("session created", "session", sess.ID, "seed", sess.Engine.Seed())

	return s.info(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	s.logger.Infow("session deleted", "session", sessionID)
	return nil
}

// Move drops a card on a pile. Illegal drops are reported in the result, not
// as errors; errors are reserved for unknown sessions, cards and piles.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	eng := sess.Engine

	card, err := eng.FindCard(req.Card)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var dest *engine.Pile
	switch {
	case req.To != "":
		dest, err = eng.Pile(engine.PileID(req.To))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	case len(req.Candidates) > 0:
		candidates := make([]*engine.Pile, 0, len(req.Candidates))
		for _, id := range req.Candidates {
			p, err := eng.Pile(engine.PileID(id))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
			}
			candidates = append(candidates, p)
		}
		// A nil destination is rejected by the engine as a drop on nothing.
		dest = eng.ResolveDrop(card, candidates)
	default:
		return nil, fmt.Errorf("%w: either to or candidates is required", ErrInvalidRequest)
	}

	return s.result(sess, eng.RequestMove(card, dest)), nil
}

// Click clicks a card; only the top stock card reacts
func (s *gameServiceImpl) Click(ctx context.Context, sessionID, code string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	card, err := sess.Engine.FindCard(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.result(sess, sess.Engine.ClickCard(card)), nil
}

// DrawStock clicks the stock area: draw one card, or refill when empty
func (s *gameServiceImpl) DrawStock(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.result(sess, sess.Engine.DrawFromStock()), nil
}

// Restart deals a new game in the same session
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.result(sess, sess.Engine.Restart()), nil
}

// GetGameState returns the board with face-down cards hidden
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot().Redacted(), nil
}

// PossibleMoves lists the legal drags of the current board
func (s *gameServiceImpl) PossibleMoves(ctx context.Context, sessionID string) ([]engine.PossibleMove, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	moves := sess.Engine.PossibleMoves()
	if moves == nil {
		moves = []engine.PossibleMove{}
	}
	return moves, nil
}

// GetMoveHistory retrieves paginated move history for a session
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	// Set defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultHistoryLimit
	}
	if opts.Limit > MaxHistoryLimit {
		opts.Limit = MaxHistoryLimit
	}
	opts.Order = strings.ToLower(opts.Order)
	if opts.Order != "desc" {
		opts.Order = "asc"
	}

	state := sess.Engine.Snapshot()
	history := state.MoveHistory
	if opts.Current {
		history = state.CurrentMoves
	}
	return paginate(history, opts), nil
}

func paginate(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

// session looks a session up and marks it as used
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.logger.Warnw("failed to update last access", "session", sessionID, "error", err)
	}
	return sess, nil
}

func (s *gameServiceImpl) info(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		Seed:           sess.Engine.Seed(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.Snapshot().Redacted(),
	}
}

func (s *gameServiceImpl) result(sess *Session, res engine.MoveResult) *MoveResult {
	if res.Accepted {
		s.logger.Infow("command accepted", "session", sess.ID, "action", res.Action, "card", res.Card, "from", res.From, "to", res.To)
	} else {
		s.logger.Debugw("command rejected", "session", sess.ID, "action", res.Action, "card", res.Card, "reason", res.Reason)
	}
	if res.Won {
		s.logger.Infow("game won", "session", sess.ID)
	}

	return &MoveResult{
		Success:   res.Accepted,
		Action:    res.Action,
		Card:      res.Card,
		From:      res.From,
		To:        res.To,
		Cards:     res.Cards,
		Flipped:   res.Flipped,
		Reason:    res.Reason,
		Message:   res.Message,
		Won:       res.Won,
		GameState: sess.Engine.Snapshot().Redacted(),
		Events:    convertEvents(res.Events),
	}
}

// convertEvents stamps engine events with an ID and time
func convertEvents(events []engine.Event) []GameEvent {
	out := make([]GameEvent, 0, len(events))
	now := time.Now()
	for _, ev := range events {
		out = append(out, GameEvent{
			ID:        ulid.Make().String(),
			Type:      ev.Type,
			Cards:     ev.Cards,
			From:      ev.From,
			To:        ev.To,
			FaceUp:    ev.FaceUp,
			Reason:    ev.Reason,
			Message:   ev.Message,
			Timestamp: now,
		})
	}
	return out
}
