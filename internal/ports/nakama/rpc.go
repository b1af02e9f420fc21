package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NewGameRequest is the optional payload of RpcNewGame.
type NewGameRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}

// NewGameResponse is returned by RpcNewGame.
type NewGameResponse struct {
	MatchID string `json:"match_id"`
	Seed    *int64 `json:"seed,omitempty"`
}

// ResumeGameResponse is returned by RpcResumeGame. MatchID is empty when
// the caller has no running game.
type ResumeGameResponse struct {
	MatchID string `json:"match_id"`
	Found   bool   `json:"found"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcNewGame, rpcNewGame); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcResumeGame, rpcResumeGame)
}

// rpcNewGame creates a fresh authoritative game. The caller joins it with
// the returned match id and becomes its owner.
func rpcNewGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var request NewGameRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			logger.Warn("RpcNewGame [User:%s]: Invalid payload: %v", userID, err)
			return "", runtime.NewError("invalid new_game payload", 3) // INVALID_ARGUMENT
		}
	}

	params := map[string]interface{}{}
	if request.Seed != nil {
		params["seed"] = *request.Seed
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameKlondike, params)
	if err != nil {
		logger.Error("RpcNewGame [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}
	logger.Info("RpcNewGame [User:%s]: Created match %s", userID, matchID)

	b, err := json.Marshal(NewGameResponse{MatchID: matchID, Seed: request.Seed})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// rpcResumeGame looks up a running game owned by the caller, including one
// the caller disconnected from within the idle grace period.
func rpcResumeGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("resume_game requires an authenticated user", 16) // UNAUTHENTICATED
	}

	query := resumeQuery(userID)
	limit := 1
	authoritative := true
	minSize := 0
	maxSize := 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("RpcResumeGame [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	resp := ResumeGameResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].MatchId
		resp.Found = true
		logger.Debug("RpcResumeGame [User:%s]: Found match %s", userID, resp.MatchID)
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func resumeQuery(userID string) string {
	return fmt.Sprintf("+label.%s:%s +label.%s:%s +label.%s:%s",
		labelKeyGame, labelGame, labelKeyOwner, userID, labelKeyPhase, phasePlaying)
}
