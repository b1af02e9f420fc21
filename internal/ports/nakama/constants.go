package nakama

const (
	// RpcNewGame is the Nakama RPC id clients call to deal a new solitaire game.
	RpcNewGame = "new_game"

	// RpcResumeGame finds the caller's running game so a reconnecting client can rejoin it.
	RpcResumeGame = "resume_game"

	// MatchNameKlondike is the authoritative match handler name registered with Nakama.
	MatchNameKlondike = "klondike_match"

	// StorageCollectionResults holds one storage object per won deal.
	StorageCollectionResults = "klondike_results"

	labelGame = "klondike"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpMove    int64 = 1
	OpDraw    int64 = 2
	OpHint    int64 = 3
	OpNewDeal int64 = 4

	// Server -> Client events
	OpSnapshot      int64 = 101
	OpMoveApplied   int64 = 102
	OpMoveRejected  int64 = 103
	OpHintResult    int64 = 104
	OpGameWon       int64 = 105
	OpStockRecycled int64 = 106
)

// Rejection codes that do not come from the move rules.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeGameWon       = "GAME_WON"
	CodeHintsDisabled = "HINTS_DISABLED"
	CodeInternal      = "INTERNAL"
)
