package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Grouped by the
// error kind taxonomy: NotFound, InvalidArgument, ConstraintViolated,
// Conflict, TransportFailed, ParseFailed, Cancelled, Timeout.

var (
	// Not found
	ErrNotFound       = errors.New("not found")
	ErrChunkNotFound  = errors.New("chunk not found")
	ErrSpaceNotFound  = errors.New("space not found")
	ErrNodeNotFound   = errors.New("graph node not found")
	ErrEntityNotFound = errors.New("entity not found")
	ErrQuestNotFound  = errors.New("quest not found")
	ErrCorpseNotFound = errors.New("corpse not found")
	ErrSeedNotFound   = errors.New("world seed not found")
	ErrSkillNotFound  = errors.New("skill not unlocked")

	// Invalid argument / navigation
	ErrNoSuchExit    = errors.New("no such exit")
	ErrBlocked       = errors.New("exit is blocked")
	ErrInvalidAction = errors.New("invalid action")

	// Constraint violated
	ErrConstraintViolated = errors.New("constraint violated")
	ErrInventoryFull      = errors.New("inventory capacity exceeded")
	ErrPedestalLocked     = errors.New("pedestal is locked")
	ErrAlreadyHoldingItem = errors.New("already holding a treasure-room item")
	ErrRoomAlreadyLooted  = errors.New("treasure room has already been looted")
	ErrTrainingNotAllowed = errors.New("disposition too low to allow training")
	ErrInsufficientGold   = errors.New("insufficient gold")
	ErrInsufficientStock  = errors.New("merchant is out of stock")
	ErrMerchantRefuses    = errors.New("merchant refuses to trade")

	// Conflict
	ErrConflict       = errors.New("conflict")
	ErrAlreadyPending = errors.New("chunk generation already pending")
	ErrAlreadyUnlocked = errors.New("skill already unlocked")

	// Generation / LLM transport
	ErrGenerationFailed = errors.New("topology generation failed")
	ErrTransportFailed  = errors.New("transport failed")
	ErrParseFailed      = errors.New("could not parse model reply")
	ErrNoAPIKey         = errors.New("no model api key configured")

	// Control flow
	ErrCancelled = errors.New("operation cancelled")
	ErrTimeout   = errors.New("operation timed out")
)
