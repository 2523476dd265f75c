package apperror

const (
	CodeInvalidInput    = "INPUT_001"
	CodePayloadTooLarge = "INPUT_002"

	CodeInvalidBet          = "MINES_001"
	CodeInvalidMineCount    = "MINES_002"
	CodeInsufficientBalance = "MINES_003"
	CodeNoActiveGame        = "MINES_004"
	CodeTileOutOfRange      = "MINES_005"
	CodeTileAlreadyRevealed = "MINES_006"
	CodeGameInProgress      = "MINES_007"
	CodeConflict            = "MINES_008"

	CodeInvalidCredentials = "AUTH_001"
	CodeInvalidToken       = "AUTH_003"

	CodeRateLimitExceeded = "RATE_001"

	CodeInternal         = "SYS_001"
	CodeStoreUnavailable = "SYS_002"
)
