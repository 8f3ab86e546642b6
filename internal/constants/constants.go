package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "WILDSPIRE_CONFIG"
	EnvDBPath              = "WILDSPIRE_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Session / Cookie names
	CookieSessionName = "w_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteSpecies            = "/species"
	RouteAbilities          = "/abilities"
	RouteElements           = "/elements"
	RoutePublicBattles      = "/public-battles"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RouteTamerStats         = "/tamer-stats"
	RouteRoster             = "/roster"
	RouteBattles            = "/battles"
	RouteBattlesJoin        = "/battles/join"
	RouteBattleByCode       = "/battles/:battleCode"
	RouteBattleStart        = "/battles/:battleCode/start"
	RouteBattleEnd          = "/battles/:battleCode/end"
	RouteBattleLeave        = "/battles/:battleCode/leave"
	RouteBattleAction       = "/battles/:battleCode/action"
	RouteBattleAdvance      = "/battles/:battleCode/advance"
	RouteVersion            = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidBattleCode      = "Invalid battle code"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedFetchSpecies     = "Failed to fetch species"
	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeBattle     = "Failed to encode battle"
	ErrFailedFetchStats       = "Failed to fetch stats"

	ErrFailedCreateBattle             = "Failed to create battle"
	ErrBattleNameExceeds              = "Battle name exceeds 32 characters"
	ErrDescriptionExceeds             = "Description exceeds 256 characters"
	ErrBattleFull                     = "Battle is full"
	ErrNotEnoughTamers                = "Not enough tamers to start the battle"
	ErrBothTamersMustPickRosters      = "Both tamers must pick rosters before starting"
	ErrBattleAlreadyStartingOrStarted = "Battle is already starting or started"
	ErrFailedUpdateBattle             = "Failed to update battle"
	ErrFailedEndBattle                = "Failed to end battle"
	ErrFailedRemoveTamer              = "Failed to remove tamer"
	ErrTamerNotInThisBattle           = "Tamer not in this battle"
	ErrCannotLeaveAfterBattleStarted  = "Cannot leave after the battle has started"

	ErrFailedStoreAction           = "Failed to store action"
	ErrBattleNotInProgress         = "Battle is not in progress"
	ErrActionsLockedResolvingRound = "Actions are locked; resolving current round"
	ErrTamerNotInBattle            = "Tamer not in battle"
	ErrNoActiveCreature            = "No active creature"
	ErrFailedAdvanceRound          = "Failed to advance round"
	ErrNoActionsSubmitted          = "No actions submitted for this round"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
	ErrEmailRequired  = "Email required"
	ErrInvalidRoster  = "Invalid roster"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldTamerIdx = "tamer_index"
	LogFieldAbility  = "ability"
	LogFieldName     = "name"
	LogFieldAddr     = "addr"
)
