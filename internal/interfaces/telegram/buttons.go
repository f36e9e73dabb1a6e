package telegram

// Button labels. The reply-keyboard transport echoes the pressed label back
// as plain text, so these double as the state machine's input alphabet.
const (
	BtnMyStats    = "📊 My Stats"
	BtnRating     = "🏆 Rating"
	BtnBots       = "🤖 Bots"
	BtnMyTeam     = "👥 My Team"
	BtnSettings   = "⚙️ Settings"
	BtnMainMenu   = "🏠 Main Menu"
	BtnHelp       = "❓ Help"
	BtnAdminPanel = "🛠 Admin Panel"
	BtnBack       = "⬅️ Back"

	BtnDay         = "📅 Day"
	BtnWeek        = "📅 Week"
	BtnMonth       = "📅 Month"
	BtnAllTime     = "📅 All Time"
	BtnByDirection = "🛠 By Direction"
	BtnRefresh     = "🔄 Refresh"

	BtnTeamStats    = "📈 Team Stats"
	BtnWorkerDetail = "👤 Worker Detail"

	BtnRatingWorkers = "👤 Workers"
	BtnRatingTeams   = "👥 Teams"

	BtnTeamStatistics = "📊 Team Statistics"
	BtnWorkerList     = "👤 Worker List"

	BtnPickDirection = "✏️ Pick Direction"

	BtnManageTeams   = "👥 Manage Teams"
	BtnManageWorkers = "👤 Manage Workers"
	BtnAccrueProfit  = "💰 Accrue Profit"
	BtnGlobalStats   = "📊 Global Statistics"

	BtnCreateTeam = "➕ Create Team"
	BtnEditTeam   = "✏️ Edit Team"

	BtnAddWorker    = "➕ Add Worker"
	BtnDeleteWorker = "🗑 Delete Worker"
	BtnMoveWorker   = "🔀 Move Worker"
	BtnListWorkers  = "📋 List Workers"

	BtnReassignLeader = "👑 Reassign Leader"
	BtnDeleteTeam     = "🗑 Delete Team"

	// Sentinel for "no comment" in the add-profit wizard.
	BtnSkipComment = "-"
)
