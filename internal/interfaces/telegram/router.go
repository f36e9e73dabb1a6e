package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"traderops/internal/entities"
	"traderops/internal/infrastructure"
	"traderops/internal/usecases"
)

// Conversation states. Flat enumeration: wizards park the chat in
// StateAdminAction and carry their own tag + step in the session.
const (
	StateAwaitingName      = "awaiting_name"
	StateMainMenu          = "main_menu"
	StateStatsMenu         = "stats_menu"
	StateStatsWorkerSelect = "stats_worker_select"
	StateRatingMenu        = "rating_menu"
	StateBotsMenu          = "bots_menu"
	StateTeamMenu          = "team_menu"
	StateSettingsMenu      = "settings_menu"
	StateSettingsDirection = "settings_direction"
	StateAdminMenu         = "admin_menu"
	StateAdminTeamsMenu    = "admin_teams_menu"
	StateAdminWorkersMenu  = "admin_workers_menu"
	StateAdminAction       = "admin_action"
)

const promptPickItem = "Pick a menu item."
const msgGenericError = "Something went wrong. Please try again."

// Router is the conversation state machine: it maps (chat, state, text) to
// a transition, at most one store action, and a list of rendering
// instructions.
type Router struct {
	sessions   *infrastructure.SessionManager
	users      usecases.UserStore
	teams      usecases.TeamStore
	directions usecases.DirectionStore
	userSvc    *usecases.UserService
	adminSvc   *usecases.AdminService
	statsSvc   *usecases.StatsService
	logger     *slog.Logger
}

func NewRouter(
	sessions *infrastructure.SessionManager,
	users usecases.UserStore,
	teams usecases.TeamStore,
	directions usecases.DirectionStore,
	userSvc *usecases.UserService,
	adminSvc *usecases.AdminService,
	statsSvc *usecases.StatsService,
	logger *slog.Logger,
) *Router {
	return &Router{
		sessions:   sessions,
		users:      users,
		teams:      teams,
		directions: directions,
		userSvc:    userSvc,
		adminSvc:   adminSvc,
		statsSvc:   statsSvc,
		logger:     logger,
	}
}

// HandleStart implements /start: known users land in the main menu,
// newcomers are asked for a name. Any pending wizard is discarded.
func (r *Router) HandleStart(ctx context.Context, chatID int64) []Reply {
	session := r.sessions.GetOrCreateSession(chatID)
	session.Lock()
	defer session.Unlock()

	session.ClearWizard()

	user, err := r.users.GetByTelegramID(ctx, chatID)
	if err != nil {
		r.logger.Error("lookup user on /start", "chat_id", chatID, "error", err)
		return reply(msgGenericError, nil)
	}
	if user == nil {
		session.State = StateAwaitingName
		return []Reply{{Text: "Welcome! Enter your name to register.", RemoveKeyboard: true}}
	}

	session.State = StateMainMenu
	return reply("Welcome back!", mainMenuKeyboard(user.Role == entities.RoleAdmin))
}

// HandleHelp implements /help and the help button.
func (r *Router) HandleHelp() []Reply {
	return reply(helpText, nil)
}

// Handle processes one inbound text message for a chat. Handling of the
// same chat is serialized by the session lock; different chats run
// concurrently.
func (r *Router) Handle(ctx context.Context, chatID int64, text string) []Reply {
	session := r.sessions.GetOrCreateSession(chatID)
	session.Lock()
	defer session.Unlock()

	text = strings.TrimSpace(text)

	if session.State == StateAwaitingName {
		return r.handleRegistration(ctx, session, text)
	}

	user, err := r.users.GetByTelegramID(ctx, chatID)
	if err != nil {
		r.logger.Error("lookup user", "chat_id", chatID, "error", err)
		return reply(msgGenericError, nil)
	}
	if user == nil {
		// First contact without /start, or a session created before the
		// user row existed. Fall back to registration.
		session.ClearWizard()
		session.State = StateAwaitingName
		return []Reply{{Text: "Welcome! Enter your name to register.", RemoveKeyboard: true}}
	}
	if session.State == "" {
		session.State = StateMainMenu
	}

	// Global navigation beats everything, including wizards.
	switch text {
	case BtnMainMenu:
		return r.showMainMenu(session, user, "Main menu:")
	case BtnBack:
		return r.handleBack(session, user)
	}

	if session.State == StateAdminAction {
		return r.handleWizard(ctx, session, text)
	}

	// Top-level menu entries work from every menu state; re-pressing the
	// one matching the current state just re-renders it.
	if replies, ok := r.handleTopLevel(ctx, session, user, text); ok {
		return replies
	}

	switch session.State {
	case StateStatsMenu:
		return r.handleStatsMenu(ctx, session, user, text)
	case StateStatsWorkerSelect:
		return r.handleStatsWorkerSelect(ctx, session, user, text)
	case StateRatingMenu:
		return r.handleRatingMenu(ctx, session, text)
	case StateBotsMenu:
		return r.handleBotsMenu(ctx, text)
	case StateTeamMenu:
		return r.handleTeamMenu(ctx, session, user, text)
	case StateSettingsMenu:
		return r.handleSettingsMenu(ctx, session, text)
	case StateSettingsDirection:
		return r.handleSettingsDirection(ctx, session, chatID, text)
	case StateAdminMenu:
		return r.handleAdminMenu(ctx, session, text)
	case StateAdminTeamsMenu:
		return r.handleAdminTeamsMenu(ctx, session, text)
	case StateAdminWorkersMenu:
		return r.handleAdminWorkersMenu(ctx, session, text)
	}

	return r.rerenderCurrent(ctx, session, user)
}

func (r *Router) handleRegistration(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	user, err := r.userSvc.Register(ctx, session.ChatID, text)
	if errors.Is(err, usecases.ErrEmptyName) {
		return reply("Name can't be empty. Enter your name:", nil)
	}
	if err != nil {
		r.logger.Error("register user", "chat_id", session.ChatID, "error", err)
		return reply(msgGenericError, nil)
	}

	session.State = StateMainMenu
	roleName := "worker"
	if user.Role == entities.RoleAdmin {
		roleName = "administrator"
	}
	return reply(
		"Thanks, "+user.Name+"! You are registered as "+roleName+".",
		mainMenuKeyboard(user.Role == entities.RoleAdmin))
}

func (r *Router) showMainMenu(session *infrastructure.Session, user *entities.User, text string) []Reply {
	session.ClearWizard()
	session.State = StateMainMenu
	return reply(text, mainMenuKeyboard(user.Role == entities.RoleAdmin))
}

// handleBack climbs one level: wizard → admin menu, admin submenu → admin
// menu, selection sub-state → its menu, any top-level menu → main menu.
func (r *Router) handleBack(session *infrastructure.Session, user *entities.User) []Reply {
	switch session.State {
	case StateAdminAction:
		session.ClearWizard()
		session.State = StateAdminMenu
		return reply("Admin panel:", adminMenuKeyboard())
	case StateAdminTeamsMenu, StateAdminWorkersMenu:
		session.State = StateAdminMenu
		return reply("Admin panel:", adminMenuKeyboard())
	case StateStatsWorkerSelect:
		session.State = StateStatsMenu
		return reply("Pick a period:", statsMenuKeyboard(user.IsPrivileged()))
	case StateSettingsDirection:
		session.State = StateSettingsMenu
		return reply("Settings:", settingsMenuKeyboard())
	default:
		return r.showMainMenu(session, user, "Main menu:")
	}
}

// handleTopLevel serves the main-menu entries, reachable from any menu
// state. Returns ok=false when the text is not a top-level button.
func (r *Router) handleTopLevel(ctx context.Context, session *infrastructure.Session, user *entities.User, text string) ([]Reply, bool) {
	switch text {
	case BtnMyStats:
		session.State = StateStatsMenu
		return reply("Pick a period:", statsMenuKeyboard(user.IsPrivileged())), true

	case BtnRating:
		session.State = StateRatingMenu
		return reply("Pick a rating and a period:", ratingMenuKeyboard()), true

	case BtnBots:
		return r.showBotsMenu(ctx, session), true

	case BtnMyTeam:
		return r.showMyTeam(ctx, session, user), true

	case BtnSettings:
		session.State = StateSettingsMenu
		return reply("Settings:", settingsMenuKeyboard()), true

	case BtnHelp:
		return r.HandleHelp(), true

	case BtnAdminPanel:
		if user.Role != entities.RoleAdmin {
			return reply("Access denied.", nil), true
		}
		session.State = StateAdminMenu
		return reply("Admin panel:", adminMenuKeyboard()), true
	}
	return nil, false
}

func (r *Router) showBotsMenu(ctx context.Context, session *infrastructure.Session) []Reply {
	directions, err := r.directions.GetAll(ctx)
	if err != nil {
		r.logger.Error("load directions", "error", err)
		return reply(msgGenericError, nil)
	}
	session.State = StateBotsMenu
	if len(directions) == 0 {
		return reply("No bots available yet.", backKeyboard())
	}
	return reply("Pick a bot:", namesKeyboard(directionNames(directions)))
}

func (r *Router) showMyTeam(ctx context.Context, session *infrastructure.Session, user *entities.User) []Reply {
	if user.TeamID == nil {
		return reply("You are not in a team.", nil)
	}
	team, err := r.teams.GetByID(ctx, *user.TeamID)
	if err != nil {
		r.logger.Error("load team", "team_id", *user.TeamID, "error", err)
		return reply(msgGenericError, nil)
	}
	if team == nil {
		return reply("Team info is unavailable.", nil)
	}

	if !user.IsPrivileged() {
		leaderName := "not assigned"
		if team.LeaderID != nil {
			leader, err := r.users.GetByID(ctx, *team.LeaderID)
			if err == nil && leader != nil {
				leaderName = leader.Name
			}
		}
		return reply("Team: "+team.Name+"\nTeam lead: "+leaderName, nil)
	}

	total, err := r.statsSvc.TeamTotal(ctx, team.ID)
	if err != nil {
		r.logger.Error("team total", "team_id", team.ID, "error", err)
		return reply(msgGenericError, nil)
	}
	members, err := r.users.GetTeamMembers(ctx, team.ID)
	if err != nil {
		r.logger.Error("team members", "team_id", team.ID, "error", err)
		return reply(msgGenericError, nil)
	}

	names := "none"
	if len(members) > 0 {
		names = strings.Join(userNames(members), ", ")
	}
	session.State = StateTeamMenu
	return []Reply{
		{Text: formatTeamSummary(team.Name, total, names)},
		{Text: "Choose an action:", Keyboard: teamMenuKeyboard()},
	}
}

func (r *Router) handleStatsMenu(ctx context.Context, session *infrastructure.Session, user *entities.User, text string) []Reply {
	if p, ok := periodForButton(text); ok {
		session.Period = string(p)
		stats, err := r.statsSvc.WorkerStats(ctx, user.ID, p)
		if err != nil {
			r.logger.Error("worker stats", "user_id", user.ID, "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatWorkerStats(stats, p), nil)
	}

	switch text {
	case BtnRefresh:
		p := currentPeriod(session)
		stats, err := r.statsSvc.WorkerStats(ctx, user.ID, p)
		if err != nil {
			r.logger.Error("worker stats", "user_id", user.ID, "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatWorkerStats(stats, p), nil)

	case BtnByDirection:
		p := currentPeriod(session)
		details, err := r.statsSvc.WorkerDetailedStats(ctx, user.ID, p)
		if err != nil {
			r.logger.Error("worker detailed stats", "user_id", user.ID, "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatDetailedStats(details, p), nil)

	case BtnTeamStats:
		if !user.IsPrivileged() {
			return reply("Access denied.", nil)
		}
		if user.TeamID == nil {
			return reply("You are not assigned to a team.", nil)
		}
		p := currentPeriod(session)
		rows, err := r.statsSvc.TeamStats(ctx, *user.TeamID, p)
		if err != nil {
			r.logger.Error("team stats", "team_id", *user.TeamID, "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatRatingRows("📈 Team stats for "+periodLabel(p)+":", rows), nil)

	case BtnWorkerDetail:
		if !user.IsPrivileged() {
			return reply("Access denied.", nil)
		}
		if user.TeamID == nil {
			return reply("You are not assigned to a team.", nil)
		}
		members, err := r.users.GetTeamMembers(ctx, *user.TeamID)
		if err != nil {
			r.logger.Error("team members", "team_id", *user.TeamID, "error", err)
			return reply(msgGenericError, nil)
		}
		if len(members) == 0 {
			return reply("Your team has no members yet.", nil)
		}
		session.State = StateStatsWorkerSelect
		return reply("Pick a worker:", namesKeyboard(userNames(members)))
	}

	return reply(promptPickItem, statsMenuKeyboard(user.IsPrivileged()))
}

func (r *Router) handleStatsWorkerSelect(ctx context.Context, session *infrastructure.Session, user *entities.User, text string) []Reply {
	if user.TeamID == nil {
		session.State = StateStatsMenu
		return reply("You are not assigned to a team.", statsMenuKeyboard(user.IsPrivileged()))
	}
	members, err := r.users.GetTeamMembers(ctx, *user.TeamID)
	if err != nil {
		r.logger.Error("team members", "team_id", *user.TeamID, "error", err)
		return reply(msgGenericError, nil)
	}
	member := matchUserByName(members, text)
	if member == nil {
		return reply("Pick a worker from the keyboard.", nil)
	}

	p := currentPeriod(session)
	details, err := r.statsSvc.WorkerDetailedStats(ctx, member.ID, p)
	if err != nil {
		r.logger.Error("worker detailed stats", "user_id", member.ID, "error", err)
		return reply(msgGenericError, nil)
	}

	session.State = StateStatsMenu
	return reply(
		"👤 "+member.Name+"\n\n"+formatDetailedStats(details, p),
		statsMenuKeyboard(user.IsPrivileged()))
}

func (r *Router) handleRatingMenu(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	switch text {
	case BtnRatingWorkers:
		session.RatingKind = "workers"
	case BtnRatingTeams:
		session.RatingKind = "teams"
	default:
		if p, ok := periodForButton(text); ok {
			session.Period = string(p)
		} else {
			return reply(promptPickItem, ratingMenuKeyboard())
		}
	}

	p := currentPeriod(session)
	if session.RatingKind == "teams" {
		rows, err := r.statsSvc.TeamsRating(ctx, p)
		if err != nil {
			r.logger.Error("teams rating", "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatRatingRows("🏆 Team rating for "+periodLabel(p)+":", rows), nil)
	}

	rows, err := r.statsSvc.WorkersRating(ctx, p)
	if err != nil {
		r.logger.Error("workers rating", "error", err)
		return reply(msgGenericError, nil)
	}
	return reply(formatRatingRows("🏆 Worker rating for "+periodLabel(p)+":", rows), nil)
}

func (r *Router) handleBotsMenu(ctx context.Context, text string) []Reply {
	direction, err := r.directions.GetByName(ctx, text)
	if err != nil {
		r.logger.Error("load direction", "name", text, "error", err)
		return reply(msgGenericError, nil)
	}
	if direction == nil {
		return reply("Pick a bot from the keyboard.", nil)
	}
	return reply(formatDirection(direction), nil)
}

func (r *Router) handleTeamMenu(ctx context.Context, session *infrastructure.Session, user *entities.User, text string) []Reply {
	if user.TeamID == nil {
		return r.showMainMenu(session, user, "You are not in a team.")
	}

	switch text {
	case BtnTeamStatistics:
		rows, err := r.statsSvc.TeamStats(ctx, *user.TeamID, usecases.PeriodAll)
		if err != nil {
			r.logger.Error("team stats", "team_id", *user.TeamID, "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatRatingRows("📊 Team stats, all time:", rows), nil)

	case BtnWorkerList:
		members, err := r.users.GetTeamMembers(ctx, *user.TeamID)
		if err != nil {
			r.logger.Error("team members", "team_id", *user.TeamID, "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatWorkerList(members), nil)
	}

	return reply(promptPickItem, teamMenuKeyboard())
}

func (r *Router) handleSettingsMenu(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	if text == BtnPickDirection {
		directions, err := r.directions.GetAll(ctx)
		if err != nil {
			r.logger.Error("load directions", "error", err)
			return reply(msgGenericError, nil)
		}
		if len(directions) == 0 {
			return reply("No directions available yet.", nil)
		}
		session.State = StateSettingsDirection
		return reply("Pick your direction:", namesKeyboard(directionNames(directions)))
	}
	return reply(promptPickItem, settingsMenuKeyboard())
}

func (r *Router) handleSettingsDirection(ctx context.Context, session *infrastructure.Session, chatID int64, text string) []Reply {
	err := r.userSvc.SetDirection(ctx, chatID, text)
	if errors.Is(err, usecases.ErrUnknownDirection) {
		return reply("Pick a direction from the keyboard.", nil)
	}
	if err != nil {
		r.logger.Error("set direction", "chat_id", chatID, "error", err)
		return reply(msgGenericError, nil)
	}
	session.State = StateSettingsMenu
	return reply("✅ Direction set to "+text+".", settingsMenuKeyboard())
}

func (r *Router) handleAdminMenu(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	switch text {
	case BtnManageTeams:
		session.State = StateAdminTeamsMenu
		return reply("Team management:", adminTeamsKeyboard())

	case BtnManageWorkers:
		session.State = StateAdminWorkersMenu
		return reply("Worker management:", adminWorkersKeyboard())

	case BtnAccrueProfit:
		return r.startAddProfit(ctx, session)

	case BtnGlobalStats:
		global, err := r.statsSvc.Global(ctx)
		if err != nil {
			r.logger.Error("global stats", "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatGlobalStats(global), nil)
	}

	return reply(promptPickItem, adminMenuKeyboard())
}

func (r *Router) handleAdminTeamsMenu(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	switch text {
	case BtnCreateTeam:
		session.StartWizard(WizardCreateTeam, StepEnterName)
		session.State = StateAdminAction
		return reply("Enter the team name:", backKeyboard())

	case BtnEditTeam:
		teams, err := r.teams.GetAll(ctx)
		if err != nil {
			r.logger.Error("load teams", "error", err)
			return reply(msgGenericError, nil)
		}
		if len(teams) == 0 {
			return reply("No teams yet.", nil)
		}
		session.StartWizard(WizardEditTeam, StepSelectTeam)
		session.State = StateAdminAction
		return reply("Pick a team:", namesKeyboard(teamNames(teams)))
	}

	return reply(promptPickItem, adminTeamsKeyboard())
}

func (r *Router) handleAdminWorkersMenu(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	switch text {
	case BtnAddWorker:
		session.StartWizard(WizardAddWorker, StepEnterName)
		session.State = StateAdminAction
		return reply("Enter the worker's name:", backKeyboard())

	case BtnDeleteWorker:
		return r.startWorkerSelection(ctx, session, WizardDeleteWorker)

	case BtnMoveWorker:
		return r.startWorkerSelection(ctx, session, WizardMoveWorker)

	case BtnListWorkers:
		workers, err := r.users.GetWorkers(ctx)
		if err != nil {
			r.logger.Error("load workers", "error", err)
			return reply(msgGenericError, nil)
		}
		return reply(formatWorkerList(workers), nil)
	}

	return reply(promptPickItem, adminWorkersKeyboard())
}

func (r *Router) startAddProfit(ctx context.Context, session *infrastructure.Session) []Reply {
	workers, err := r.users.GetWorkers(ctx)
	if err != nil {
		r.logger.Error("load workers", "error", err)
		return reply(msgGenericError, nil)
	}
	if len(workers) == 0 {
		return reply("No workers registered yet.", nil)
	}
	session.StartWizard(WizardAddProfit, StepSelectWorker)
	session.State = StateAdminAction
	return reply("Pick a worker:", namesKeyboard(userNames(workers)))
}

func (r *Router) startWorkerSelection(ctx context.Context, session *infrastructure.Session, kind string) []Reply {
	workers, err := r.users.GetWorkers(ctx)
	if err != nil {
		r.logger.Error("load workers", "error", err)
		return reply(msgGenericError, nil)
	}
	if len(workers) == 0 {
		return reply("No workers registered yet.", nil)
	}
	session.StartWizard(kind, StepSelectWorker)
	session.State = StateAdminAction
	return reply("Pick a worker:", namesKeyboard(userNames(workers)))
}

// rerenderCurrent is the uniform fallback for unmatched input: re-show the
// current menu with a neutral prompt, no side effects.
func (r *Router) rerenderCurrent(ctx context.Context, session *infrastructure.Session, user *entities.User) []Reply {
	switch session.State {
	case StateStatsMenu:
		return reply(promptPickItem, statsMenuKeyboard(user.IsPrivileged()))
	case StateRatingMenu:
		return reply(promptPickItem, ratingMenuKeyboard())
	case StateTeamMenu:
		return reply(promptPickItem, teamMenuKeyboard())
	case StateSettingsMenu:
		return reply(promptPickItem, settingsMenuKeyboard())
	case StateAdminMenu:
		return reply(promptPickItem, adminMenuKeyboard())
	case StateAdminTeamsMenu:
		return reply(promptPickItem, adminTeamsKeyboard())
	case StateAdminWorkersMenu:
		return reply(promptPickItem, adminWorkersKeyboard())
	}
	return r.showMainMenu(session, user, promptPickItem)
}

func currentPeriod(session *infrastructure.Session) usecases.Period {
	p := usecases.Period(session.Period)
	if !p.Valid() {
		return usecases.PeriodAll
	}
	return p
}

func periodForButton(text string) (usecases.Period, bool) {
	switch text {
	case BtnDay:
		return usecases.PeriodDay, true
	case BtnWeek:
		return usecases.PeriodWeek, true
	case BtnMonth:
		return usecases.PeriodMonth, true
	case BtnAllTime:
		return usecases.PeriodAll, true
	}
	return "", false
}

func matchUserByName(users []entities.User, name string) *entities.User {
	for i := range users {
		if users[i].Name == name {
			return &users[i]
		}
	}
	return nil
}

func matchTeamByName(teams []entities.Team, name string) *entities.Team {
	for i := range teams {
		if teams[i].Name == name {
			return &teams[i]
		}
	}
	return nil
}

func userNames(users []entities.User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return names
}

func teamNames(teams []entities.Team) []string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names
}

func directionNames(directions []entities.Direction) []string {
	names := make([]string, 0, len(directions))
	for _, d := range directions {
		names = append(names, d.Name)
	}
	return names
}
