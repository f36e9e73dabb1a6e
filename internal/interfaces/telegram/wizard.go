package telegram

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"traderops/internal/infrastructure"
)

// Wizard tags.
const (
	WizardAddProfit    = "add_profit"
	WizardCreateTeam   = "create_team"
	WizardAddWorker    = "add_worker"
	WizardDeleteWorker = "delete_worker"
	WizardMoveWorker   = "move_worker"
	WizardEditTeam     = "edit_team"
)

// Wizard steps. Validation failures re-prompt the same step; only a valid
// input advances, and only the final step writes to the store.
const (
	StepSelectWorker    = "select_worker"
	StepSelectDirection = "select_direction"
	StepEnterAmount     = "enter_amount"
	StepEnterComment    = "enter_comment"
	StepEnterName       = "enter_name"
	StepEnterTelegramID = "enter_telegram_id"
	StepSelectLeader    = "select_leader"
	StepSelectTeam      = "select_team"
	StepChooseAction    = "choose_action"
)

// handleWizard validates the wizard context on every step. A missing or
// unrecognized tag/step pair resets to the admin menu so nobody gets stuck
// with stale wizard state.
func (r *Router) handleWizard(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	w := session.Wizard
	if w == nil {
		return r.resetToAdminMenu(session, "That action is no longer active.")
	}

	switch w.Kind {
	case WizardAddProfit:
		return r.wizardAddProfit(ctx, session, text)
	case WizardCreateTeam:
		return r.wizardCreateTeam(ctx, session, text)
	case WizardAddWorker:
		return r.wizardAddWorker(ctx, session, text)
	case WizardDeleteWorker:
		return r.wizardDeleteWorker(ctx, session, text)
	case WizardMoveWorker:
		return r.wizardMoveWorker(ctx, session, text)
	case WizardEditTeam:
		return r.wizardEditTeam(ctx, session, text)
	}

	return r.resetToAdminMenu(session, "That action is no longer active.")
}

func (r *Router) resetToAdminMenu(session *infrastructure.Session, text string) []Reply {
	session.ClearWizard()
	session.State = StateAdminMenu
	return reply(text, adminMenuKeyboard())
}

func (r *Router) wizardAddProfit(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	w := session.Wizard
	switch w.Step {
	case StepSelectWorker:
		workers, err := r.users.GetWorkers(ctx)
		if err != nil {
			r.logger.Error("load workers", "error", err)
			return reply(msgGenericError, nil)
		}
		worker := matchUserByName(workers, text)
		if worker == nil {
			return reply("Pick a worker from the keyboard.", nil)
		}
		w.WorkerID = worker.ID
		w.WorkerChat = worker.TelegramID
		w.Name = worker.Name

		directions, err := r.directions.GetAll(ctx)
		if err != nil {
			r.logger.Error("load directions", "error", err)
			return reply(msgGenericError, nil)
		}
		if len(directions) == 0 {
			return r.resetToAdminMenu(session, "No directions available — add one to the catalog first.")
		}
		w.Step = StepSelectDirection
		return reply("Pick a direction:", namesKeyboard(directionNames(directions)))

	case StepSelectDirection:
		direction, err := r.directions.GetByName(ctx, text)
		if err != nil {
			r.logger.Error("load direction", "name", text, "error", err)
			return reply(msgGenericError, nil)
		}
		if direction == nil {
			return reply("Pick a direction from the keyboard.", nil)
		}
		w.Direction = direction.Name
		w.Step = StepEnterAmount
		return reply("Enter the amount (e.g. 150.50):", backKeyboard())

	case StepEnterAmount:
		amount, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) {
			return reply("That doesn't look like a number. Enter the amount:", nil)
		}
		w.Amount = amount
		w.Step = StepEnterComment
		return reply(`Add a comment, or press "-" to skip:`, commentKeyboard())

	case StepEnterComment:
		comment := text
		if comment == BtnSkipComment {
			comment = ""
		}
		// Re-validate against the live store: the worker may be gone by now.
		worker, err := r.users.GetByID(ctx, w.WorkerID)
		if err != nil {
			r.logger.Error("load worker", "user_id", w.WorkerID, "error", err)
			return reply(msgGenericError, nil)
		}
		if worker == nil {
			return r.resetToAdminMenu(session, "That worker no longer exists.")
		}
		if err := r.adminSvc.AccrueProfit(ctx, worker, w.Direction, w.Amount, comment); err != nil {
			r.logger.Error("accrue profit", "user_id", worker.ID, "error", err)
			return r.resetToAdminMenu(session, "Could not record the profit. Nothing was saved.")
		}
		return r.resetToAdminMenu(session,
			fmt.Sprintf("✅ $%.2f (%s) recorded for %s.", w.Amount, w.Direction, worker.Name))
	}

	return r.resetToAdminMenu(session, "That action is no longer active.")
}

func (r *Router) wizardCreateTeam(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	w := session.Wizard
	switch w.Step {
	case StepEnterName:
		name := strings.TrimSpace(text)
		if name == "" {
			return reply("Team name can't be empty. Enter a name:", nil)
		}
		w.Name = name

		leaders, err := r.users.GetTeamLeaders(ctx)
		if err != nil {
			r.logger.Error("load team leaders", "error", err)
			return reply(msgGenericError, nil)
		}
		if len(leaders) == 0 {
			session.ClearWizard()
			session.State = StateAdminTeamsMenu
			return reply("No team leaders registered yet — the team was not created.", adminTeamsKeyboard())
		}
		w.Step = StepSelectLeader
		return reply("Pick a team lead:", namesKeyboard(userNames(leaders)))

	case StepSelectLeader:
		leaders, err := r.users.GetTeamLeaders(ctx)
		if err != nil {
			r.logger.Error("load team leaders", "error", err)
			return reply(msgGenericError, nil)
		}
		leader := matchUserByName(leaders, text)
		if leader == nil {
			return reply("Pick a team lead from the keyboard.", nil)
		}
		team, err := r.adminSvc.CreateTeam(ctx, w.Name, leader.ID)
		if err != nil {
			r.logger.Error("create team", "name", w.Name, "error", err)
			return r.resetToAdminMenu(session, "Could not create the team. Nothing was saved.")
		}
		return r.resetToAdminMenu(session,
			fmt.Sprintf("✅ Team %s created, led by %s.", team.Name, leader.Name))
	}

	return r.resetToAdminMenu(session, "That action is no longer active.")
}

func (r *Router) wizardAddWorker(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	w := session.Wizard
	switch w.Step {
	case StepEnterName:
		name := strings.TrimSpace(text)
		if name == "" {
			return reply("Name can't be empty. Enter the worker's name:", nil)
		}
		w.Name = name
		w.Step = StepEnterTelegramID
		return reply("Enter the worker's telegram id (a number):", backKeyboard())

	case StepEnterTelegramID:
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return reply("The telegram id must be a number. Enter it again:", nil)
		}
		w.TelegramID = id

		directions, err := r.directions.GetAll(ctx)
		if err != nil {
			r.logger.Error("load directions", "error", err)
			return reply(msgGenericError, nil)
		}
		if len(directions) == 0 {
			return r.resetToAdminMenu(session, "No directions available — add one to the catalog first.")
		}
		w.Step = StepSelectDirection
		return reply("Pick the worker's direction:", namesKeyboard(directionNames(directions)))

	case StepSelectDirection:
		direction, err := r.directions.GetByName(ctx, text)
		if err != nil {
			r.logger.Error("load direction", "name", text, "error", err)
			return reply(msgGenericError, nil)
		}
		if direction == nil {
			return reply("Pick a direction from the keyboard.", nil)
		}
		w.Direction = direction.Name

		teams, err := r.teams.GetAll(ctx)
		if err != nil {
			r.logger.Error("load teams", "error", err)
			return reply(msgGenericError, nil)
		}
		if len(teams) == 0 {
			return r.resetToAdminMenu(session, "No teams yet — create one first.")
		}
		w.Step = StepSelectTeam
		return reply("Pick a team:", namesKeyboard(teamNames(teams)))

	case StepSelectTeam:
		teams, err := r.teams.GetAll(ctx)
		if err != nil {
			r.logger.Error("load teams", "error", err)
			return reply(msgGenericError, nil)
		}
		team := matchTeamByName(teams, text)
		if team == nil {
			return reply("Pick a team from the keyboard.", nil)
		}
		worker, err := r.adminSvc.AddWorker(ctx, w.Name, w.TelegramID, w.Direction, team.ID)
		if err != nil {
			r.logger.Error("add worker", "name", w.Name, "error", err)
			return r.resetToAdminMenu(session, "Could not add the worker. Nothing was saved.")
		}
		return r.resetToAdminMenu(session,
			fmt.Sprintf("✅ Worker %s added to %s.", worker.Name, team.Name))
	}

	return r.resetToAdminMenu(session, "That action is no longer active.")
}

func (r *Router) wizardDeleteWorker(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	w := session.Wizard
	if w.Step != StepSelectWorker {
		return r.resetToAdminMenu(session, "That action is no longer active.")
	}

	workers, err := r.users.GetWorkers(ctx)
	if err != nil {
		r.logger.Error("load workers", "error", err)
		return reply(msgGenericError, nil)
	}
	worker := matchUserByName(workers, text)
	if worker == nil {
		return reply("Pick a worker from the keyboard.", nil)
	}
	if err := r.adminSvc.DeleteWorker(ctx, worker.ID); err != nil {
		r.logger.Error("delete worker", "user_id", worker.ID, "error", err)
		return r.resetToAdminMenu(session, "Could not remove the worker.")
	}
	return r.resetToAdminMenu(session, "✅ Worker "+worker.Name+" removed.")
}

func (r *Router) wizardMoveWorker(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	w := session.Wizard
	switch w.Step {
	case StepSelectWorker:
		workers, err := r.users.GetWorkers(ctx)
		if err != nil {
			r.logger.Error("load workers", "error", err)
			return reply(msgGenericError, nil)
		}
		worker := matchUserByName(workers, text)
		if worker == nil {
			return reply("Pick a worker from the keyboard.", nil)
		}
		w.WorkerID = worker.ID
		w.Name = worker.Name

		teams, err := r.teams.GetAll(ctx)
		if err != nil {
			r.logger.Error("load teams", "error", err)
			return reply(msgGenericError, nil)
		}
		if len(teams) == 0 {
			return r.resetToAdminMenu(session, "No teams yet — create one first.")
		}
		w.Step = StepSelectTeam
		return reply("Pick the destination team:", namesKeyboard(teamNames(teams)))

	case StepSelectTeam:
		teams, err := r.teams.GetAll(ctx)
		if err != nil {
			r.logger.Error("load teams", "error", err)
			return reply(msgGenericError, nil)
		}
		team := matchTeamByName(teams, text)
		if team == nil {
			return reply("Pick a team from the keyboard.", nil)
		}
		if err := r.adminSvc.MoveWorker(ctx, w.WorkerID, team.ID); err != nil {
			r.logger.Error("move worker", "user_id", w.WorkerID, "team_id", team.ID, "error", err)
			return r.resetToAdminMenu(session, "Could not move the worker.")
		}
		return r.resetToAdminMenu(session,
			fmt.Sprintf("✅ %s moved to %s.", w.Name, team.Name))
	}

	return r.resetToAdminMenu(session, "That action is no longer active.")
}

func (r *Router) wizardEditTeam(ctx context.Context, session *infrastructure.Session, text string) []Reply {
	w := session.Wizard
	switch w.Step {
	case StepSelectTeam:
		teams, err := r.teams.GetAll(ctx)
		if err != nil {
			r.logger.Error("load teams", "error", err)
			return reply(msgGenericError, nil)
		}
		team := matchTeamByName(teams, text)
		if team == nil {
			return reply("Pick a team from the keyboard.", nil)
		}
		w.TeamID = team.ID
		w.Name = team.Name
		w.Step = StepChooseAction
		return reply("Team "+team.Name+" — choose an action:", editTeamKeyboard())

	case StepChooseAction:
		switch text {
		case BtnReassignLeader:
			leaders, err := r.users.GetTeamLeaders(ctx)
			if err != nil {
				r.logger.Error("load team leaders", "error", err)
				return reply(msgGenericError, nil)
			}
			if len(leaders) == 0 {
				return r.resetToAdminMenu(session, "No team leaders registered yet.")
			}
			w.Step = StepSelectLeader
			return reply("Pick the new team lead:", namesKeyboard(userNames(leaders)))

		case BtnDeleteTeam:
			if err := r.adminSvc.DeleteTeam(ctx, w.TeamID); err != nil {
				r.logger.Error("delete team", "team_id", w.TeamID, "error", err)
				return r.resetToAdminMenu(session, "Could not delete the team.")
			}
			return r.resetToAdminMenu(session, "✅ Team "+w.Name+" deleted. Its members are now unassigned.")
		}
		return reply("Pick an action from the keyboard.", nil)

	case StepSelectLeader:
		leaders, err := r.users.GetTeamLeaders(ctx)
		if err != nil {
			r.logger.Error("load team leaders", "error", err)
			return reply(msgGenericError, nil)
		}
		leader := matchUserByName(leaders, text)
		if leader == nil {
			return reply("Pick a team lead from the keyboard.", nil)
		}
		if err := r.adminSvc.ReassignLeader(ctx, w.TeamID, leader.ID); err != nil {
			r.logger.Error("reassign leader", "team_id", w.TeamID, "error", err)
			return r.resetToAdminMenu(session, "Could not reassign the team lead.")
		}
		return r.resetToAdminMenu(session,
			fmt.Sprintf("✅ %s now leads %s.", leader.Name, w.Name))
	}

	return r.resetToAdminMenu(session, "That action is no longer active.")
}
