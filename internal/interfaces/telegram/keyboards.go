package telegram

// Keyboard grids per state. Catalog-driven keyboards (workers, teams,
// directions) are rebuilt from the store on every render so admin edits are
// visible immediately.

func mainMenuKeyboard(isAdmin bool) [][]string {
	keyboard := [][]string{
		{BtnMyStats, BtnRating},
		{BtnBots, BtnMyTeam},
		{BtnSettings, BtnMainMenu},
		{BtnHelp},
	}
	if isAdmin {
		keyboard = append(keyboard, []string{BtnAdminPanel})
	}
	return keyboard
}

func statsMenuKeyboard(privileged bool) [][]string {
	keyboard := [][]string{
		{BtnDay, BtnWeek},
		{BtnMonth, BtnAllTime},
		{BtnByDirection, BtnRefresh},
	}
	if privileged {
		keyboard = append(keyboard, []string{BtnTeamStats, BtnWorkerDetail})
	}
	return append(keyboard, []string{BtnBack})
}

func ratingMenuKeyboard() [][]string {
	return [][]string{
		{BtnRatingWorkers, BtnRatingTeams},
		{BtnDay, BtnWeek},
		{BtnMonth, BtnAllTime},
		{BtnBack},
	}
}

func teamMenuKeyboard() [][]string {
	return [][]string{
		{BtnTeamStatistics, BtnWorkerList},
		{BtnBack},
	}
}

func settingsMenuKeyboard() [][]string {
	return [][]string{
		{BtnPickDirection},
		{BtnBack},
	}
}

func adminMenuKeyboard() [][]string {
	return [][]string{
		{BtnManageTeams, BtnManageWorkers},
		{BtnAccrueProfit, BtnGlobalStats},
		{BtnBack},
	}
}

func adminTeamsKeyboard() [][]string {
	return [][]string{
		{BtnCreateTeam, BtnEditTeam},
		{BtnBack},
	}
}

func adminWorkersKeyboard() [][]string {
	return [][]string{
		{BtnAddWorker, BtnDeleteWorker},
		{BtnMoveWorker, BtnListWorkers},
		{BtnBack},
	}
}

func editTeamKeyboard() [][]string {
	return [][]string{
		{BtnReassignLeader, BtnDeleteTeam},
		{BtnBack},
	}
}

func commentKeyboard() [][]string {
	return [][]string{
		{BtnSkipComment},
		{BtnBack},
	}
}

func backKeyboard() [][]string {
	return [][]string{{BtnBack}}
}

// namesKeyboard lays out catalog names two per row with a trailing Back row.
func namesKeyboard(names []string) [][]string {
	var keyboard [][]string
	var row []string
	for _, name := range names {
		row = append(row, name)
		if len(row) == 2 {
			keyboard = append(keyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		keyboard = append(keyboard, row)
	}
	return append(keyboard, []string{BtnBack})
}
