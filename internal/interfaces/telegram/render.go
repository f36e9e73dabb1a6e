package telegram

import (
	"fmt"
	"strings"

	"traderops/internal/entities"
	"traderops/internal/repository"
	"traderops/internal/usecases"
)

func periodLabel(p usecases.Period) string {
	switch p {
	case usecases.PeriodDay:
		return "today"
	case usecases.PeriodWeek:
		return "the last 7 days"
	case usecases.PeriodMonth:
		return "the last 30 days"
	default:
		return "all time"
	}
}

func formatWorkerStats(stats *usecases.WorkerStats, p usecases.Period) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Your profit for %s:\n\n", periodLabel(p))
	if len(stats.ByDirection) == 0 {
		sb.WriteString("No entries in this period.\n")
	}
	for _, sum := range stats.ByDirection {
		fmt.Fprintf(&sb, "%s: $%.2f\n", sum.Direction, sum.Total)
	}
	fmt.Fprintf(&sb, "\nTotal: $%.2f", stats.Total)
	return sb.String()
}

func formatDetailedStats(details []repository.DirectionDetail, p usecases.Period) string {
	if len(details) == 0 {
		return fmt.Sprintf("No entries for %s.", periodLabel(p))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "🛠 By direction, %s:\n\n", periodLabel(p))
	for _, d := range details {
		fmt.Fprintf(&sb, "%s: $%.2f (%d entries)\n", d.Direction, d.Total, d.Count)
	}
	return sb.String()
}

func formatRatingRows(title string, rows []repository.RatingRow) string {
	if len(rows) == 0 {
		return title + "\n\nNothing to show yet."
	}
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for i, row := range rows {
		fmt.Fprintf(&sb, "%d. %s — $%.2f\n", i+1, row.Name, row.Total)
	}
	return sb.String()
}

func formatDirection(d *entities.Direction) string {
	var sb strings.Builder
	sb.WriteString("🤖 " + d.Name)
	if d.Description != "" {
		sb.WriteString("\n\n" + d.Description)
	}
	if d.Link != "" {
		sb.WriteString("\n\n" + d.Link)
	}
	return sb.String()
}

func formatGlobalStats(g *repository.GlobalStats) string {
	return fmt.Sprintf(
		"📊 Global statistics:\n\nTotal profit: $%.2f\nWorkers: %d\nTeams: %d\nProfit entries: %d",
		g.TotalProfit, g.Workers, g.Teams, g.Entries)
}

func formatWorkerList(workers []entities.User) string {
	if len(workers) == 0 {
		return "No workers registered."
	}
	var sb strings.Builder
	sb.WriteString("📋 Workers:\n\n")
	for _, w := range workers {
		line := w.Name
		if w.Direction != "" {
			line += " (" + w.Direction + ")"
		}
		sb.WriteString("- " + line + "\n")
	}
	return sb.String()
}

func formatTeamSummary(name string, total float64, memberNames string) string {
	return fmt.Sprintf("Team: %s\nProfit: $%.2f\nWorkers: %s", name, total, memberNames)
}

const helpText = `Use the keyboard buttons to navigate.

Main functions:
📊 My Stats — your profit entries by period
🏆 Rating — worker and team leaderboards
🤖 Bots — the direction catalog
👥 My Team — your team's info
⚙️ Settings — pick your working direction

For admins:
🛠 Admin Panel — manage teams, workers and profit

Commands:
/start — restart the bot
/help — this message`
