package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/dartsliga/league-system/league"
	"github.com/dartsliga/league-system/models"
)

type ExportService interface {
	// MatchReportPDF renders a completed match's card as a printable PDF.
	MatchReportPDF(ctx context.Context, matchID int) ([]byte, error)
	// StandingsPDF renders a season's table as a printable PDF.
	StandingsPDF(ctx context.Context, seasonID int) ([]byte, error)
}

type exportService struct {
	matchService     MatchService
	standingsService StandingsService
	seasonService    SeasonService
	playerService    PlayerService
}

func NewExportService(
	matchService MatchService,
	standingsService StandingsService,
	seasonService SeasonService,
	playerService PlayerService,
) ExportService {
	return &exportService{
		matchService:     matchService,
		standingsService: standingsService,
		seasonService:    seasonService,
		playerService:    playerService,
	}
}

func (s *exportService) MatchReportPDF(ctx context.Context, matchID int) ([]byte, error) {
	match, err := s.matchService.GetDetail(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusCompleted || match.Result == nil {
		return nil, ErrMatchNotCompleted
	}

	homeName := fmt.Sprintf("Team %d", match.HomeTeamID)
	awayName := fmt.Sprintf("Team %d", match.AwayTeamID)
	if match.HomeTeam != nil {
		homeName = match.HomeTeam.Name
	}
	if match.AwayTeam != nil {
		awayName = match.AwayTeam.Name
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Match Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s  vs  %s", homeName, awayName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Games %d : %d    Legs %d : %d    Points %d : %d",
		match.Result.HomeWins, match.Result.AwayWins,
		match.Result.HomeLegs, match.Result.AwayLegs,
		match.Result.HomePoints, match.Result.AwayPoints), "", 1, "C", false, 0, "")
	if match.EndTime != nil {
		pdf.CellFormat(0, 8, match.EndTime.Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	if match.Result.IsQuickResult {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, "Quick result entry, no game details recorded.", "", 1, "L", false, 0, "")
	} else {
		names, err := s.playerNames(ctx, match)
		if err != nil {
			return nil, err
		}
		s.writeGameTable(pdf, match, homeName, awayName, names)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render match report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) writeGameTable(pdf *gofpdf.Fpdf, match *models.Match, homeName, awayName string, names map[int]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 7, "Game", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, homeName, "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, awayName, "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 7, "Legs", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, game := range match.Games {
		legs := fmt.Sprintf("%d : %d", game.Result.HomeLegs, game.Result.AwayLegs)
		if game.Type != league.GameSingle {
			legs = string(game.Result.Winner)
		}
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", game.Position), "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 7, string(game.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 7, sideNames(game.Participants.Home, names), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, sideNames(game.Participants.Away, names), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, legs, "1", 1, "C", false, 0, "")
	}
}

func (s *exportService) StandingsPDF(ctx context.Context, seasonID int) ([]byte, error) {
	season, err := s.seasonService.GetByID(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	table, err := s.standingsService.GetTable(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Standings", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, season.Name, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	headers := []struct {
		label string
		width float64
	}{
		{"Pos", 12}, {"Team", 62}, {"Sp", 12}, {"S", 12}, {"SN", 12},
		{"NN", 12}, {"N", 12}, {"Legs", 22}, {"Diff", 14}, {"Pkt", 14},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, row := range table {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(62, 7, row.TeamName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", row.Played), "1", 0, "C", false, 0, "")
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", row.Won), "1", 0, "C", false, 0, "")
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", row.WonPenalty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", row.LostPenalty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", row.Lost), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 7, fmt.Sprintf("%d : %d", row.LegsFor, row.LegsAgainst), "1", 0, "C", false, 0, "")
		pdf.CellFormat(14, 7, fmt.Sprintf("%+d", row.LegDifference), "1", 0, "C", false, 0, "")
		pdf.CellFormat(14, 7, fmt.Sprintf("%d", row.Points), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render standings PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// playerNames resolves display names for both rosters of the match.
func (s *exportService) playerNames(ctx context.Context, match *models.Match) (map[int]string, error) {
	names := make(map[int]string)
	for _, teamID := range []int{match.HomeTeamID, match.AwayTeamID} {
		players, err := s.playerService.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		for _, p := range players {
			names[p.ID] = fmt.Sprintf("%s %s", p.FirstName, p.LastName)
		}
	}
	return names, nil
}

func sideNames(ids []int, names map[int]string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, fmt.Sprintf("Player %d", id))
	}
	return strings.Join(parts, " / ")
}
