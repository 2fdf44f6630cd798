package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/teams"
)

// Column aliases per logical field, in priority order. Resolution
// against the header happens once per file; the core never sees raw
// column names.
var (
	aliasesSeason    = []string{"season", "year", "schedule_season"}
	aliasesWeek      = []string{"week", "game_week", "schedule_week"}
	aliasesDate      = []string{"date", "game_date", "gameday", "schedule_date"}
	aliasesHomeTeam  = []string{"home_team", "home", "team_home"}
	aliasesAwayTeam  = []string{"away_team", "away", "visitor", "team_away"}
	aliasesHomeScore = []string{"home_score", "score_home", "home_points", "pts_home"}
	aliasesAwayScore = []string{"away_score", "score_away", "away_points", "pts_away"}
	aliasesNeutral   = []string{"neutral_site", "neutral", "is_neutral"}
	aliasesGameID    = []string{"game_id", "gid", "id"}

	aliasesBook   = []string{"book", "sportsbook", "bookmaker"}
	aliasesSpread = []string{"spread_home", "home_spread", "spread", "spread_favorite"}
	aliasesTotal  = []string{"total", "over_under", "over_under_line", "ou"}
	aliasesHomeML = []string{"moneyline_home", "home_ml", "ml_home", "home_moneyline"}
	aliasesAwayML = []string{"moneyline_away", "away_ml", "ml_away", "away_moneyline"}
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// header maps logical fields to column indexes after one pass of alias
// resolution.
type header struct {
	columns map[string]int
}

func resolveHeader(record []string) header {
	columns := make(map[string]int, len(record))
	for i, name := range record {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}
	return header{columns: columns}
}

// field returns the raw cell for the first alias present, or "".
func (h header) field(record []string, aliases []string) string {
	for _, alias := range aliases {
		if idx, ok := h.columns[alias]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
	}
	return ""
}

// LoadGames reads historical games from a CSV file, canonicalizing
// team codes and silently dropping rows that are missing required
// fields. Dropped counts are logged, never surfaced as errors: data
// quality is this boundary's concern, not the engine's.
func LoadGames(path string, logger *logrus.Logger) ([]models.Game, error) {
	if logger == nil {
		logger = logrus.New()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open games file: %w", err)
	}
	defer file.Close()

	games, dropped, err := parseGames(file)
	if err != nil {
		return nil, err
	}
	metrics.GamesDroppedTotal.Add(float64(dropped))
	logger.WithFields(logrus.Fields{
		"path":    path,
		"games":   len(games),
		"dropped": dropped,
	}).Info("Loaded historical games")
	return games, nil
}

func parseGames(r io.Reader) ([]models.Game, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse games CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	h := resolveHeader(records[0])
	games := make([]models.Game, 0, len(records)-1)
	dropped := 0

	for _, record := range records[1:] {
		season, okSeason := parseInt(h.field(record, aliasesSeason))
		week, okWeek := parseInt(h.field(record, aliasesWeek))
		homeScore, okHS := parseInt(h.field(record, aliasesHomeScore))
		awayScore, okAS := parseInt(h.field(record, aliasesAwayScore))
		home := h.field(record, aliasesHomeTeam)
		away := h.field(record, aliasesAwayTeam)

		if !okSeason || !okWeek || !okHS || !okAS || home == "" || away == "" ||
			homeScore < 0 || awayScore < 0 {
			dropped++
			continue
		}

		games = append(games, models.Game{
			GameID:    stringPtrOrNil(h.field(record, aliasesGameID)),
			Season:    season,
			Week:      week,
			Date:      parseDate(h.field(record, aliasesDate)),
			HomeTeam:  teams.Canonicalize(home),
			AwayTeam:  teams.Canonicalize(away),
			HomeScore: homeScore,
			AwayScore: awayScore,
			Neutral:   parseBool(h.field(record, aliasesNeutral)),
		})
	}
	return games, dropped, nil
}

// LoadUpcoming reads not-yet-played games from a CSV file.
func LoadUpcoming(path string, logger *logrus.Logger) ([]models.UpcomingGame, error) {
	if logger == nil {
		logger = logrus.New()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open upcoming file: %w", err)
	}
	defer file.Close()

	upcoming, dropped, err := parseUpcoming(file)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"path":    path,
		"games":   len(upcoming),
		"dropped": dropped,
	}).Info("Loaded upcoming games")
	return upcoming, nil
}

func parseUpcoming(r io.Reader) ([]models.UpcomingGame, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse upcoming CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	h := resolveHeader(records[0])
	upcoming := make([]models.UpcomingGame, 0, len(records)-1)
	dropped := 0

	for _, record := range records[1:] {
		season, okSeason := parseInt(h.field(record, aliasesSeason))
		week, okWeek := parseInt(h.field(record, aliasesWeek))
		home := h.field(record, aliasesHomeTeam)
		away := h.field(record, aliasesAwayTeam)

		if !okSeason || !okWeek || home == "" || away == "" {
			dropped++
			continue
		}

		upcoming = append(upcoming, models.UpcomingGame{
			GameID:   stringPtrOrNil(h.field(record, aliasesGameID)),
			Season:   season,
			Week:     week,
			Date:     parseDate(h.field(record, aliasesDate)),
			HomeTeam: teams.Canonicalize(home),
			AwayTeam: teams.Canonicalize(away),
			Neutral:  parseBool(h.field(record, aliasesNeutral)),
		})
	}
	return upcoming, dropped, nil
}

// LoadMarketRows reads sportsbook lines from a CSV file. Optional
// price columns missing from a row stay nil; only the matchup key
// fields are required.
func LoadMarketRows(path string, logger *logrus.Logger) ([]models.MarketRow, error) {
	if logger == nil {
		logger = logrus.New()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open market file: %w", err)
	}
	defer file.Close()

	rows, dropped, err := parseMarketRows(file)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"path":    path,
		"rows":    len(rows),
		"dropped": dropped,
	}).Info("Loaded market lines")
	return rows, nil
}

func parseMarketRows(r io.Reader) ([]models.MarketRow, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse market CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	h := resolveHeader(records[0])
	rows := make([]models.MarketRow, 0, len(records)-1)
	dropped := 0

	for _, record := range records[1:] {
		season, okSeason := parseInt(h.field(record, aliasesSeason))
		week, okWeek := parseInt(h.field(record, aliasesWeek))
		home := h.field(record, aliasesHomeTeam)
		away := h.field(record, aliasesAwayTeam)

		if !okSeason || !okWeek || home == "" || away == "" {
			dropped++
			continue
		}

		rows = append(rows, models.MarketRow{
			Season:        season,
			Week:          week,
			Date:          parseDate(h.field(record, aliasesDate)),
			HomeTeam:      teams.Canonicalize(home),
			AwayTeam:      teams.Canonicalize(away),
			Book:          h.field(record, aliasesBook),
			SpreadHome:    parseFloatPtr(h.field(record, aliasesSpread)),
			Total:         parseFloatPtr(h.field(record, aliasesTotal)),
			MoneylineHome: parseIntPtr(h.field(record, aliasesHomeML)),
			MoneylineAway: parseIntPtr(h.field(record, aliasesAwayML)),
		})
	}
	return rows, dropped, nil
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Some providers emit integral floats ("2024.0").
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return v, true
}

func parseIntPtr(s string) *int {
	v, ok := parseInt(s)
	if !ok {
		return nil
	}
	return &v
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y":
		return true
	default:
		return false
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
