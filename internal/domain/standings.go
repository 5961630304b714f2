package domain

// Points awarded per result.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// FormWindow bounds the recent-form queue length.
const FormWindow = 5

// Outcome symbols, from the perspective of one team.
const (
	OutcomeWin  = "W"
	OutcomeDraw = "D"
	OutcomeLoss = "L"
)

// OutcomeFor classifies a score line from the perspective of the side that
// scored goalsFor.
func OutcomeFor(goalsFor, goalsAgainst int) string {
	switch {
	case goalsFor > goalsAgainst:
		return OutcomeWin
	case goalsFor < goalsAgainst:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// Scope selects which subset of a team's games a statistic covers.
type Scope string

const (
	ScopeHome   Scope = "home"
	ScopeAway   Scope = "away"
	ScopeTotals Scope = "totals"
)

// NormalizeScope maps unknown scope values to ScopeTotals. User-facing scope
// parameters are loosely formatted, so leniency beats rejection here.
func NormalizeScope(s string) Scope {
	switch Scope(s) {
	case ScopeHome, ScopeAway:
		return Scope(s)
	default:
		return ScopeTotals
	}
}

// StatBlock holds running statistics for one team over one scope.
type StatBlock struct {
	Played         int      `json:"played"`
	Won            int      `json:"won"`
	Drawn          int      `json:"drawn"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
	Points         int      `json:"points"`
	RecentForm     []string `json:"recentForm"` // oldest first, capped at FormWindow
}

// RecordResult folds one match result into the block, from the perspective of
// the side that scored goalsFor. Goal difference and points are recomputed
// from the updated counters rather than drifted incrementally.
func (b *StatBlock) RecordResult(goalsFor, goalsAgainst int) {
	b.Played++
	b.GoalsFor += goalsFor
	b.GoalsAgainst += goalsAgainst
	switch OutcomeFor(goalsFor, goalsAgainst) {
	case OutcomeWin:
		b.Won++
	case OutcomeLoss:
		b.Lost++
	default:
		b.Drawn++
	}
	b.GoalDifference = b.GoalsFor - b.GoalsAgainst
	b.Points = PointsWin*b.Won + PointsDraw*b.Drawn
	b.AppendForm(OutcomeFor(goalsFor, goalsAgainst))
}

// AppendForm pushes an outcome symbol onto the form queue, dropping the
// oldest entry past FormWindow.
func (b *StatBlock) AppendForm(outcome string) {
	b.RecentForm = append(b.RecentForm, outcome)
	if len(b.RecentForm) > FormWindow {
		b.RecentForm = b.RecentForm[len(b.RecentForm)-FormWindow:]
	}
}

// StandingsEntry is one team's row in a table.
type StandingsEntry struct {
	TeamName string    `json:"teamName"`
	TeamSlug string    `json:"teamSlug"`
	Position int       `json:"position"` // 1-based, assigned by the ranker
	Home     StatBlock `json:"home"`
	Away     StatBlock `json:"away"`
	Totals   StatBlock `json:"totals"`
}

// NewStandingsEntry returns a zero-valued entry for a team.
func NewStandingsEntry(name, slug string) *StandingsEntry {
	return &StandingsEntry{TeamName: name, TeamSlug: slug}
}

// RecomputeTotals rebuilds every numeric totals field as home + away. The
// totals form queue is not summable and is maintained separately, in match
// order across both scopes.
func (e *StandingsEntry) RecomputeTotals() {
	form := e.Totals.RecentForm
	e.Totals = StatBlock{
		Played:       e.Home.Played + e.Away.Played,
		Won:          e.Home.Won + e.Away.Won,
		Drawn:        e.Home.Drawn + e.Away.Drawn,
		Lost:         e.Home.Lost + e.Away.Lost,
		GoalsFor:     e.Home.GoalsFor + e.Away.GoalsFor,
		GoalsAgainst: e.Home.GoalsAgainst + e.Away.GoalsAgainst,
		RecentForm:   form,
	}
	e.Totals.GoalDifference = e.Totals.GoalsFor - e.Totals.GoalsAgainst
	e.Totals.Points = PointsWin*e.Totals.Won + PointsDraw*e.Totals.Drawn
}

// Block returns the stat block for the given scope.
func (e *StandingsEntry) Block(scope Scope) *StatBlock {
	switch scope {
	case ScopeHome:
		return &e.Home
	case ScopeAway:
		return &e.Away
	default:
		return &e.Totals
	}
}
