package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"faceit-scout/internal/anomaly"
	"faceit-scout/internal/domain"
	"faceit-scout/internal/service"
	"faceit-scout/internal/stats"

	"github.com/syohex/go-texttable"
)

// Console renders the player summary, live collection progress and the
// smurf report to stdout.
type Console struct {
	out io.Writer
}

func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// Stats highlighted under the summary, in display order.
var highlighted = []string{
	stats.StatWinRate,
	stats.StatAvgKD,
	stats.StatAvgHeadshots,
	stats.StatCurrentWinStreak,
}

func (c *Console) PlayerSummary(profile *domain.PlayerProfile, fromCache bool) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "=== PLAYER SUMMARY ===")
	if fromCache {
		fmt.Fprintln(c.out, "(from cache, less than 24h old)")
	}

	tbl := &texttable.TextTable{}
	_ = tbl.SetHeader("Field", "Value")
	_ = tbl.AddRow("Nickname", profile.Nickname)
	_ = tbl.AddRow("Faceit Elo", orNA(profile.Elo))
	_ = tbl.AddRow("Skill Level", skillBand(profile.SkillLevel))
	_ = tbl.AddRow("Account Age", daysOrNA(profile.AccountAgeDays))
	_ = tbl.AddRow("Steam CS2 Hrs", strconv.FormatFloat(profile.SteamHours, 'f', -1, 64))
	fmt.Fprintln(c.out, tbl.Draw())

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "--- Lifetime Stats ---")
	statTbl := &texttable.TextTable{}
	_ = statTbl.SetHeader("Stat", "Value")
	for _, name := range highlighted {
		if v, ok := profile.LifetimeStats[name]; ok {
			_ = statTbl.AddRow(name, v.String())
		}
	}
	fmt.Fprintln(c.out, statTbl.Draw())
}

// Progress rewrites a single status line as matches complete.
func (c *Console) Progress(p service.Progress) {
	fmt.Fprintf(c.out, "\rCollected %d/%d matches | ETA: %.1fs", p.Collected, p.Total, p.ETA.Seconds())
	if p.Collected >= p.Total {
		fmt.Fprintln(c.out)
	}
}

func (c *Console) Report(report *anomaly.Report) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Smurf Detection Report for %s:\n", report.Nickname)
	fmt.Fprintf(c.out, "Verdict: %s\n", report.Verdict)
	if len(report.Flags) == 0 {
		fmt.Fprintln(c.out, "No suspicious patterns found.")
		return
	}
	fmt.Fprintln(c.out, "Flags:")
	for _, flag := range report.Flags {
		fmt.Fprintf(c.out, "  - %s\n", flag)
	}
}

func skillBand(level *int) string {
	if level == nil {
		return "N/A"
	}
	switch l := *level; {
	case l >= 1 && l <= 3:
		return fmt.Sprintf("%d (low)", l)
	case l >= 4 && l <= 7:
		return fmt.Sprintf("%d (mid)", l)
	case l == 8 || l == 9:
		return fmt.Sprintf("%d (high)", l)
	case l == 10:
		return fmt.Sprintf("%d (top)", l)
	default:
		return strconv.Itoa(l)
	}
}

func orNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func daysOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d days", *v)
}
