package roster

import "github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"

// Mode selects how starting purses are derived.
type Mode string

const (
	ModeMega Mode = "MEGA"
	ModeMini Mode = "MINI"
)

// TotalPurse is the full mega-auction purse per franchise.
const TotalPurse int64 = 1_200_000_000

// MiniAuctionPurses are the carried-over purses for the mini auction.
// Teams not listed fall back to TotalPurse.
var MiniAuctionPurses = map[string]int64{
	"csk":  550_000_000,
	"mi":   450_000_000,
	"rcb":  320_000_000,
	"kkr":  510_000_000,
	"srh":  600_000_000,
	"rr":   280_000_000,
	"dc":   430_000_000,
	"gt":   690_000_000,
	"lsg":  470_000_000,
	"pbks": 255_000_000,
}

// ModePurses returns the per-team override table and default purse for
// the given mode.
func ModePurses(mode Mode) (map[string]int64, int64) {
	if mode == ModeMini {
		return MiniAuctionPurses, TotalPurse
	}
	return nil, TotalPurse
}

func DefaultRules() engine.Rules {
	return engine.Rules{
		MaxOverseas:     8,
		MaxSquadSize:    25,
		MinBidIncrement: 0,
	}
}

func DefaultTeams() []engine.Team {
	names := []struct{ id, short, name string }{
		{"csk", "CSK", "Chennai Super Kings"},
		{"mi", "MI", "Mumbai Indians"},
		{"rcb", "RCB", "Royal Challengers Bengaluru"},
		{"kkr", "KKR", "Kolkata Knight Riders"},
		{"srh", "SRH", "Sunrisers Hyderabad"},
		{"rr", "RR", "Rajasthan Royals"},
		{"dc", "DC", "Delhi Capitals"},
		{"gt", "GT", "Gujarat Titans"},
		{"lsg", "LSG", "Lucknow Super Giants"},
		{"pbks", "PBKS", "Punjab Kings"},
	}

	teams := make([]engine.Team, 0, len(names))
	for _, n := range names {
		teams = append(teams, engine.Team{
			ID:             n.id,
			Name:           n.name,
			ShortName:      n.short,
			PurseRemaining: TotalPurse,
			Players:        []string{},
		})
	}
	return teams
}

// DefaultPlayers is the built-in player pool, grouped by auction set.
// Base prices are in rupees.
func DefaultPlayers() []engine.Player {
	mk := func(id, name string, role engine.Role, overseas bool, base int64, set string, st engine.Stats) engine.Player {
		return engine.Player{
			ID: id, Name: name, Role: role, IsOverseas: overseas,
			BasePrice: base, Set: set, Stats: st, Status: engine.StatusUpcoming,
		}
	}

	return []engine.Player{
		// Marquee
		mk("p01", "Rishabh Pant", engine.RoleWicketKeeper, false, 20_000_000, engine.SetMarquee, engine.Stats{Matches: 111, Runs: 3284, StrikeRate: 148.9}),
		mk("p02", "Jos Buttler", engine.RoleWicketKeeper, true, 20_000_000, engine.SetMarquee, engine.Stats{Matches: 107, Runs: 3582, StrikeRate: 147.2}),
		mk("p03", "Shreyas Iyer", engine.RoleBatter, false, 20_000_000, engine.SetMarquee, engine.Stats{Matches: 115, Runs: 3127, StrikeRate: 127.1}),
		mk("p04", "Mitchell Starc", engine.RoleBowler, true, 20_000_000, engine.SetMarquee, engine.Stats{Matches: 41, Wickets: 51, Economy: 8.55}),
		// Batters 1
		mk("p05", "David Miller", engine.RoleBatter, true, 15_000_000, engine.SetBatters1, engine.Stats{Matches: 126, Runs: 2905, StrikeRate: 139.7}),
		mk("p06", "Devdutt Padikkal", engine.RoleBatter, false, 10_000_000, engine.SetBatters1, engine.Stats{Matches: 58, Runs: 1521, StrikeRate: 125.5}),
		mk("p07", "Rahul Tripathi", engine.RoleBatter, false, 7_500_000, engine.SetBatters1, engine.Stats{Matches: 93, Runs: 2071, StrikeRate: 140.0}),
		mk("p08", "Harry Brook", engine.RoleBatter, true, 15_000_000, engine.SetBatters1, engine.Stats{Matches: 14, Runs: 316, StrikeRate: 131.6}),
		// All-rounders 1
		mk("p09", "Mitchell Marsh", engine.RoleAllRounder, true, 15_000_000, engine.SetAllRounders1, engine.Stats{Matches: 48, Runs: 1128, Wickets: 37, StrikeRate: 137.5, Economy: 9.1}),
		mk("p10", "Marcus Stoinis", engine.RoleAllRounder, true, 15_000_000, engine.SetAllRounders1, engine.Stats{Matches: 97, Runs: 1939, Wickets: 43, StrikeRate: 141.7, Economy: 9.5}),
		mk("p11", "Washington Sundar", engine.RoleAllRounder, false, 10_000_000, engine.SetAllRounders1, engine.Stats{Matches: 63, Runs: 555, Wickets: 35, StrikeRate: 122.1, Economy: 7.4}),
		mk("p12", "Shardul Thakur", engine.RoleAllRounder, false, 7_500_000, engine.SetAllRounders1, engine.Stats{Matches: 95, Runs: 331, Wickets: 94, Economy: 9.2}),
		// Wicketkeepers 1
		mk("p13", "Ishan Kishan", engine.RoleWicketKeeper, false, 15_000_000, engine.SetWicketKeepers, engine.Stats{Matches: 105, Runs: 2644, StrikeRate: 135.6}),
		mk("p14", "Phil Salt", engine.RoleWicketKeeper, true, 10_000_000, engine.SetWicketKeepers, engine.Stats{Matches: 21, Runs: 653, StrikeRate: 173.2}),
		mk("p15", "Jitesh Sharma", engine.RoleWicketKeeper, false, 5_000_000, engine.SetWicketKeepers, engine.Stats{Matches: 40, Runs: 730, StrikeRate: 156.0}),
		// Fast bowlers 1
		mk("p16", "Jofra Archer", engine.RoleBowler, true, 15_000_000, engine.SetFastBowlers1, engine.Stats{Matches: 40, Wickets: 48, Economy: 7.8}),
		mk("p17", "Mohammed Shami", engine.RoleBowler, false, 15_000_000, engine.SetFastBowlers1, engine.Stats{Matches: 110, Wickets: 127, Economy: 8.5}),
		mk("p18", "T Natarajan", engine.RoleBowler, false, 7_500_000, engine.SetFastBowlers1, engine.Stats{Matches: 51, Wickets: 62, Economy: 8.6}),
		mk("p19", "Harshal Patel", engine.RoleBowler, false, 10_000_000, engine.SetFastBowlers1, engine.Stats{Matches: 92, Wickets: 119, Economy: 8.8}),
		// Spinners 1
		mk("p20", "Yuzvendra Chahal", engine.RoleBowler, false, 15_000_000, engine.SetSpinners1, engine.Stats{Matches: 145, Wickets: 187, Economy: 7.8}),
		mk("p21", "Adam Zampa", engine.RoleBowler, true, 10_000_000, engine.SetSpinners1, engine.Stats{Matches: 20, Wickets: 21, Economy: 8.1}),
		mk("p22", "Rahul Chahar", engine.RoleBowler, false, 5_000_000, engine.SetSpinners1, engine.Stats{Matches: 75, Wickets: 71, Economy: 7.6}),
		// Uncapped
		mk("p23", "Shashank Singh", engine.RoleBatter, false, 2_000_000, engine.SetUncapped, engine.Stats{Matches: 29, Runs: 582, StrikeRate: 151.3}),
		mk("p24", "Nehal Wadhera", engine.RoleBatter, false, 2_000_000, engine.SetUncapped, engine.Stats{Matches: 23, Runs: 557, StrikeRate: 134.2}),
		mk("p25", "Vijaykumar Vyshak", engine.RoleBowler, false, 2_000_000, engine.SetUncapped, engine.Stats{Matches: 18, Wickets: 19, Economy: 9.3}),
		mk("p26", "Abdul Samad", engine.RoleAllRounder, false, 2_000_000, engine.SetUncapped, engine.Stats{Matches: 61, Runs: 922, Wickets: 3, StrikeRate: 142.2}),
	}
}
