package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fun-tournaments/qualbot/services"
)

// Services are the core operations the command layer exposes.
type Services struct {
	Teams       services.TeamService
	Seeds       services.SeedService
	Reports     services.ReportService
	Rounds      services.RoundService
	Tournaments services.TournamentService
}

// NewRegistry wires every command into the immutable dispatch table.
func NewRegistry(svc Services) *Registry {
	return newBuilder().
		register(TypeTeam, teamHandler(svc.Teams), false).
		register(TypeSeed, seedHandler(svc.Seeds), false).
		register(TypeReport, reportHandler(svc.Reports), false).
		register(TypeConfirm, confirmHandler(svc.Reports), false).
		register(TypeStart, startHandler(svc.Rounds), true).
		register(TypeTournament, tournamentHandler(svc.Tournaments), true).
		build()
}

// team <name...> with the roster mentioned; the author always counts as a
// member.
func teamHandler(teams services.TeamService) Handler {
	return HandlerFunc(func(ctx context.Context, params Params) (*Result, error) {
		players := append([]string{}, params.Mentions...)
		players = append(players, params.AuthorID)

		team, err := teams.Register(ctx, services.RegisterTeamInput{
			Name:    strings.Join(params.Args, " "),
			Players: players,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Title: "Team Registered",
			Body:  fmt.Sprintf("%s has been successfully registered.", team.Name),
		}, nil
	})
}

// seed            -> list all seeds
// seed auto       -> fill every empty seed at random
// seed reset      -> clear every seed
// seed <name>     -> show one team's seed
// seed <name> <n> -> assign (0 unseeds)
func seedHandler(seeds services.SeedService) Handler {
	return HandlerFunc(func(ctx context.Context, params Params) (*Result, error) {
		args := params.Args
		switch {
		case len(args) == 0:
			list, err := seeds.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			return seedListResult("All Current Seeds", list), nil

		case len(args) == 1 && args[0] == "auto":
			list, err := seeds.AutoAssign(ctx)
			if err != nil {
				return nil, err
			}
			return seedListResult("Seeds Assigned", list), nil

		case len(args) == 1 && args[0] == "reset":
			if err := seeds.ResetAll(ctx); err != nil {
				return nil, err
			}
			return &Result{Title: "Seeds Reset", Body: "All seeds have been reset."}, nil
		}

		if seed, err := strconv.Atoi(args[len(args)-1]); err == nil {
			name := strings.Join(args[:len(args)-1], " ")
			assignment, err := seeds.AssignSeed(ctx, name, seed)
			if err != nil {
				return nil, err
			}
			if assignment.TransferredFrom != nil {
				return &Result{
					Title: "Seed Transferred",
					Body: fmt.Sprintf("%s has been given the %d seed and %s's seed has been reset.",
						assignment.Team.Name, assignment.Team.Seed, assignment.TransferredFrom.Name),
				}, nil
			}
			return &Result{
				Title: "Team Seeded",
				Body:  fmt.Sprintf("%s has been given the %d seed.", assignment.Team.Name, assignment.Team.Seed),
			}, nil
		}

		name := strings.Join(args, " ")
		team, err := seeds.GetSeedOf(ctx, name)
		if err != nil {
			return nil, err
		}
		body := fmt.Sprintf("%s is the %d seed.", team.Name, team.Seed)
		if !team.Seeded() {
			body = fmt.Sprintf("%s does not currently have a seed.", team.Name)
		}
		return &Result{Title: fmt.Sprintf("%s's Seed", team.Name), Body: body}, nil
	})
}

func seedListResult(title string, list *services.SeedList) *Result {
	var b strings.Builder
	for _, team := range list.Teams {
		label := strconv.Itoa(team.Seed)
		if !team.Seeded() {
			label = "[Unseeded]"
		}
		fmt.Fprintf(&b, "%s - %s\n", label, team.Name)
	}
	if len(list.AvailableSeeds) > 0 {
		seeds := make([]string, len(list.AvailableSeeds))
		for i, s := range list.AvailableSeeds {
			seeds[i] = strconv.Itoa(s)
		}
		fmt.Fprintf(&b, "Available Seeds: %s\n", strings.Join(seeds, ", "))
	}
	return &Result{Title: title, Body: b.String()}
}

// report <your score>-<opponent score>, reported by the winning team.
func reportHandler(reports services.ReportService) Handler {
	return HandlerFunc(func(ctx context.Context, params Params) (*Result, error) {
		if len(params.Args) != 1 {
			return nil, fmt.Errorf("%w: report <winning score>-<losing score>", ErrUsage)
		}
		winnerScore, loserScore, err := parseScore(params.Args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if _, err := reports.Report(ctx, params.AuthorID, winnerScore, loserScore); err != nil {
			return nil, err
		}
		return &Result{Title: "Game Reported", Body: "Game reported. Awaiting confirmation."}, nil
	})
}

func confirmHandler(reports services.ReportService) Handler {
	return HandlerFunc(func(ctx context.Context, params Params) (*Result, error) {
		result, err := reports.Confirm(ctx, params.AuthorID)
		if err != nil {
			return nil, err
		}
		body := "You are clear to play your next game. Good luck!"
		if result.SeriesOver {
			body = "The series is over. Please hang tight until the next round matches are ready."
		}
		return &Result{Title: "Game Confirmed", Body: body}, nil
	})
}

// start <qualification rounds> <best of> (admin).
func startHandler(rounds services.RoundService) Handler {
	return HandlerFunc(func(ctx context.Context, params Params) (*Result, error) {
		if len(params.Args) != 2 {
			return nil, fmt.Errorf("%w: start <rounds> <best of>", ErrUsage)
		}
		qualRounds, err := strconv.Atoi(params.Args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid round count %q", ErrUsage, params.Args[0])
		}
		bestOf, err := strconv.Atoi(params.Args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid best-of %q", ErrUsage, params.Args[1])
		}

		result, err := rounds.StartRound(ctx, qualRounds, bestOf)
		if err != nil {
			return nil, err
		}
		body := fmt.Sprintf("Round %d generated with %d series. Teams have been notified.",
			result.Round, result.SeriesCount)
		if len(result.Byes) > 0 {
			body += fmt.Sprintf(" Byes: %s.", strings.Join(result.Byes, ", "))
		}
		return &Result{Title: "Matches Generated", Body: body}, nil
	})
}

// tournament                      -> list upcoming
// tournament delete <name...>     -> remove
// tournament <name...> <datetime> -> create
func tournamentHandler(tournaments services.TournamentService) Handler {
	return HandlerFunc(func(ctx context.Context, params Params) (*Result, error) {
		args := params.Args
		if len(args) == 0 {
			list, err := tournaments.ListUpcoming(ctx)
			if err != nil {
				return nil, err
			}
			var b strings.Builder
			for _, t := range list {
				fmt.Fprintf(&b, "%s - %s\n", t.Name, t.StartTime.Format("1/2/2006 3:04pm"))
			}
			return &Result{Title: "Tournaments", Body: b.String()}, nil
		}

		if args[0] == "delete" {
			name := strings.Join(args[1:], " ")
			if err := tournaments.Delete(ctx, name); err != nil {
				return nil, err
			}
			return &Result{Title: fmt.Sprintf("Removed %s", name), Body: "Successfully removed tournament."}, nil
		}

		startTime, err := parseStartTime(args[len(args)-1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", services.ErrInvalidStartTime, err)
		}
		tournament, err := tournaments.Create(ctx, services.CreateTournamentInput{
			Name:      strings.Join(args[:len(args)-1], " "),
			StartTime: startTime,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Title: fmt.Sprintf("%s Created", tournament.Name),
			Body:  fmt.Sprintf("Tournament created with a start date of %s.", tournament.StartTime.Format("1/2/2006 3:04pm")),
		}, nil
	})
}
