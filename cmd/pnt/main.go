package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cl "pennant/internal/cli"
	"pennant/internal/config"
	"pennant/internal/game"
	"pennant/internal/save"
	"pennant/internal/syncq"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var slotFlag string

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "pnt",
		Short:        "Pennant CLI: run a pro baseball franchise from your terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&slotFlag, "slot", save.DefaultSlot, "local save slot")

	root.AddCommand(
		newNewCmd(),
		newStatusCmd(),
		newStandingsCmd(),
		newScheduleCmd(),
		newSimCmd(),
		newNewSeasonCmd(),
		newBudgetCmd(),
		newTicketCmd(),
		newMoraleCmd(),
		newSponsorCmd(),
		newDrillCmd(),
		newAutoCmd(),
		newHistoryCmd(),
		newSlotsCmd(),
		newResetCmd(),
		newRemoteCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRNG() game.Rand {
	return game.NewRand(time.Now().UnixNano())
}

func openStore(ctx context.Context) (*save.Store, error) {
	path, err := save.DefaultPath()
	if err != nil {
		return nil, err
	}
	return save.Open(ctx, path)
}

// withState loads the slot, runs fn and persists whatever state fn returns.
// fn returning nil state means "no write".
func withState(cmd *cobra.Command, fn func(ctx context.Context, s *game.State) (*game.State, error)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	state, err := store.Load(ctx, slotFlag)
	if err != nil {
		return fmt.Errorf("load slot %q: %w (run `pnt new` to start a franchise)", slotFlag, err)
	}
	next, err := fn(ctx, state)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	return store.Save(ctx, slotFlag, next)
}

// applyAction is the common mutate path: apply one transition, save, print
// the engine's status line.
func applyAction(cmd *cobra.Command, action game.Action) error {
	return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
		next, err := game.Apply(newRNG(), s, action)
		if err != nil {
			return nil, err
		}
		if next.StatusMessage != "" {
			printInfo(next.StatusMessage)
		}
		return next, nil
	})
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [team-id]",
		Short: "Start a new franchise in a local slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderTeamList()
			var teamID string
			if len(args) > 0 {
				teamID = strings.ToLower(strings.TrimSpace(args[0]))
			} else {
				picked, err := promptRequired("Team ID")
				if err != nil {
					return err
				}
				teamID = strings.ToLower(picked)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := store.Load(ctx, slotFlag); err == nil {
				answer, err := promptChoice(fmt.Sprintf("Slot %q already has a franchise. Overwrite?", slotFlag), []string{"y", "n"}, "n")
				if err != nil {
					return err
				}
				if answer != "y" {
					printInfo("Keeping the existing franchise.")
					return nil
				}
			}

			state, err := game.NewState(newRNG(), teamID)
			if err != nil {
				return err
			}
			if err := store.Save(ctx, slotFlag, state); err != nil {
				return err
			}
			team, _ := state.TeamByID(teamID)
			printSuccess(fmt.Sprintf("Franchise started: %s %s, season %d.", team.City, team.Name, state.SeasonYear))
			renderStatus(state)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the franchise dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				renderStatus(s)
				return nil, nil
			})
		},
	}
}

func newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show the league table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				renderStandings(s)
				return nil, nil
			})
		},
	}
}

func newScheduleCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show upcoming fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				renderSchedule(s, all)
				return nil, nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "show the full season schedule")
	return cmd
}

func newSimCmd() *cobra.Command {
	var (
		fast  bool
		weeks int
	)
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Simulate the next week of games",
		RunE: func(cmd *cobra.Command, args []string) error {
			if weeks < 1 {
				weeks = 1
			}
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				rng := newRNG()
				cur := s
				for i := 0; i < weeks; i++ {
					if cur.Status == game.SeasonEnded {
						break
					}
					next, err := game.AdvanceWeek(rng, cur)
					if err != nil {
						return nil, err
					}
					if next.ReplayPending && weeks == 1 {
						playReplay(next.GameLog, fast)
					}
					renderResults(next)
					next = game.AcknowledgeReplay(game.CloseResults(next))
					if next.ScoutingReport != "" {
						accent.Println("\nScouting report")
						fmt.Println(next.ScoutingReport)
						next = game.ClearScoutingReport(next)
					}
					cur = next
				}
				renderStandings(cur)
				if cur.Status == game.SeasonEnded {
					warn.Println("\nSeason complete. Run `pnt history` for the record books or `pnt new-season` to continue.")
				}
				if cur.PendingOffer != nil {
					renderOffer(cur.PendingOffer)
					printInfo("Accept with `pnt sponsor accept` or decline with `pnt sponsor reject`.")
				}
				if cur.ActiveDrill == nil && len(cur.DrillOffers) > 0 {
					renderDrills(cur)
				}
				return cur, nil
			})
		},
	}
	cmd.Flags().BoolVar(&fast, "fast", false, "skip the paced play-by-play replay")
	cmd.Flags().IntVar(&weeks, "weeks", 1, "number of weeks to simulate")
	return cmd
}

func newNewSeasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-season",
		Short: "Roll an ended season into the next year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				next, err := game.StartNewSeason(newRNG(), s)
				if err != nil {
					return nil, err
				}
				printSuccess(fmt.Sprintf("Season %d underway.", next.SeasonYear))
				return next, nil
			})
		},
	}
}

func newBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show the budget, ledger and allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				renderFinances(s)
				return nil, nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Re-split the weekly budget across departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := []string{
				"Training batting %", "Training pitching %", "Training defense %",
				"Marketing %", "Facilities %", "Scouting %", "Medical %",
			}
			values := make([]float64, len(labels))
			printInfo("Shares must sum to 100.")
			for i, label := range labels {
				v, err := promptShare(label)
				if err != nil {
					return err
				}
				values[i] = v
			}
			alloc := game.Allocation{
				TrainingBatting:  values[0],
				TrainingPitching: values[1],
				TrainingDefense:  values[2],
				Marketing:        values[3],
				Facilities:       values[4],
				Scouting:         values[5],
				Medical:          values[6],
			}
			return applyAction(cmd, game.Action{Kind: game.ActionUpdateAllocation, Allocation: &alloc})
		},
	})
	return cmd
}

func newTicketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ticket [very_low|low|normal|high|very_high]",
		Short: "Set home ticket prices",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var picked string
			var err error
			if len(args) > 0 {
				picked = args[0]
			} else {
				picked, err = promptChoice("Ticket level", []string{"very_low", "low", "normal", "high", "very_high"}, "normal")
				if err != nil {
					return err
				}
			}
			level, err := game.ParseTicketLevel(strings.ToLower(strings.TrimSpace(picked)))
			if err != nil {
				return err
			}
			return applyAction(cmd, game.Action{Kind: game.ActionSetTicketPrice, TicketLevel: &level})
		},
	}
}

func newMoraleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "morale",
		Short: "Clubhouse morale",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				fmt.Printf("Morale: %s\n", s.Morale[s.UserTeamID])
				return nil, nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "boost",
		Short: "Spend on a clubhouse event to lift morale",
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyAction(cmd, game.Action{Kind: game.ActionBoostMorale})
		},
	})
	return cmd
}

func newSponsorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sponsor",
		Short: "Review the pending sponsorship offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				if s.PendingOffer == nil {
					printInfo("No sponsorship offer on the table.")
					return nil, nil
				}
				renderOffer(s.PendingOffer)
				return nil, nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "accept",
		Short: "Sign the pending sponsorship",
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyAction(cmd, game.Action{Kind: game.ActionAcceptSponsorship})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reject",
		Short: "Decline the pending sponsorship",
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyAction(cmd, game.Action{Kind: game.ActionRejectSponsorship})
		},
	})
	return cmd
}

func newDrillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Review special drill offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				renderDrills(s)
				return nil, nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "pick <drill-id>",
		Short: "Buy one of the offered drills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyAction(cmd, game.Action{Kind: game.ActionSelectDrill, DrillID: strings.TrimSpace(args[0])})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "skip",
		Short: "Pass on this week's drill offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyAction(cmd, game.Action{Kind: game.ActionSkipDrills})
		},
	})
	return cmd
}

func newAutoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto [on|off]",
		Short: "Toggle the front office autopilot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				if len(args) == 1 {
					want := strings.EqualFold(args[0], "on")
					if !want && !strings.EqualFold(args[0], "off") {
						return nil, fmt.Errorf("expected on or off, got %q", args[0])
					}
					if s.Delegated == want {
						printInfo("Autopilot already " + strings.ToLower(args[0]) + ".")
						return nil, nil
					}
				}
				next := game.ToggleDelegation(s)
				printInfo(next.StatusMessage)
				return next, nil
			})
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past season results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				renderHistory(s.History)
				return nil, nil
			})
		},
	}
}

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List local save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			slots, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				printInfo("No local franchises. Run `pnt new`.")
				return nil
			}
			fmt.Printf("%-16s %-12s %-6s %-6s %-12s %s\n", "SLOT", "TEAM", "YEAR", "WEEK", "STATUS", "UPDATED")
			for _, s := range slots {
				fmt.Printf("%-16s %-12s %-6d %-6d %-12s %s\n",
					s.Slot, s.TeamID, s.Year, s.Week, s.Status, s.UpdatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restart the franchise from scratch",
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := promptChoice("This wipes the current season and history. Continue?", []string{"y", "n"}, "n")
			if err != nil {
				return err
			}
			if answer != "y" {
				printInfo("Reset cancelled.")
				return nil
			}
			return withState(cmd, func(_ context.Context, s *game.State) (*game.State, error) {
				next, err := game.Apply(newRNG(), s, game.Action{Kind: game.ActionResetGame})
				if err != nil {
					return nil, err
				}
				printSuccess("Franchise reset.")
				return next, nil
			})
		},
	}
}

func newRemoteCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Play a hosted save through the pennant API",
	}
	cmd.AddCommand(
		newRemoteLinkCmd(apiBase),
		newRemoteUnlinkCmd(),
		newRemoteNewCmd(apiBase),
		newRemoteStatusCmd(),
		newRemoteStandingsCmd(),
		newRemoteSimCmd(),
		newRemoteActionCmd(),
		newRemoteSeasonsCmd(),
		newRemoteSyncCmd(),
	)
	return cmd
}

func newClient(apiBase string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(apiBase), "/"))
}

func linkedClient() (*cl.Client, cl.Profile, error) {
	profile, err := cl.LoadProfile()
	if err != nil {
		return nil, cl.Profile{}, err
	}
	return newClient(profile.APIBase), profile, nil
}

func newRemoteLinkCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "link <save-id>",
		Short: "Point remote commands at an existing hosted save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(*apiBase)
			if _, err := client.GetSave(ctx, args[0]); err != nil {
				return err
			}
			if err := cl.SaveProfile(cl.Profile{APIBase: client.BaseURL, SaveID: args[0]}); err != nil {
				return err
			}
			printSuccess("Linked. Remote commands now target " + args[0] + ".")
			return nil
		},
	}
}

func newRemoteUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink",
		Short: "Forget the linked hosted save",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearProfile(); err != nil {
				return err
			}
			printSuccess("Unlinked.")
			return nil
		},
	}
}

func newRemoteNewCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name> <team-id>",
		Short: "Create a hosted save and link to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(*apiBase)
			out, err := client.CreateSave(ctx, args[0], strings.ToLower(args[1]), uuid.NewString())
			if err != nil {
				return err
			}
			created, err := decodeInto[struct {
				ID string `json:"id"`
			}](out)
			if err != nil {
				return err
			}
			if err := cl.SaveProfile(cl.Profile{APIBase: client.BaseURL, SaveID: created.ID}); err != nil {
				return err
			}
			printSuccess("Hosted save created and linked: " + created.ID)
			return nil
		},
	}
}

func remoteState(out map[string]any) (*game.State, error) {
	payload, err := decodeInto[struct {
		State *game.State `json:"state"`
	}](out)
	if err != nil {
		return nil, err
	}
	if payload.State == nil {
		return nil, fmt.Errorf("response missing state")
	}
	return payload.State, nil
}

func newRemoteStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Dashboard for the linked hosted save",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, profile, err := linkedClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.GetSave(ctx, profile.SaveID)
			if err != nil {
				return err
			}
			state, err := remoteState(out)
			if err != nil {
				return err
			}
			renderStatus(state)
			return nil
		},
	}
}

func newRemoteStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "League table for the linked hosted save",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, profile, err := linkedClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.GetSave(ctx, profile.SaveID)
			if err != nil {
				return err
			}
			state, err := remoteState(out)
			if err != nil {
				return err
			}
			renderStandings(state)
			return nil
		},
	}
}

func newRemoteSimCmd() *cobra.Command {
	var fast bool
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Simulate the next week on the linked hosted save",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postRemoteAction(cmd, game.ActionAdvanceWeek, nil); err != nil {
				return err
			}
			client, profile, err := linkedClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.GetSave(ctx, profile.SaveID)
			if err != nil {
				return err
			}
			state, err := remoteState(out)
			if err != nil {
				return err
			}
			if state.ReplayPending {
				playReplay(state.GameLog, fast)
			}
			renderResults(state)
			renderStandings(state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fast, "fast", false, "skip the paced play-by-play replay")
	return cmd
}

func newRemoteActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action <kind>",
		Short: "Post one raw action to the linked hosted save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postRemoteAction(cmd, args[0], nil)
		},
	}
}

func newRemoteSeasonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "Completed seasons of the linked hosted save",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, profile, err := linkedClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.Seasons(ctx, profile.SaveID)
			if err != nil {
				return err
			}
			records, err := decodeInto[[]game.SeasonRecord](out)
			if err != nil {
				return err
			}
			renderHistory(records)
			return nil
		},
	}
}

func postRemoteAction(cmd *cobra.Command, kind string, body map[string]any) error {
	client, profile, err := linkedClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	idem := uuid.NewString()
	if _, err := client.Action(ctx, profile.SaveID, kind, body, idem); err != nil {
		return queueOnNetworkError(err, syncq.Command{
			Method:         "POST",
			Path:           "/v1/saves/" + profile.SaveID + "/actions/" + kind,
			Body:           body,
			IdempotencyKey: idem,
		})
	}
	printSuccess("Applied " + kind + ".")
	return nil
}

// queueOnNetworkError stashes the write for `pnt remote sync` when the API
// was unreachable. Structured API rejections surface immediately.
func queueOnNetworkError(err error, queued syncq.Command) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "api status") {
		return err
	}
	if pushErr := syncq.Push(queued); pushErr != nil {
		return fmt.Errorf("request failed and could not be queued: %w", pushErr)
	}
	printWarn("API unreachable; action queued for `pnt remote sync`.")
	return nil
}

func newRemoteSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued offline actions against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, profile, err := linkedClient()
			if err != nil {
				return err
			}
			queue, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				printInfo("Sync queue is empty.")
				return nil
			}
			client := newClient(profile.APIBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			remaining := make([]syncq.Command, 0, len(queue))
			replayed := 0
			for _, q := range queue {
				if _, err := client.Do(ctx, q.Method, q.Path, q.Body, q.IdempotencyKey); err != nil {
					remaining = append(remaining, q)
					printError(fmt.Sprintf("Sync failed for %s %s: %v", q.Method, q.Path, err))
					continue
				}
				replayed++
			}
			if err := syncq.Save(remaining); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Sync complete: replayed=%d remaining=%d", replayed, len(remaining)))
			return nil
		},
	}
}
