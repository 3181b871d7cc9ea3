package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/discord"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/orchestrators/duel"
	"github.com/KirkDiggler/pokeduel/internal/orchestrators/simulate"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

var (
	simSeed     uint64
	simMaxTurns int
	simParties  [2]string
	simNames    [2]string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a battle locally and print the narration",
	Long: `Play a battle between two parties without Discord. Parties use the
/party set syntax, for example "Lax=snorlax@leftovers:tackle,rest; chansey:wish".
Without a party flag the configured default party is used.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "seed for dice and move choices")
	simulateCmd.Flags().IntVar(&simMaxTurns, "max-turns", simulate.DefaultMaxTurns, "stop after this many turns")
	simulateCmd.Flags().StringVar(&simParties[0], "party1", "", "first trainer's party")
	simulateCmd.Flags().StringVar(&simParties[1], "party2", "", "second trainer's party")
	simulateCmd.Flags().StringVar(&simNames[0], "name1", "Red", "first trainer's name")
	simulateCmd.Flags().StringVar(&simNames[1], "name2", "Blue", "second trainer's name")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	store, err := dex.Default()
	if err != nil {
		return errors.Wrap(err, "failed to load reference data")
	}

	svc, err := simulate.New(&simulate.Config{Dex: store})
	if err != nil {
		return err
	}

	input := &simulate.RunInput{Seed: simSeed, MaxTurns: simMaxTurns}
	for i := range input.Sides {
		party, err := simulatedParty(simParties[i])
		if err != nil {
			return errors.Wrapf(err, "party%d", i+1)
		}
		input.Sides[i] = simulate.Side{
			Participant: duel.Participant{MemberID: fmt.Sprintf("trainer-%d", i+1), Name: simNames[i]},
			Party:       party,
		}
	}

	out, err := svc.Run(cmd.Context(), input)
	if errors.IsCanceled(err) {
		slog.Info("Simulation interrupted")
		return nil
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, out.Narration)
	switch {
	case out.WinnerID != "":
		fmt.Fprintf(w, "\nWinner: %s after %d turns\n", winnerName(input, out.WinnerID), out.Turns)
	default:
		fmt.Fprintf(w, "\nNo winner after %d turns\n", out.Turns)
	}
	return nil
}

func simulatedParty(spec string) ([]userconfig.PartyMember, error) {
	if spec == "" {
		if len(cfg.Defaults.Party) == 0 {
			return nil, errors.InvalidArgument("no party given and no default party configured")
		}
		return cfg.Defaults.Party, nil
	}
	return discord.ParseParty(spec)
}

func winnerName(input *simulate.RunInput, winnerID string) string {
	for _, side := range input.Sides {
		if side.Participant.MemberID == winnerID {
			return side.Participant.Name
		}
	}
	return winnerID
}
