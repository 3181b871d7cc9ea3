package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokeduel/internal/config"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	redisclient "github.com/KirkDiggler/pokeduel/internal/redis"
	"github.com/KirkDiggler/pokeduel/internal/repositories/duels"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

var fixStore bool

var checkStoreCmd = &cobra.Command{
	Use:   "check-store",
	Short: "Find stored parties and duels that no longer decode",
	Long:  `Scan the Redis store for corrupted party, guild and duel records. With --fix the corrupted keys are deleted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Store.Backend != config.StoreRedis {
			return errors.FailedPrecondition("check-store needs the redis backend")
		}
		repos, err := openStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer repos.Close()

		return checkStore(cmd.Context(), repos.redis, cmd.OutOrStdout(), fixStore)
	},
}

func init() {
	checkStoreCmd.Flags().BoolVar(&fixStore, "fix", false, "delete corrupted keys")
	rootCmd.AddCommand(checkStoreCmd)
}

func checkStore(ctx context.Context, client redisclient.Client, w io.Writer, fix bool) error {
	var corrupt []string
	for _, find := range []func(context.Context, redisclient.Client) ([]string, error){
		userconfig.FindCorrupt,
		duels.FindCorrupt,
	} {
		keys, err := find(ctx, client)
		if err != nil {
			return err
		}
		corrupt = append(corrupt, keys...)
	}

	if len(corrupt) == 0 {
		fmt.Fprintln(w, "No corrupted data found")
		return nil
	}

	fmt.Fprintf(w, "Found %d corrupted entries:\n", len(corrupt))
	for _, key := range corrupt {
		fmt.Fprintf(w, "  - %s\n", key)
	}
	if !fix {
		fmt.Fprintln(w, "Run with --fix to delete them")
		return nil
	}

	deleted, err := client.Del(ctx, corrupt...).Result()
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete corrupted keys")
	}
	fmt.Fprintf(w, "Deleted %d keys\n", deleted)
	return nil
}
