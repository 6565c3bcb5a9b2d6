package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"strider/internal/episode"
	"strider/internal/storage"
	striderapi "strider/pkg/strider"
)

const exportsDir = "exports"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "episodes":
		return runEpisodes(ctx, args[1:])
	case "trajectory":
		return runTrajectory(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: striderctl <init|reset|run|episodes|trajectory|export> [flags]", msg)
}

func storeFlags(fs *flag.FlagSet) (*string, *string) {
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "strider.db", "sqlite database path")
	return storeKind, dbPath
}

func newClient(storeKind, dbPath string) (*striderapi.Client, error) {
	return striderapi.New(striderapi.Options{
		StoreKind:  storeKind,
		DBPath:     dbPath,
		ExportsDir: exportsDir,
	})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if _, err := client.Episodes(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	configPath := fs.String("config", "", "episode config JSON path")
	episodeID := fs.String("episode-id", "", "episode id (generated when empty)")
	seed := fs.Int64("seed", 0, "episode random seed")
	steps := fs.Int("steps", 1000, "tick count")
	recordEvery := fs.Int("record-every", 1, "trajectory sampling stride")
	export := fs.Bool("export", false, "write artifacts after the run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := episode.DefaultRequest()
	if *configPath != "" {
		loaded, err := loadRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = loaded
	} else {
		req.Seed = *seed
		req.Steps = *steps
		req.RecordEvery = *recordEvery
	}
	if *episodeID != "" {
		req.EpisodeID = *episodeID
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	result, err := client.RunExploration(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("episode=%s steps=%d sim_time=%.3fs turns=%d\n",
		result.EpisodeID, result.Steps, result.SimTime, result.TurnCount)
	fmt.Printf("final=(%.3f, %.3f) estimate=(%.3f, %.3f) drift=%.4f heading_err=%.4f\n",
		result.FinalPosition[0], result.FinalPosition[1],
		result.EstimatePose[0], result.EstimatePose[1],
		result.Drift, result.HeadingErr)

	if *export {
		dir, err := client.Export(ctx, result.EpisodeID)
		if err != nil {
			return err
		}
		fmt.Printf("artifacts: %s\n", dir)
	}
	return nil
}

func runEpisodes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("episodes", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	episodes, err := client.Episodes(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(episodes)
	}
	for _, ep := range episodes {
		fmt.Printf("%s seed=%d steps=%d sim_time=%.3fs turns=%d\n",
			ep.ID, ep.Seed, ep.Steps, ep.SimTime, ep.TurnCount)
	}
	return nil
}

func runTrajectory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trajectory", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	episodeID := fs.String("episode-id", "", "episode id")
	limit := fs.Int("limit", 0, "print at most N samples (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *episodeID == "" {
		return usageError("trajectory requires -episode-id")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	samples, err := client.Trajectory(ctx, *episodeID)
	if err != nil {
		return err
	}
	if *limit > 0 && len(samples) > *limit {
		samples = samples[:*limit]
	}
	return printJSON(samples)
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	episodeID := fs.String("episode-id", "", "episode id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *episodeID == "" {
		return usageError("export requires -episode-id")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	dir, err := client.Export(ctx, *episodeID)
	if err != nil {
		return err
	}
	fmt.Printf("artifacts: %s\n", dir)
	return nil
}

func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
