// Command mazegen generates mazes offline, compares the generation
// algorithms and validates configuration files.
//
//	mazegen generate --rows 10 --cols 20 --algorithm backtracker --seed 42 --solution
//	mazegen stats --rows 25 --cols 25 --runs 50
//	mazegen validate configs
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/maze-runner-game/game/engine"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "mazegen",
		Usage: "generate and inspect perfect mazes",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "print a freshly generated maze",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "rows", Value: 15, Usage: "number of rows"},
					&cli.IntFlag{Name: "cols", Value: 15, Usage: "number of columns"},
					&cli.StringFlag{Name: "algorithm", Value: engine.AlgorithmRandom, Usage: "frontier, backtracker, growing_tree or random"},
					&cli.IntFlag{Name: "branch", Usage: "growing tree branch length (0 uses the default)"},
					&cli.IntFlag{Name: "seed", Usage: "random seed (0 picks one from the clock)"},
					&cli.IntFlag{Name: "shifts", Usage: "origin shifts applied after carving"},
					&cli.IntFlag{Name: "coins", Usage: "coins to scatter"},
					&cli.BoolFlag{Name: "solution", Usage: "mark the path from start to exit"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					config := engine.DefaultConfig()
					config.Name = "mazegen"
					config.Rows = int(cmd.Int("rows"))
					config.Cols = int(cmd.Int("cols"))
					config.Algorithm = cmd.String("algorithm")
					config.BranchLength = int(cmd.Int("branch"))
					config.Seed = int64(cmd.Int("seed"))
					config.OriginShifts = int(cmd.Int("shifts"))
					config.Coins = int(cmd.Int("coins"))
					return runGenerate(ctx, w, config, cmd.Bool("solution"))
				},
			},
			{
				Name:  "stats",
				Usage: "compare the generation algorithms",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "rows", Value: 25, Usage: "number of rows"},
					&cli.IntFlag{Name: "cols", Value: 25, Usage: "number of columns"},
					&cli.IntFlag{Name: "runs", Value: 20, Usage: "mazes per algorithm"},
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "seed of the first run"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					report, err := collectStats(ctx, int(cmd.Int("rows")), int(cmd.Int("cols")), int(cmd.Int("runs")), int64(cmd.Int("seed")))
					if err != nil {
						return err
					}
					printStats(w, report)
					return nil
				},
			},
			{
				Name:      "validate",
				Usage:     "validate every configuration file in a directory",
				ArgsUsage: "[dir]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir := cmd.Args().First()
					if dir == "" {
						dir = "configs"
					}
					return runValidate(w, dir)
				},
			},
		},
	}
}

func runGenerate(ctx context.Context, w io.Writer, config *engine.GameConfig, withSolution bool) error {
	maze, err := engine.NewMaze(config, nil)
	if err != nil {
		return err
	}
	gen, err := maze.Generate()
	if err != nil {
		return err
	}
	if _, err := gen.RunContext(ctx); err != nil {
		return err
	}

	stats := maze.Stats()
	state := maze.GetState()
	fmt.Fprint(w, maze.Render(withSolution))
	fmt.Fprintf(w, "algorithm=%s cells=%d dead_ends=%d junctions=%d max_depth=%d solution=%d straight_line=%d\n",
		stats.Algorithm, stats.Cells, stats.DeadEnds, stats.Junctions, stats.MaxDepth, stats.SolutionLength, stats.StraightLine)
	fmt.Fprintf(w, "start=(%d,%d) exit=(%d,%d)\n", state.Start.Row, state.Start.Col, state.End.Row, state.End.Col)
	return nil
}

// algorithmStats averages MazeStats over a number of runs
type algorithmStats struct {
	Algorithm   string
	Runs        int
	AvgSolution float64
	AvgStraight float64
	AvgDeadEnds float64
	AvgMaxDepth float64
	Longest     int
}

func collectStats(ctx context.Context, rows, cols, runs int, seed int64) ([]algorithmStats, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}

	report := make([]algorithmStats, 0, len(engine.Algorithms))
	for _, algorithm := range engine.Algorithms {
		config := engine.DefaultConfig()
		config.Rows, config.Cols = rows, cols
		config.Algorithm = algorithm
		config.Coins = 0

		samples := make([]engine.MazeStats, 0, runs)
		for i := 0; i < runs; i++ {
			maze, err := engine.NewMaze(config, rand.New(rand.NewSource(seed+int64(i))))
			if err != nil {
				return nil, err
			}
			gen, err := maze.Generate()
			if err != nil {
				return nil, err
			}
			if _, err := gen.RunContext(ctx); err != nil {
				return nil, err
			}
			samples = append(samples, maze.Stats())
		}

		avg := func(field func(engine.MazeStats) int) float64 {
			return float64(lo.SumBy(samples, field)) / float64(len(samples))
		}
		report = append(report, algorithmStats{
			Algorithm:   algorithm,
			Runs:        runs,
			AvgSolution: avg(func(s engine.MazeStats) int { return s.SolutionLength }),
			AvgStraight: avg(func(s engine.MazeStats) int { return s.StraightLine }),
			AvgDeadEnds: avg(func(s engine.MazeStats) int { return s.DeadEnds }),
			AvgMaxDepth: avg(func(s engine.MazeStats) int { return s.MaxDepth }),
			Longest:     lo.Max(lo.Map(samples, func(s engine.MazeStats, _ int) int { return s.SolutionLength })),
		})
	}
	return report, nil
}

func printStats(w io.Writer, report []algorithmStats) {
	fmt.Fprintf(w, "%-14s %6s %12s %9s %10s %10s %8s\n", "algorithm", "runs", "avg_solution", "straight", "dead_ends", "max_depth", "longest")
	for _, s := range report {
		fmt.Fprintf(w, "%-14s %6d %12.1f %9.1f %10.1f %10.1f %8d\n",
			s.Algorithm, s.Runs, s.AvgSolution, s.AvgStraight, s.AvgDeadEnds, s.AvgMaxDepth, s.Longest)
	}
}

// validationResult captures the outcome of validating a single file
type validationResult struct {
	File  string
	Valid bool
	Err   error
	Info  string
}

func validateDir(dir string) ([]validationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files found in %s", dir)
	}
	sort.Strings(files)

	return lo.Map(files, func(file string, _ int) validationResult {
		result := validationResult{File: filepath.Base(file)}
		config, err := engine.LoadGameConfig(file)
		if err != nil {
			result.Err = err
			return result
		}
		result.Valid = true
		algorithm := config.Algorithm
		if algorithm == "" {
			algorithm = engine.AlgorithmRandom
		}
		result.Info = fmt.Sprintf("%s: %dx%d %s, %d coins", config.Name, config.Rows, config.Cols, algorithm, config.Coins)
		return result
	}), nil
}

func runValidate(w io.Writer, dir string) error {
	results, err := validateDir(dir)
	if err != nil {
		return err
	}

	invalid := 0
	for _, result := range results {
		fmt.Fprintf(w, "%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Fprintf(w, "  VALID   %s\n", result.Info)
		} else {
			invalid++
			fmt.Fprintf(w, "  INVALID %v\n", result.Err)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 40))
	if invalid > 0 {
		return fmt.Errorf("%d of %d configurations are invalid", invalid, len(results))
	}
	fmt.Fprintf(w, "All %d configurations are valid\n", len(results))
	return nil
}
