// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/scholaris"
	"github.com/poiesic/scholaris/ai"
	"github.com/poiesic/scholaris/backfill"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/match"
	"github.com/poiesic/scholaris/sdg"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "scholaris",
		Usage: "Semantic matching engine for a university research hub",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "classify",
				Usage:  "Classify a document against the sustainable development goals",
				Action: classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title",
					},
					&cli.StringFlag{
						Name:  "abstract",
						Usage: "Document abstract",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum keyword match ratio for a goal to apply",
						Value: sdg.DefaultThreshold,
					},
				},
			},
			{
				Name:   "supervisors",
				Usage:  "Match supervisors for a thesis abstract",
				Action: supervisorsCommand,
				Flags: append(storageFlags(),
					&cli.StringFlag{
						Name:     "abstract",
						Usage:    "Thesis abstract to match against",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "department",
						Usage: "Restrict candidates to one department",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of matches to return",
						Value: match.DefaultSupervisorMatches,
					},
				),
			},
			{
				Name:   "align",
				Usage:  "Find researchers aligned with a grant description",
				Action: alignCommand,
				Flags: append(storageFlags(),
					&cli.StringFlag{
						Name:     "description",
						Usage:    "Grant description to match against",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "department",
						Usage: "Restrict candidates to one department",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of matches to return",
						Value: match.DefaultAlignedResearchers,
					},
				),
			},
			{
				Name:   "recommend",
				Usage:  "Recommend publications for a researcher",
				Action: recommendCommand,
				Flags: append(storageFlags(),
					&cli.Uint64Flag{
						Name:     "researcher",
						Usage:    "Researcher ID to recommend for",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of recommendations to return",
						Value: match.DefaultPublicationRecommendations,
					},
				),
			},
			{
				Name:   "backfill",
				Usage:  "Recompute missing embedding vectors for stored records",
				Action: backfillCommand,
				Flags: append(storageFlags(),
					&cli.StringFlag{
						Name:  "kind",
						Usage: "What to backfill (researchers, publications, all)",
						Value: "all",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed storage updates",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of batches processed concurrently",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Print aggregate statistics for the stored corpus",
				Action: statsCommand,
				Flags:  storageFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// storageFlags are shared by every command that opens the database.
func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding vector width",
			Value: ai.DefaultDimension,
		},
	}
}

func openDatabase(c *cli.Context) (*scholaris.Database, error) {
	embeddingConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
	)
	if err := embeddingConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedding configuration: %w", err)
	}

	db, err := scholaris.NewDatabase(c.String("db"), scholaris.WithEmbeddingConfig(embeddingConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func classifyCommand(c *cli.Context) error {
	title := c.String("title")
	abstract := c.String("abstract")
	if strings.TrimSpace(title) == "" && strings.TrimSpace(abstract) == "" {
		return fmt.Errorf("at least one of --title and --abstract is required")
	}

	threshold := c.Float64("threshold")
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1]")
	}

	codes := sdg.ClassifyDocument(title, abstract, threshold)
	if len(codes) == 0 {
		fmt.Println("No goals matched")
		return nil
	}
	for _, code := range codes {
		fmt.Printf("%s\t%s\n", code, sdg.LabelFor(code))
	}
	return nil
}

func supervisorsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	matcher, err := db.NewMatcher()
	if err != nil {
		return err
	}

	opts := []match.QueryOption{match.WithTopK(c.Int("top"))}
	if department := c.String("department"); department != "" {
		opts = append(opts, match.WithDepartment(department))
	}

	matches, err := matcher.MatchSupervisors(ctx, c.String("abstract"), opts...)
	if err != nil {
		return fmt.Errorf("supervisor matching failed: %w", err)
	}

	printResearcherMatches(matches)
	return nil
}

func alignCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	matcher, err := db.NewMatcher()
	if err != nil {
		return err
	}

	opts := []match.QueryOption{match.WithTopK(c.Int("top"))}
	if department := c.String("department"); department != "" {
		opts = append(opts, match.WithDepartment(department))
	}

	matches, err := matcher.AlignedResearchers(ctx, c.String("description"), opts...)
	if err != nil {
		return fmt.Errorf("researcher alignment failed: %w", err)
	}

	printResearcherMatches(matches)
	return nil
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	matcher, err := db.NewMatcher()
	if err != nil {
		return err
	}

	researcherId := core.ID(c.Uint64("researcher"))
	matches, err := matcher.RecommendPublications(ctx, researcherId, match.WithTopK(c.Int("top")))
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches")
		return nil
	}
	for i, m := range matches {
		fmt.Printf("%2d. %.3f  %s", i+1, m.Score, m.Publication.Title)
		if m.Publication.DOI != "" {
			fmt.Printf("  doi:%s", m.Publication.DOI)
		}
		fmt.Println()
	}
	return nil
}

func backfillCommand(c *cli.Context) error {
	ctx := context.Background()

	kind := strings.ToLower(c.String("kind"))
	switch kind {
	case "researchers", "publications", "all":
	default:
		return fmt.Errorf("invalid kind %q: must be one of researchers, publications, all", kind)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	config := &backfill.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Workers:        c.Int("workers"),
	}

	backfiller := db.NewBackfiller(config, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if kind == "researchers" || kind == "all" {
		if err := backfiller.RunResearchers(ctx); err != nil {
			return fmt.Errorf("researcher backfill failed: %w", err)
		}
	}
	if kind == "publications" || kind == "all" {
		if err := backfiller.RunPublications(ctx); err != nil {
			return fmt.Errorf("publication backfill failed: %w", err)
		}
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewAnalytics()
	if err != nil {
		return err
	}

	summary, err := service.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}
	fmt.Printf("Researchers:  %d\n", summary.Researchers)
	fmt.Printf("Publications: %d\n", summary.Publications)
	fmt.Printf("Theses:       %d\n", summary.Theses)
	fmt.Printf("Departments:  %d\n", summary.Departments)

	distribution, err := service.GoalDistribution(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute goal distribution: %w", err)
	}
	if len(distribution.Goals) > 0 {
		fmt.Printf("\nSustainable development goals (%d of %d publications tagged):\n",
			distribution.Tagged, distribution.Total)
		for _, goal := range distribution.Goals {
			fmt.Printf("  %-7s %-36s %4d\n", goal.Code, goal.Label, goal.Count)
		}
	}

	performance, err := service.DepartmentPerformance(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute department performance: %w", err)
	}
	if len(performance.Departments) > 0 {
		fmt.Println("\nDepartments:")
		for _, department := range performance.Departments {
			fmt.Printf("  %-30s %3d researchers  %4d publications  (%.1f per researcher)\n",
				department.Name, department.Researchers, department.Publications,
				department.PublicationsPerResearcher)
		}
	}

	collaboration, err := service.CollaborationMetrics(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute collaboration metrics: %w", err)
	}
	if collaboration.Edges > 0 {
		fmt.Printf("\nCollaboration: %d co-author pairs, %.1f joint publications on average\n",
			collaboration.Edges, collaboration.AverageStrength)
		for _, collaborator := range collaboration.TopCollaborators {
			fmt.Printf("  %-30s %3d partners  %4d joint\n",
				collaborator.Name, collaborator.Partners, collaborator.Joint)
		}
	}

	loads, err := service.SupervisorLoads(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute supervisor loads: %w", err)
	}
	if len(loads) > 0 {
		fmt.Println("\nSupervision:")
		for _, load := range loads {
			fmt.Printf("  %-30s %3d theses\n", load.Name, load.Theses)
		}
	}

	return nil
}

func printResearcherMatches(matches []*match.ResearcherMatch) {
	if len(matches) == 0 {
		fmt.Println("No matches")
		return
	}
	for i, m := range matches {
		fmt.Printf("%2d. %.3f  %s", i+1, m.Score, m.Researcher.Name)
		if m.Researcher.Department != "" {
			fmt.Printf("  (%s)", m.Researcher.Department)
		}
		fmt.Println()
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
