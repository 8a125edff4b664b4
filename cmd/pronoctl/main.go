package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Dosada05/prono-scoreboard/config"
	"github.com/Dosada05/prono-scoreboard/db"
	"github.com/Dosada05/prono-scoreboard/fifaapi"
	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/Dosada05/prono-scoreboard/repositories"
	"github.com/Dosada05/prono-scoreboard/services"
	"github.com/Dosada05/prono-scoreboard/storage"
	"github.com/Dosada05/prono-scoreboard/utils"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "pronoctl",
		Usage: "offline tools for the prediction pool scoreboard",
		Commands: []*cli.Command{
			newScoreCommand(),
			newHashPasswordCommand(),
			newPredictionsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newScoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "compute the leaderboard from a calendar payload and a predictions directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "payload", Usage: "saved FIFA calendar JSON"},
			&cli.StringFlag{Name: "url", Usage: "fetch the calendar from this URL instead of --payload"},
			&cli.StringFlag{Name: "predictions", Usage: "directory with one JSON file per participant", Required: true},
			&cli.StringFlag{Name: "bonus", Usage: "YAML bonus table", EnvVars: []string{"BONUS_FILE"}},
		},
		Action: func(c *cli.Context) error {
			var fetcher services.TournamentFetcher
			switch {
			case c.String("payload") != "":
				fetcher = fifaapi.FileSource{Path: c.String("payload")}
			case c.String("url") != "":
				fetcher = fifaapi.NewClient(c.String("url"), nil)
			default:
				return errors.New("one of --payload or --url is required")
			}

			bonuses, err := config.LoadBonuses(c.String("bonus"))
			if err != nil {
				return err
			}

			raw, err := fetcher.Fetch(c.Context)
			if err != nil {
				return err
			}
			snapshot, err := services.Normalize(raw)
			if err != nil {
				return err
			}
			participants, err := repositories.NewFilePredictionRepository(c.String("predictions")).ListParticipants(c.Context)
			if err != nil {
				return err
			}

			scorer := services.NewScorer(bonuses)
			scores := make([]*models.PlayerScore, 0, len(participants))
			for _, p := range participants {
				if p.LoadErr != nil {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", p.ParticipantID, p.LoadErr)
					continue
				}
				score, err := scorer.ScoreParticipant(snapshot, p.ParticipantID, p.Predictions)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", p.ParticipantID, err)
					continue
				}
				scores = append(scores, score)
			}

			return printLeaderboard(c.App.Writer, scores, services.BuildLeaderboard(scores))
		},
	}
}

func printLeaderboard(out io.Writer, scores []*models.PlayerScore, rankings []models.RankEntry) error {
	byID := make(map[string]*models.PlayerScore, len(scores))
	for _, s := range scores {
		byID[s.PlayerID] = s
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tMATCHES\tGROUPS\tBONUS\tTOTAL")
	rank := 1
	for _, entry := range rankings {
		for _, id := range entry.Players {
			s := byID[id]
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n", rank, s.Name, s.MatchesScore, s.GroupsScore, s.BonusScore, s.TotalScore)
		}
		rank += len(entry.Players)
	}
	return tw.Flush()
}

func newHashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "print a bcrypt hash for ADMIN_PASSWORD_HASH",
		ArgsUsage: "<password>",
		Action: func(c *cli.Context) error {
			password := c.Args().First()
			if password == "" {
				return errors.New("password argument is required")
			}
			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}

func newPredictionsCommand() *cli.Command {
	dirFlag := &cli.StringFlag{Name: "dir", Usage: "directory with one JSON file per participant", Required: true}

	return &cli.Command{
		Name:  "predictions",
		Usage: "copy prediction files to the other prediction sources",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "replace participants' predictions in Postgres",
				Flags: []cli.Flag{
					dirFlag,
					&cli.StringFlag{Name: "database-url", EnvVars: []string{"DATABASE_URL"}, Required: true},
				},
				Action: func(c *cli.Context) error {
					participants, err := loadCleanParticipants(c.Context, c.String("dir"))
					if err != nil {
						return err
					}

					dbConn, err := db.Connect(c.String("database-url"), 5*time.Second)
					if err != nil {
						return err
					}
					defer dbConn.Close()
					if err := db.EnsureSchema(c.Context, dbConn); err != nil {
						return err
					}

					repo := repositories.NewPostgresPredictionRepository(dbConn)
					for _, p := range participants {
						if err := repo.ReplaceParticipant(c.Context, p); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "Imported %s (%d predictions)\n", p.ParticipantID, len(p.Predictions))
					}
					return nil
				},
			},
			{
				Name:  "publish",
				Usage: "upload prediction files to the Cloudflare R2 bucket",
				Flags: []cli.Flag{
					dirFlag,
					&cli.StringFlag{Name: "account-id", EnvVars: []string{"R2_ACCOUNT_ID"}, Required: true},
					&cli.StringFlag{Name: "access-key-id", EnvVars: []string{"R2_ACCESS_KEY_ID"}, Required: true},
					&cli.StringFlag{Name: "secret-access-key", EnvVars: []string{"R2_SECRET_ACCESS_KEY"}, Required: true},
					&cli.StringFlag{Name: "bucket", EnvVars: []string{"R2_BUCKET_NAME"}, Required: true},
					&cli.StringFlag{Name: "public-base-url", EnvVars: []string{"R2_PUBLIC_BASE_URL"}},
					&cli.StringFlag{Name: "prefix", EnvVars: []string{"R2_PREDICTIONS_PREFIX"}, Value: "predictions/"},
				},
				Action: func(c *cli.Context) error {
					participants, err := loadCleanParticipants(c.Context, c.String("dir"))
					if err != nil {
						return err
					}

					store, err := storage.NewCloudflareR2Store(c.Context, storage.CloudflareR2Config{
						AccountID:       c.String("account-id"),
						AccessKeyID:     c.String("access-key-id"),
						SecretAccessKey: c.String("secret-access-key"),
						BucketName:      c.String("bucket"),
						PublicBaseURL:   c.String("public-base-url"),
					})
					if err != nil {
						return err
					}

					for _, p := range participants {
						key, err := publishParticipant(c.Context, store, c.String("prefix"), p)
						if err != nil {
							return err
						}
						location := store.GetPublicURL(key)
						if location == "" {
							location = key
						}
						fmt.Fprintf(c.App.Writer, "Published %s -> %s\n", p.ParticipantID, location)
					}
					return nil
				},
			},
		},
	}
}

// loadCleanParticipants reads a predictions directory and refuses it as a
// whole when any file is malformed, so nothing partial is copied.
func loadCleanParticipants(ctx context.Context, dir string) ([]models.ParticipantPredictions, error) {
	participants, err := repositories.NewFilePredictionRepository(dir).ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range participants {
		if p.LoadErr != nil {
			return nil, p.LoadErr
		}
	}
	return participants, nil
}

// publishParticipant stores the participant under prefix using the id as file
// name, which maps back to the same id when the bucket is read.
func publishParticipant(ctx context.Context, store storage.ObjectStore, prefix string, p models.ParticipantPredictions) (string, error) {
	body, err := json.MarshalIndent(p.Predictions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode predictions of %s: %w", p.ParticipantID, err)
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	result, err := store.Upload(ctx, prefix+p.ParticipantID+".json", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	return result.Key, nil
}
