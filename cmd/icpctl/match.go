package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

type matchRow struct {
	ID      string              `json:"id"`
	Company string              `json:"company"`
	Score   int                 `json:"score"`
	Match   scoring.MatchResult `json:"match"`
}

func newMatchCmd() *cobra.Command {
	var (
		inputFile   string
		profileFile string
		minScore    int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score leads against an ICP profile",
		Long:  "Score every lead in a JSON array against a profile written by 'icpctl derive', best match first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if profileFile == "" {
				return fmt.Errorf("--profile is required")
			}
			profile, err := readProfile(profileFile)
			if err != nil {
				return err
			}
			leads, err := readLeads(cmd, inputFile)
			if err != nil {
				return err
			}

			rows := make([]matchRow, 0, len(leads))
			for _, lead := range leads {
				result := scoring.ExplainMatch(lead, profile)
				if result.Score < minScore {
					continue
				}
				rows = append(rows, matchRow{ID: lead.ID, Company: lead.Company, Score: lead.Score, Match: result})
			}
			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i].Match.Score > rows[j].Match.Score
			})
			return writeJSON(cmd, "", rows)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "-", "JSON array of leads (- for stdin)")
	cmd.Flags().StringVarP(&profileFile, "profile", "p", "", "ICP profile JSON file")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Only print leads scoring at least this much")
	return cmd
}
