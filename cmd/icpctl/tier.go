package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

type tierResult struct {
	Company    string      `json:"company"`
	Engagement int         `json:"engagement"`
	Tier       models.Tier `json:"tier"`
}

func newTierCmd() *cobra.Command {
	var (
		inputFile string
		in        models.LeadInput
	)

	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Classify leads as Hot, Warm or Cold",
		Long:  "Classify a single lead given by flags, or every lead in a JSON array passed with --in (use - for stdin).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var inputs []models.LeadInput
			if inputFile != "" {
				leads, err := readLeads(cmd, inputFile)
				if err != nil {
					return err
				}
				for _, l := range leads {
					inputs = append(inputs, l.Input())
				}
			} else {
				if in.Company == "" {
					in.Company = "(unnamed)"
				}
				if err := in.Validate(); err != nil {
					return fmt.Errorf("invalid lead: %w", err)
				}
				inputs = append(inputs, in)
			}

			results := make([]tierResult, 0, len(inputs))
			for _, li := range inputs {
				results = append(results, tierResult{
					Company:    li.Company,
					Engagement: scoring.EngagementScore(li),
					Tier:       scoring.ClassifyTier(li),
				})
			}
			return writeJSON(cmd, "", results)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "JSON array of leads (- for stdin)")
	cmd.Flags().StringVar(&in.Company, "company", "", "Company name")
	cmd.Flags().StringVar(&in.Industry, "industry", "", "Industry, e.g. SaaS")
	cmd.Flags().StringVar(&in.Employees, "employees", "", "Employee band, e.g. 200-500")
	cmd.Flags().StringVar(&in.Title, "title", "", "Contact job title")
	cmd.Flags().StringVar(&in.Revenue, "revenue", "", "Revenue band, e.g. \"$10M - $25M\"")
	cmd.Flags().IntVar(&in.Score, "score", 0, "Lead quality score 0-100")
	return cmd
}
