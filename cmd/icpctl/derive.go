package main

import (
	"github.com/spf13/cobra"

	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

func newDeriveCmd() *cobra.Command {
	var (
		inputFile  string
		outputFile string
		seed       int64
		userCtx    models.UserContext
		outreach   models.OutreachStats
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive an ICP profile from a lead file",
		Long:  "Derive an Ideal Customer Profile from a JSON array of leads. With an empty array the onboarding flags and --seed drive the fallback profile.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			leads, err := readLeads(cmd, inputFile)
			if err != nil {
				return err
			}
			if err := userCtx.Validate(); err != nil {
				return err
			}

			var opts []scoring.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, scoring.WithSeed(seed))
			}
			engine := scoring.NewScoringEngine(opts...)

			profile := engine.DeriveICP(leads, outreach, userCtx)
			return writeJSON(cmd, outputFile, profile)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "-", "JSON array of leads (- for stdin)")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write the profile to this file instead of stdout")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the fallback randomness")
	cmd.Flags().StringVar(&userCtx.Industry, "industry", "", "Your industry, used when there are no leads")
	cmd.Flags().StringVar(&userCtx.CompanySize, "company-size", "", "Your company size, used when there are no leads")
	cmd.Flags().StringVar(&userCtx.Country, "country", "", "Your country, used when there are no leads")
	cmd.Flags().IntVar(&outreach.EmailsSent, "emails-sent", 0, "Emails already sent")
	cmd.Flags().IntVar(&outreach.LinkedInConnections, "linkedin-sent", 0, "LinkedIn connections already sent")
	cmd.Flags().IntVar(&outreach.CallsMade, "calls-made", 0, "Calls already made")
	return cmd
}
