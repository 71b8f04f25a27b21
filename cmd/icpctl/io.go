package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

// openInput returns stdin for "" or "-"
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// readLeads decodes a JSON array of leads. Leads without an id or tier get
// them assigned the same way the service would.
func readLeads(cmd *cobra.Command, path string) ([]models.Lead, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var leads []models.Lead
	if err := json.NewDecoder(r).Decode(&leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	for i := range leads {
		if leads[i].ID == "" {
			leads[i].ID = fmt.Sprintf("lead-%d", i+1)
		}
		if leads[i].Tier == "" {
			leads[i].Tier = scoring.ClassifyTier(leads[i].Input())
		}
		if leads[i].Source == "" {
			leads[i].Source = models.SourceManual
		}
	}
	return leads, nil
}

func readProfile(path string) (scoring.ICPProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scoring.ICPProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	profile := scoring.EmptyProfile()
	if err := json.Unmarshal(data, &profile); err != nil {
		return scoring.ICPProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

// writeJSON writes v indented to path, or to stdout when path is empty
func writeJSON(cmd *cobra.Command, path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
