package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/neurocore/internal/documents"
)

var seedUser int64

var samples = []documents.CreateCommand{
	{Title: "Grocery list", Content: "Milk, eggs, bread, coffee beans, and spinach."},
	{Title: "Meeting notes", Content: "Quarterly planning: finalize the roadmap and review hiring."},
	{Title: "Movie night", Content: "Candidates: Arrival, Blade Runner 2049, and Dune."},
	{Title: "Travel checklist", Content: "Passport, chargers, adapters, and a paper copy of the itinerary."},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample documents for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		for _, sample := range samples {
			doc, err := s.docs.Create(cmd.Context(), seedUser, sample)
			if err != nil {
				return fmt.Errorf("seed %q: %w", sample.Title, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d\t%s\n", doc.ID, doc.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Int64VarP(&seedUser, "user", "u", 1, "Owner of the seeded documents")
}
