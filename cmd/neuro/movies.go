package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/neurocore/pkg/tmdb"
)

var moviesPage int

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Query The Movie Database",
}

var moviesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search movies by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := tmdb.New(&cfg.TMDB).Search(cmd.Context(), args[0], moviesPage)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if resp.TotalResults == 0 {
			fmt.Fprintln(out, "no movies found")
			return nil
		}
		for _, m := range resp.Results {
			fmt.Fprintf(out, "%d\t%s\t%s\n", m.ID, m.Title, m.ReleaseDate)
		}
		fmt.Fprintf(out, "page %d of %d (%d results)\n", resp.Page, resp.TotalPages, resp.TotalResults)
		return nil
	},
}

var moviesDetailCmd = &cobra.Command{
	Use:   "detail [id]",
	Short: "Show the full TMDB record for a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q", args[0])
		}

		detail, err := tmdb.New(&cfg.TMDB).Detail(cmd.Context(), id)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	},
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	moviesCmd.AddCommand(moviesSearchCmd, moviesDetailCmd)
	moviesSearchCmd.Flags().IntVar(&moviesPage, "page", 1, "Result page")
}
