// catalogctl queries the upstream catalog from the command line and prints
// canonical records, either as text or JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"biblio/internal/catalog"
	"biblio/internal/platform/opac"
)

func main() {
	_ = godotenv.Load(".env.local")
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var baseURL string
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Query the bibliographic catalog and print canonical records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", os.Getenv("OPAC_BASE_URL"), "catalog API base URL")
	root.AddCommand(newSearchCmd(&baseURL), newRecordCmd(&baseURL))
	return root
}

func newService(baseURL string) (*catalog.Service, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("catalog base URL not set (use --base-url or OPAC_BASE_URL)")
	}
	client := opac.NewClient(baseURL, "catalogctl/1.0", 2, 3)
	return catalog.NewService(client), nil
}

func newSearchCmd(baseURL *string) *cobra.Command {
	var (
		limit    int
		page     int
		language string
		sort     string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog and list normalized records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(*baseURL)
			if err != nil {
				return err
			}
			opts := opac.SearchOptions{Limit: limit, Page: page, Language: language, SortOrder: sort}
			result, err := svc.Search(cmd.Context(), strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, result)
			}
			cmd.Printf("%d result(s), showing %d\n", result.Total, len(result.Records))
			for _, rec := range result.Records {
				line := rec.Title
				if rec.Author != "" {
					line += " / " + rec.Author
				}
				if rec.Year != "" {
					line += " (" + rec.Year + ")"
				}
				cmd.Printf("%s\t%s\n", rec.ID, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "results per page (1-100)")
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().StringVar(&language, "language", "", "preferred language tag, e.g. fi or en-GB")
	cmd.Flags().StringVar(&sort, "sort", "", "sort order: relevance, newest, oldest or title")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the canonical records as JSON")
	return cmd
}

func newRecordCmd(baseURL *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "record <id>",
		Short: "Fetch one record and print its canonical detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(*baseURL)
			if err != nil {
				return err
			}
			detail, err := svc.GetDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, detail)
			}
			cmd.Printf("Title:      %s\n", detail.Title)
			if len(detail.Authors) > 0 {
				cmd.Printf("Authors:    %s\n", strings.Join(detail.Authors, "; "))
			}
			if detail.Year != "" {
				cmd.Printf("Year:       %s\n", detail.Year)
			}
			if len(detail.Formats) > 0 {
				cmd.Printf("Formats:    %s\n", strings.Join(detail.Formats, ", "))
			}
			if len(detail.Publishers) > 0 {
				cmd.Printf("Publishers: %s\n", strings.Join(detail.Publishers, ", "))
			}
			if len(detail.ISBNs) > 0 {
				cmd.Printf("ISBN:       %s\n", strings.Join(detail.ISBNs, ", "))
			}
			if av := detail.Availability; av != nil {
				cmd.Printf("Available:  %d of %d\n", av.Available, av.Total)
				for _, loc := range av.Locations {
					cmd.Printf("  %-24s %d available (%s)\n", loc.Location, loc.Available, loc.Status)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the canonical detail as JSON")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
