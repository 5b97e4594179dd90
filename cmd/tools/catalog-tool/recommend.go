package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scheme-finder/internal/common/validation"
	"scheme-finder/internal/matching"
	"scheme-finder/internal/models"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank the catalog for a profile given by flags",
	Example: `  catalog-tool recommend --age 19 --gender Female --education "Class 12" \
    --area Rural --state Bihar --category Student --category "Girl Child"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		age, _ := flags.GetInt("age")
		gender, _ := flags.GetString("gender")
		education, _ := flags.GetString("education")
		area, _ := flags.GetString("area")
		state, _ := flags.GetString("state")
		categories, _ := flags.GetStringArray("category")
		asJSON, _ := flags.GetBool("json")

		profile := validation.NormalizeProfile(models.UserProfile{
			Age:        age,
			Gender:     models.Gender(gender),
			Education:  models.Education(education),
			Area:       models.Area(area),
			State:      state,
			Categories: categories,
		})
		if res := validation.ValidateProfile(profile); !res.Valid {
			return fmt.Errorf("invalid profile: %s", strings.Join(res.GetErrorMessages(), "; "))
		}

		schemes, err := loadSchemes()
		if err != nil {
			return err
		}
		recs := matching.Recommend(profile, schemes)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		}

		if len(recs) == 0 {
			fmt.Fprintln(out, "No matching schemes.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tSCORE\tID\tNAME")
		for i, r := range recs {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", i+1, r.MatchScore, r.ID, r.Name)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	f := recommendCmd.Flags()
	f.Int("age", 0, "age in years")
	f.String("gender", "", "Male, Female or Other")
	f.String("education", "", "education level, e.g. \"Class 12\"")
	f.String("area", "", "Rural or Urban")
	f.String("state", "", "state or union territory")
	f.StringArray("category", nil, "citizen category, repeatable")
	f.Bool("json", false, "print the ranking as JSON")
}
