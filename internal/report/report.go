// Package report assembles and prints the per-role contribution report.
package report

import (
	"fmt"
	"io"
	"time"

	apperrors "rfcstat/internal/errors"
	"rfcstat/internal/models"
)

// Aggregate builds a Report from the per-role fetch results. Every role in
// the fixed order must be present in results; the count of each category is
// the length of its identifier slice by construction.
func Aggregate(results map[models.Role][]string, elapsed time.Duration) (models.Report, error) {
	categories := make([]models.Category, 0, len(models.RoleOrder))
	for _, role := range models.RoleOrder {
		ids, ok := results[role]
		if !ok {
			return models.Report{}, apperrors.Input("aggregate", fmt.Sprintf("missing results for role %q", role))
		}
		categories = append(categories, models.Category{Role: role, IDs: ids})
	}
	return models.Report{Categories: categories, Elapsed: elapsed}, nil
}

// Print renders the report to w: one "<label>: <count>" line per category
// in fixed order, the matching identifiers indented beneath each category
// when verbose, and the elapsed time.
func Print(w io.Writer, rep models.Report, verbose bool) error {
	for _, cat := range rep.Categories {
		if _, err := fmt.Fprintf(w, "%s: %d\n", cat.Role.Label(), cat.Count()); err != nil {
			return err
		}
		if !verbose {
			continue
		}
		for _, id := range cat.IDs {
			if _, err := fmt.Fprintf(w, "  %s\n", id); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\nfinished in %.2f s\n", rep.Elapsed.Seconds())
	return err
}
