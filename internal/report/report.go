// Package report renders solver progress, the final tour and past runs as text.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"tsp-genetic/internal/genetic"
	"tsp-genetic/internal/models"
)

// Progress returns an observer that writes one line per generation with the
// best-ever distance. With detailed set the line also carries the population
// statistics of that generation.
func Progress(w io.Writer, detailed bool) genetic.Observer {
	return func(s genetic.GenerationStats) {
		if !detailed {
			fmt.Fprintf(w, "Generation %d: Best Distance = %.2f\n", s.Generation, s.BestEver)
			return
		}
		fmt.Fprintf(w, "Generation %d: Best Distance = %.2f (generation best %.2f, mean %.2f, median %.2f, stddev %.2f)\n",
			s.Generation, s.BestEver, s.GenerationBest, s.Mean, s.Median, s.StdDev)
	}
}

// FormatRoute renders stops as a closed cycle, e.g. "A -> B -> C -> A"
func FormatRoute(stops []models.RouteStop) string {
	if len(stops) == 0 {
		return ""
	}
	names := make([]string, 0, len(stops)+1)
	for _, s := range stops {
		names = append(names, s.Point.Name)
	}
	names = append(names, stops[0].Point.Name)
	return strings.Join(names, " -> ")
}

// FormatKm rounds a distance to whole kilometers with thousands separators
func FormatKm(km float64) string {
	return humanize.Comma(int64(math.Round(km))) + " km"
}

// Result writes the execution time, the best route and its length
func Result(w io.Writer, result *models.RoutingResult) {
	fmt.Fprintf(w, "Execution Time: %.2f ms\n", float64(result.Elapsed)/float64(time.Millisecond))
	fmt.Fprintln(w, "Best Route Found:")
	fmt.Fprintln(w, FormatRoute(result.Stops))
	fmt.Fprintf(w, "Distance: %s\n", FormatKm(result.TotalDistanceKm))
}

// Legs writes the per-stop breakdown of a tour, closing leg included
func Legs(w io.Writer, result *models.RoutingResult) {
	for _, s := range result.Stops {
		fmt.Fprintf(w, "%3d. %-14s %10.2f km %10.2f km\n",
			s.Order+1, s.Point.Name, s.DistanceFromPrevKm, s.CumulativeDistanceKm)
	}
	if len(result.Stops) > 0 {
		first, last := result.Stops[0], result.Stops[len(result.Stops)-1]
		closing := models.RoundDistance(result.TotalDistanceKm - last.CumulativeDistanceKm)
		fmt.Fprintf(w, "  -> %-14s %10.2f km %10.2f km\n", first.Point.Name, closing, result.TotalDistanceKm)
	}
}

// History writes a listing of past runs, newest first as given
func History(w io.Writer, runs []models.RunRecord, total int, now time.Time) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	fmt.Fprintf(w, "Showing %d of %s runs:\n", len(runs), humanize.Comma(int64(total)))
	for _, r := range runs {
		fmt.Fprintf(w, "#%-5d %2d cities  %12s  gen=%d pop=%d seed=%d  %s  (%s)\n",
			r.ID, r.CityCount, FormatKm(r.TotalDistanceKm), r.Generations, r.PopulationSize,
			r.Seed, formatElapsed(r.ElapsedMs), humanize.RelTime(r.CreatedAt, now, "ago", "from now"))
	}
}

// RunDetail writes a single persisted run with its stops
func RunDetail(w io.Writer, run *models.RunRecord, stops []models.RunStop) {
	fmt.Fprintf(w, "Run #%d: %d cities, %s, seed %d, %s\n",
		run.ID, run.CityCount, FormatKm(run.TotalDistanceKm), run.Seed, formatElapsed(run.ElapsedMs))

	names := make([]string, 0, len(stops)+1)
	for _, s := range stops {
		names = append(names, s.PointName)
	}
	if len(stops) > 0 {
		names = append(names, stops[0].PointName)
	}
	fmt.Fprintln(w, strings.Join(names, " -> "))
}

func formatElapsed(ms int64) string {
	return humanize.Comma(ms) + " ms"
}
