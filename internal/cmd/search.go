package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/marks/internal/api"
	"github.com/runger/marks/internal/history"
	"github.com/runger/marks/internal/render"
	"github.com/runger/marks/internal/sanitize"
)

// Output formats of the one-shot commands.
const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"
)

// maxLimit bounds --limit.
const maxLimit = 100

// requestTimeout bounds a one-shot command end to end.
const requestTimeout = 30 * time.Second

var (
	searchFormat  string
	searchLimit   int
	similarFormat string
	similarLimit  int
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search bookmarks once and print the results",
	GroupID: groupCore,
	Long: `Search bookmarks and print the ranked results.

A search that returns at least one result is added to the search
history shown by the interactive view.

Examples:
  marks search rust async          # Ranked results as text
  marks search --format json go    # Output as JSON
  marks search --format html tls   # Result cards as HTML
  marks search --limit 5 kafka     # Return up to 5 results`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var similarCmd = &cobra.Command{
	Use:     "similar <id>",
	Short:   "List bookmarks similar to a bookmark",
	GroupID: groupCore,
	Long: `List bookmarks judged similar to the bookmark with the given id.

The id is the "id" field of a search result (see --format json).

Examples:
  marks similar 42
  marks similar --format json 42`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", formatText, "output format: text, json, or html")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", api.SearchLimit, "maximum number of results")

	similarCmd.Flags().StringVarP(&similarFormat, "format", "f", formatText, "output format: text, json, or html")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", api.SimilarLimit, "maximum number of results")
}

type resultsOutput struct {
	Query   string       `json:"query,omitempty"`
	Source  int          `json:"source,omitempty"`
	Results []api.Result `json:"results"`
	Total   int          `json:"total"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}
	if err := validateOutput(searchFormat, searchLimit); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColorMode(cfg.UI.Color)

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	hist, closeHistory := openHistory(cfg, logger)
	defer closeHistory()

	return searchOnce(cmd.Context(), cmd.OutOrStdout(), client, hist, query, searchFormat, searchLimit)
}

// searchOnce runs one text search, records it on success and prints it.
func searchOnce(ctx context.Context, out io.Writer, s api.Searcher, hist *history.Store, query, format string, limit int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	resp, err := s.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(resp.Results) > 0 {
		hist.Record(query)
	}

	return writeResults(out, format, resultsOutput{
		Query:   query,
		Results: resp.Results,
		Total:   resp.Total,
	}, fmt.Sprintf("%d results", resp.Total), "No results found")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 0 {
		return fmt.Errorf("invalid bookmark id: %q", args[0])
	}
	if err := validateOutput(similarFormat, similarLimit); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColorMode(cfg.UI.Color)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	return similarOnce(cmd.Context(), cmd.OutOrStdout(), client, id, similarFormat, similarLimit)
}

// similarOnce runs one similarity search and prints it.
func similarOnce(ctx context.Context, out io.Writer, s api.Searcher, id int, format string, limit int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	resp, err := s.Similar(ctx, id, limit)
	if err != nil {
		return fmt.Errorf("similar search failed: %w", err)
	}

	return writeResults(out, format, resultsOutput{
		Source:  id,
		Results: resp.Results,
		Total:   resp.Total,
	}, fmt.Sprintf("%d similar bookmarks", resp.Total), "No similar bookmarks found")
}

// writeResults prints res in format. summary follows a non-empty text
// listing; empty replaces it.
func writeResults(out io.Writer, format string, res resultsOutput, summary, empty string) error {
	switch format {
	case formatJSON:
		if res.Results == nil {
			res.Results = []api.Result{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)

	case formatHTML:
		var node *render.Node
		if len(res.Results) == 0 {
			node = render.Empty("No matching bookmarks found", sanitize.HTML{})
		} else {
			node = render.Results(res.Results, sanitize.HTML{})
		}
		if err := render.WriteHTML(out, node); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err

	default:
		if len(res.Results) == 0 {
			_, err := fmt.Fprintln(out, empty)
			return err
		}
		body := render.Terminal(render.Results(res.Results, sanitize.Terminal{}), textStyles(),
			render.TerminalOptions{Width: termWidth(), Selected: -1})
		_, err := fmt.Fprintf(out, "%s\n\n%s%s%s\n", body, colorDim, summary, colorReset)
		return err
	}
}

func validateOutput(format string, limit int) error {
	switch format {
	case formatText, formatJSON, formatHTML:
	default:
		return fmt.Errorf("invalid --format %q (must be text, json, or html)", format)
	}
	if limit < 1 || limit > maxLimit {
		return fmt.Errorf("--limit must be between 1 and %d", maxLimit)
	}
	return nil
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, requestTimeout)
}
