package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type options struct {
	goBase     string
	legacyBase string
	nonce      string
	center     string
	offsets    []int
	timeout    time.Duration
}

type weekSnapshot struct {
	StartDate string
	EndDate   string
	IDs       []string
	Duration  time.Duration
}

type comparison struct {
	Offset      int
	Go          weekSnapshot
	Legacy      weekSnapshot
	OnlyGo      []string
	OnlyLegacy  []string
	WindowMatch bool
	Error       error
}

func (c comparison) matches() bool {
	return c.Error == nil && c.WindowMatch && len(c.OnlyGo) == 0 && len(c.OnlyLegacy) == 0
}

type legacyResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Message   string `json:"message"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Events    []struct {
			ID string `json:"id"`
		} `json:"events"`
	} `json:"data"`
}

type goResponse struct {
	Data struct {
		Sessions []struct {
			ID string `json:"id"`
		} `json:"sessions"`
		Window struct {
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		} `json:"window"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "shadow_compare",
		Short:        "Compare weekly sessions served by the legacy plugin and the Go API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: opts.timeout}
			results := make([]comparison, 0, len(opts.offsets))
			breaking := 0
			for _, offset := range opts.offsets {
				comp := compareWeek(client, opts, offset)
				if !comp.matches() {
					breaking++
				}
				results = append(results, comp)
			}

			printReport(cmd.OutOrStdout(), results)
			fmt.Fprintf(cmd.OutOrStdout(), "Weeks with diffs: %d of %d\n", breaking, len(results))
			if breaking > 0 {
				return fmt.Errorf("%d weeks differ", breaking)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.goBase, "go-base", "http://localhost:8080/api/v1", "Go API base URL including the prefix")
	cmd.Flags().StringVar(&opts.legacyBase, "legacy-base", "http://localhost", "WordPress site URL")
	cmd.Flags().StringVar(&opts.nonce, "nonce", "", "Nonce expected by the legacy AJAX action")
	cmd.Flags().StringVar(&opts.center, "center", "", "Center UUID sent to the Go API")
	cmd.Flags().IntSliceVar(&opts.offsets, "offsets", []int{0, 1}, "Week offsets to compare")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP client timeout")

	return cmd
}

func compareWeek(client *http.Client, opts options, offset int) comparison {
	comp := comparison{Offset: offset}

	goWeek, err := fetchGo(client, opts, offset)
	if err != nil {
		comp.Error = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	legacyWeek, err := fetchLegacy(client, opts, offset)
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.Go = goWeek
	comp.Legacy = legacyWeek
	comp.WindowMatch = goWeek.StartDate == legacyWeek.StartDate && goWeek.EndDate == legacyWeek.EndDate
	comp.OnlyGo, comp.OnlyLegacy = diffIDs(goWeek.IDs, legacyWeek.IDs)
	return comp
}

func fetchGo(client *http.Client, opts options, offset int) (weekSnapshot, error) {
	payload, err := json.Marshal(map[string]any{"week_offset": offset, "center_uuid": opts.center})
	if err != nil {
		return weekSnapshot{}, err
	}
	target := strings.TrimRight(opts.goBase, "/") + "/schedule/events"

	start := time.Now()
	body, status, err := post(client, target, "application/json", bytes.NewReader(payload))
	if err != nil {
		return weekSnapshot{}, err
	}

	var decoded goResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return weekSnapshot{}, fmt.Errorf("decode: %w", err)
	}
	if decoded.Error != nil {
		return weekSnapshot{}, fmt.Errorf("status %d: %s %s", status, decoded.Error.Code, decoded.Error.Message)
	}

	snap := weekSnapshot{
		StartDate: decoded.Data.Window.StartDate,
		EndDate:   decoded.Data.Window.EndDate,
		Duration:  time.Since(start),
	}
	for _, s := range decoded.Data.Sessions {
		snap.IDs = append(snap.IDs, s.ID)
	}
	return snap, nil
}

func fetchLegacy(client *http.Client, opts options, offset int) (weekSnapshot, error) {
	form := url.Values{}
	form.Set("action", "timp_get_events")
	form.Set("nonce", opts.nonce)
	form.Set("week_offset", strconv.Itoa(offset))
	target := strings.TrimRight(opts.legacyBase, "/") + "/wp-admin/admin-ajax.php"

	start := time.Now()
	body, _, err := post(client, target, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return weekSnapshot{}, err
	}

	var decoded legacyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return weekSnapshot{}, fmt.Errorf("decode: %w", err)
	}
	if !decoded.Success {
		return weekSnapshot{}, errors.New(decoded.Data.Message)
	}

	snap := weekSnapshot{
		StartDate: decoded.Data.StartDate,
		EndDate:   decoded.Data.EndDate,
		Duration:  time.Since(start),
	}
	for _, e := range decoded.Data.Events {
		snap.IDs = append(snap.IDs, e.ID)
	}
	return snap, nil
}

func post(client *http.Client, target, contentType string, payload io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodPost, target, payload)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// diffIDs returns the ids present on only one side, sorted.
func diffIDs(goIDs, legacyIDs []string) (onlyGo, onlyLegacy []string) {
	legacy := make(map[string]struct{}, len(legacyIDs))
	for _, id := range legacyIDs {
		legacy[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(goIDs))
	for _, id := range goIDs {
		seen[id] = struct{}{}
		if _, ok := legacy[id]; !ok {
			onlyGo = append(onlyGo, id)
		}
	}
	for id := range legacy {
		if _, ok := seen[id]; !ok {
			onlyLegacy = append(onlyLegacy, id)
		}
	}
	sort.Strings(onlyGo)
	sort.Strings(onlyLegacy)
	return onlyGo, onlyLegacy
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.matches() {
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] week_offset=%d\n", status, res.Offset)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
			continue
		}
		fmt.Fprintf(w, "  Go: %s..%s, %d sessions (%s)\n", res.Go.StartDate, res.Go.EndDate, len(res.Go.IDs), res.Go.Duration)
		fmt.Fprintf(w, "  Legacy: %s..%s, %d sessions (%s)\n", res.Legacy.StartDate, res.Legacy.EndDate, len(res.Legacy.IDs), res.Legacy.Duration)
		for _, id := range res.OnlyGo {
			fmt.Fprintf(w, "  + %s\n", id)
		}
		for _, id := range res.OnlyLegacy {
			fmt.Fprintf(w, "  - %s\n", id)
		}
	}
}
