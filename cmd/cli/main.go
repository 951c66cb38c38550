package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL   string
	timeout   time.Duration
	accountID string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gowager-cli",
		Short: "GoWager CLI tool",
		Long:  `A command line interface for operating the GoWager API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWager API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&accountID, "account", "", "Account ID for account-scoped commands")

	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(priceCmd())
	rootCmd.AddCommand(accountCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List matches",
		Run: func(cmd *cobra.Command, args []string) {
			listMatches()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "settle <match-id>",
		Short: "Settle all pending wagers on a completed match",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/matches/"+args[0]+"/settle", nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel-wagers <match-id>",
		Short: "Refund all pending wagers on a cancelled match",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/matches/"+args[0]+"/cancel-wagers", nil)
		},
	})

	var winnerID string
	transitionCmd := &cobra.Command{
		Use:   "transition <match-id> <status>",
		Short: "Move a match to a new status",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{"status": args[1]}
			if winnerID != "" {
				body["winner_id"] = winnerID
			}
			post("/api/v1/matches/"+args[0]+"/transition", body)
		},
	}
	transitionCmd.Flags().StringVar(&winnerID, "winner", "", "Winner competitor ID (required for COMPLETED)")
	cmd.AddCommand(transitionCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "position <match-id>",
		Short: "Show the house net position for a match",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/matches/" + args[0] + "/position")
		},
	})

	return cmd
}

func priceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "current <match-id>",
		Short: "Show the current price for a match",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/matches/" + args[0] + "/price")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history <match-id>",
		Short: "Show the price history for a match",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/matches/" + args[0] + "/price/history")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "health <match-id>",
		Short: "Check whether a market's price looks sane",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/matches/" + args[0] + "/price/health")
		},
	})

	return cmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations (require --account)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reconcile",
		Short: "Verify an account balance against its ledger",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/account/reconcile")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show an account's betting record",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/account/stats")
		},
	})

	return cmd
}

func listMatches() {
	body := request(http.MethodGet, "/api/v1/matches?limit=50", nil)

	var matches []struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		WinnerID string `json:"winner_id"`
	}
	if err := json.Unmarshal(body, &matches); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-28s %-10s %s\n", "ID", "STATUS", "WINNER")
	for _, m := range matches {
		fmt.Printf("%-28s %-10s %s\n", truncate(m.ID, 28), m.Status, m.WinnerID)
	}
}

func get(path string) {
	printBody(request(http.MethodGet, path, nil))
}

func post(path string, body map[string]any) {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	printBody(request(http.MethodPost, path, payload))
}

func request(method, path string, payload []byte) []byte {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if accountID != "" {
		req.Header.Set("X-Account-ID", accountID)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}
	return body
}

func printBody(body []byte) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Println(string(body))
		return
	}
	printJSON(parsed)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
