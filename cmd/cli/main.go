package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "resledger-cli",
		Short: "Reservation ledger CLI tool",
		Long:  `A command line interface for the reservation financial ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the resledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(outstandingCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <reservation-id>",
		Short: "Show the financial snapshot of a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/reservations/" + args[0])
			if err != nil {
				return err
			}

			var resp struct {
				ID           string `json:"id"`
				CustomerName string `json:"customer_name"`
				Snapshot     *struct {
					TotalPriceFormatted string `json:"total_price_formatted"`
					TotalPaidFormatted  string `json:"total_paid_formatted"`
					BalanceFormatted    string `json:"balance_formatted"`
					AmountDueFormatted  string `json:"amount_due_formatted"`
					CreditFormatted     string `json:"credit_formatted"`
					Status              string `json:"status"`
					Urgency             string `json:"urgency"`
					PaymentCount        int    `json:"payment_count"`
					RefundCount         int    `json:"refund_count"`
				} `json:"snapshot"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Printf("Reservation %s (%s)\n", resp.ID, resp.CustomerName)
			if s := resp.Snapshot; s != nil {
				fmt.Printf("  Total:    %s\n", s.TotalPriceFormatted)
				fmt.Printf("  Paid:     %s (%d payments, %d refunds)\n", s.TotalPaidFormatted, s.PaymentCount, s.RefundCount)
				fmt.Printf("  Balance:  %s\n", s.BalanceFormatted)
				fmt.Printf("  Due:      %s\n", s.AmountDueFormatted)
				fmt.Printf("  Credit:   %s\n", s.CreditFormatted)
				fmt.Printf("  Status:   %s\n", s.Status)
				fmt.Printf("  Urgency:  %s\n", s.Urgency)
			}
			return nil
		},
	}
}

func timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <reservation-id>",
		Short: "Show a reservation's transactions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/reservations/" + args[0] + "/timeline")
			if err != nil {
				return err
			}

			var txns []struct {
				Type            string    `json:"type"`
				AmountFormatted string    `json:"amount_formatted"`
				Date            time.Time `json:"date"`
				Method          string    `json:"method"`
				Note            string    `json:"note"`
				ProcessedBy     string    `json:"processed_by"`
			}
			if err := json.Unmarshal(body, &txns); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			for _, txn := range txns {
				fmt.Printf("%s  %-8s %12s  %-14s %-10s %s\n",
					txn.Date.Format("2006-01-02"),
					txn.Type,
					txn.AmountFormatted,
					txn.Method,
					txn.ProcessedBy,
					truncate(txn.Note, 40),
				)
			}
			return nil
		},
	}
}

func outstandingCmd() *cobra.Command {
	var status, urgency string
	var limit int

	cmd := &cobra.Command{
		Use:   "outstanding",
		Short: "List reservations with money still owed",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("/api/v1/reservations/?limit=%d", limit)
			if status != "" {
				url += "&status=" + status
			}
			if urgency != "" {
				url += "&urgency=" + urgency
			}

			body, err := get(url)
			if err != nil {
				return err
			}

			var resp struct {
				Reservations []struct {
					ID           string `json:"id"`
					CustomerName string `json:"customer_name"`
					Snapshot     *struct {
						AmountDueFormatted string `json:"amount_due_formatted"`
						Status             string `json:"status"`
						Urgency            string `json:"urgency"`
					} `json:"snapshot"`
				} `json:"reservations"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			for _, r := range resp.Reservations {
				if r.Snapshot == nil {
					continue
				}
				fmt.Printf("%-28s %-20s %12s  %-10s %s\n",
					r.ID,
					truncate(r.CustomerName, 20),
					r.Snapshot.AmountDueFormatted,
					r.Snapshot.Status,
					r.Snapshot.Urgency,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by payment status (pending, partial, overdue, ...)")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Filter by urgency (on_time, due_soon, urgent, overdue)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of reservations")

	return cmd
}

func exportCmd() *cobra.Command {
	var txnType, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the transaction export as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := "/api/v1/transactions/export"
			if txnType != "" {
				url += "?type=" + txnType
			}

			body, err := get(url)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				fmt.Print(string(body))
				return nil
			}

			if err := os.WriteFile(output, body, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("wrote %d bytes to %s\n", len(body), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", "", "Filter by transaction type (payment or refund)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
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
