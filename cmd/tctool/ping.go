package main

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/quic-go/quic-go/http3"
	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	var (
		url      string
		insecure bool
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Call a timecoded endpoint over HTTP/3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := &http3.RoundTripper{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure},
			}
			defer rt.Close()

			client := &http.Client{Transport: rt, Timeout: timeout}
			return ping(cmd.OutOrStdout(), client, url)
		},
	}

	cmd.Flags().StringVar(&url, "url", "https://localhost:8443/api/v1/rates", "URL to request")
	cmd.Flags().BoolVarP(&insecure, "insecure", "k", false, "Skip TLS certificate verification")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}

func ping(w io.Writer, client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	fmt.Fprintf(w, "Status: %s\n", resp.Status)
	fmt.Fprintf(w, "Protocol: %s\n", resp.Proto)
	fmt.Fprintln(w, "Headers:")
	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, resp.Header[k])
	}
	_, err = fmt.Fprintf(w, "\n%s\n", body)
	return err
}
