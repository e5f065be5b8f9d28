package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the OpenWeatherMap API key",
}

var setKeyCmd = &cobra.Command{
	Use:   "set",
	Short: "Save a new API key",
	Long: `Save a new API key. The key is read without echo from the terminal,
or from standard input with --stdin.`,
	RunE: runSetKey,
}

var showKeyCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved API key, masked",
	RunE:  runShowKey,
}

func init() {
	setKeyCmd.Flags().Bool("stdin", false, "read the key from standard input")
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(setKeyCmd)
	keyCmd.AddCommand(showKeyCmd)
}

func runSetKey(cmd *cobra.Command, args []string) error {
	weather := appFrom(cmd)

	fromStdin, _ := cmd.Flags().GetBool("stdin")

	var key string
	if fromStdin || !term.IsTerminal(int(syscall.Stdin)) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key = line
	} else {
		fmt.Fprint(os.Stderr, "Enter API key: ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		fmt.Fprintln(os.Stderr) // New line after hidden input
		key = string(keyBytes)
	}

	if err := weather.Credentials.Save(cmd.Context(), strings.TrimSpace(key)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "API key saved (%s)\n", weather.Credentials.Masked())
	return nil
}

func runShowKey(cmd *cobra.Command, args []string) error {
	weather := appFrom(cmd)

	masked := weather.Credentials.Masked()
	if masked == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No API key saved.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), masked)
	return nil
}
