// Command stilchd runs the window manager daemon and doubles as a thin
// client for querying a running daemon over its command socket.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wegel/stilch-sub001/command"
	"github.com/wegel/stilch-sub001/config"
	"github.com/wegel/stilch-sub001/manager"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stilchd",
		Short: "Tiling window manager core daemon",
		Long: `stilchd manages the window registry, layout tree, workspaces, and
virtual outputs for a tiling window manager, and exposes them over a
local command socket.`,
		Example: `  # Run the daemon in the foreground
  stilchd run

  # Query windows from a running daemon
  stilchd windows

  # Render an ASCII snapshot of the active workspace
  stilchd snapshot --show-ids`,
		Version:      version,
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDaemon()
		},
	}

	var windowsJSON bool
	windowsCmd := &cobra.Command{
		Use:   "windows",
		Short: "List all windows",
		RunE: func(_ *cobra.Command, _ []string) error {
			return query(command.Request{Type: "GetWindows"}, windowsJSON, printWindows)
		},
	}
	windowsCmd.Flags().BoolVar(&windowsJSON, "json", false, "Output as JSON")

	var workspacesJSON bool
	workspacesCmd := &cobra.Command{
		Use:   "workspaces",
		Short: "List all workspaces",
		RunE: func(_ *cobra.Command, _ []string) error {
			return query(command.Request{Type: "GetWorkspaces"}, workspacesJSON, printWorkspaces)
		},
	}
	workspacesCmd.Flags().BoolVar(&workspacesJSON, "json", false, "Output as JSON")

	var outputsJSON bool
	outputsCmd := &cobra.Command{
		Use:   "outputs",
		Short: "List all virtual outputs",
		RunE: func(_ *cobra.Command, _ []string) error {
			return query(command.Request{Type: "GetOutputs"}, outputsJSON, printOutputs)
		},
	}
	outputsCmd.Flags().BoolVar(&outputsJSON, "json", false, "Output as JSON")

	var snapshotShowIDs, snapshotShowFocus, snapshotJSON bool
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render an ASCII snapshot of the active workspace",
		RunE: func(_ *cobra.Command, _ []string) error {
			req := command.Request{Type: "GetAsciiSnapshot", ShowIDs: snapshotShowIDs, ShowFocus: snapshotShowFocus}
			return query(req, snapshotJSON, printSnapshot)
		},
	}
	snapshotCmd.Flags().BoolVar(&snapshotShowIDs, "show-ids", false, "Label each pane with its window ID")
	snapshotCmd.Flags().BoolVar(&snapshotShowFocus, "show-focus", false, "Mark the focused pane")
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "Output as JSON")

	var focusedJSON bool
	focusedCmd := &cobra.Command{
		Use:   "focused",
		Short: "Print the currently focused window",
		RunE: func(_ *cobra.Command, _ []string) error {
			return query(command.Request{Type: "GetFocusedWindow"}, focusedJSON, printFocused)
		},
	}
	focusedCmd.Flags().BoolVar(&focusedJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(runCmd, windowsCmd, workspacesCmd, outputsCmd, snapshotCmd, focusedCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

// runDaemon loads the configuration, constructs the daemon, and serves
// the command socket until interrupted.
func runDaemon() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := log.ParseLevel(cfg.Daemon.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	d, err := manager.New(cfg)
	if err != nil {
		return fmt.Errorf("construct daemon: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("stilchd starting")
	return d.Run(ctx)
}

// query dials the daemon's command socket, sends req, and hands the
// decoded response to render (unless json is requested, in which case
// the raw response is printed instead).
func query(req command.Request, asJSON bool, render func(command.Response)) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	socketPath, err := config.SocketPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		return fmt.Errorf("daemon closed the connection without a response")
	}

	var resp command.Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.Type == "Error" {
		return fmt.Errorf("daemon: %s", resp.Message)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	render(resp)
	return nil
}

func printWindows(resp command.Response) {
	fmt.Printf("%-6s %-4s %-20s %-8s %-10s %-10s\n", "ID", "WS", "GEOMETRY", "FOCUS", "FULLSCR", "LAYOUT")
	for _, w := range resp.Windows {
		fmt.Printf("%-6d %-4d %-20s %-8v %-10v %-10s\n",
			w.ID, w.Workspace,
			fmt.Sprintf("%dx%d+%d+%d", w.Width, w.Height, w.X, w.Y),
			w.Focused, w.Fullscreen, w.Layout)
	}
}

func printWorkspaces(resp command.Response) {
	fmt.Printf("%-4s %-10s %-8s %-8s %-8s %-8s\n", "ID", "NAME", "VISIBLE", "FOCUSED", "WINDOWS", "OUTPUT")
	for _, w := range resp.Workspaces {
		output := "-"
		if w.Output != nil {
			output = *w.Output
		}
		fmt.Printf("%-4d %-10s %-8v %-8v %-8d %-8s\n", w.ID, w.Name, w.Visible, w.Focused, w.WindowCount, output)
	}
}

func printOutputs(resp command.Response) {
	fmt.Printf("%-6s %-10s %-20s\n", "ID", "NAME", "GEOMETRY")
	for _, o := range resp.Outputs {
		fmt.Printf("%-6s %-10s %-20s\n", strconv.FormatUint(uint64(o.ID), 10), o.Name,
			fmt.Sprintf("%dx%d+%d+%d", o.Width, o.Height, o.X, o.Y))
	}
}

func printSnapshot(resp command.Response) {
	for _, line := range resp.Snapshot {
		fmt.Println(line)
	}
}

func printFocused(resp command.Response) {
	if resp.FocusedWindowID == 0 {
		fmt.Println("no focused window")
		return
	}
	fmt.Println(resp.FocusedWindowID)
}
