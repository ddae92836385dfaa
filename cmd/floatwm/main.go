package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"

	"github.com/1broseidon/floatwm/internal/command"
	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/queue"
	"github.com/1broseidon/floatwm/internal/runtimepath"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "start":
		os.Exit(runStart(os.Args[2:]))
	case "quit":
		os.Exit(runQuit(os.Args[2:]))
	case "focus":
		os.Exit(runFocus(os.Args[2:]))
	case "close":
		os.Exit(runClose(os.Args[2:]))
	case "add-workspace":
		os.Exit(runAddWorkspace(os.Args[2:]))
	case "rename-workspace":
		os.Exit(runRenameWorkspace(os.Args[2:]))
	case "activate-workspace":
		os.Exit(runActivateWorkspace(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: floatwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  start               Start the window manager (foreground)")
	fmt.Fprintln(w, "  quit                Stop the running window manager")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  focus               Focus a window")
	fmt.Fprintln(w, "  close               Close a window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  add-workspace       Create a workspace")
	fmt.Fprintln(w, "  rename-workspace    Rename a workspace")
	fmt.Fprintln(w, "  activate-workspace  Switch to a workspace")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config border-width <width>")
	fmt.Fprintln(w, "  config border-color <color>")
	fmt.Fprintln(w, "  config focused-border-color <color>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'floatwm <command> --help' for command-specific options.")
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to the config file")
	autostart := fs.String("autostart", "", "path to the autostart program")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm start [--config <path>] [--autostart <path>] [--debug]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the window manager in the foreground.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "start takes no arguments")
		fs.Usage()
		return 2
	}

	godotenv.Load()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	}))

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return 1
	}
	if *autostart != "" {
		cfg.Autostart = *autostart
	}

	conn, err := x11.NewConnection()
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer conn.Close()

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		logger.Error("failed to resolve socket path", "error", err)
		return 1
	}

	commandsIn, commandsOut := queue.New[command.Command]()
	server := ipc.NewServer(socketPath, commandsIn, logger)
	if err := server.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		return 1
	}

	manager := wm.New(conn, cfg, commandsOut, logger)
	if err := manager.Run(); err != nil {
		logger.Error("window manager failed", "error", err)
		return 1
	}
	return 0
}

// send submits one command to the running manager over IPC.
func send(cmd command.Command) int {
	if err := ipc.NewClient().Send(cmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runQuit(args []string) int {
	fs := flag.NewFlagSet("quit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm quit")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "quit takes no arguments")
		fs.Usage()
		return 2
	}
	return send(command.Quit{})
}

func runFocus(args []string) int {
	fs := flag.NewFlagSet("focus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sel := addWindowSelectorFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm focus [--focused | --window <id> | --closest <direction> | --cycle <direction>]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	selector, err := sel.selector()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return send(command.Focus{Selector: selector})
}

func runClose(args []string) int {
	fs := flag.NewFlagSet("close", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sel := addWindowSelectorFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm close [--focused | --window <id> | --closest <direction> | --cycle <direction>]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	selector, err := sel.selector()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return send(command.Close{Selector: selector})
}

func runAddWorkspace(args []string) int {
	fs := flag.NewFlagSet("add-workspace", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	name := fs.String("name", "", "workspace name (default: its 1-based ordinal)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm add-workspace [--name <name>]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cmd := command.AddWorkspace{}
	if *name != "" {
		cmd.Name = name
	}
	return send(cmd)
}

func runRenameWorkspace(args []string) int {
	fs := flag.NewFlagSet("rename-workspace", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sel := addWorkspaceSelectorFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm rename-workspace (--index <i> | --name <name>) <new-name>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "rename-workspace takes exactly one argument: the new name")
		fs.Usage()
		return 2
	}
	selector, err := sel.selector()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return send(command.RenameWorkspace{Selector: selector, Name: fs.Arg(0)})
}

func runActivateWorkspace(args []string) int {
	fs := flag.NewFlagSet("activate-workspace", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sel := addWorkspaceSelectorFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm activate-workspace (--index <i> | --name <name>)")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	selector, err := sel.selector()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return send(command.ActivateWorkspace{Selector: selector})
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  floatwm config border-width <width>")
	fmt.Fprintln(w, "  floatwm config border-color <color>")
	fmt.Fprintln(w, "  floatwm config focused-border-color <color>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Colors are pixel values; decimal and 0x-prefixed hex are accepted.")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}
	if len(args) != 2 {
		printConfigUsage(os.Stderr)
		return 2
	}

	value, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid value %q: %v\n", args[1], err)
		return 2
	}

	switch args[0] {
	case "border-width":
		return send(command.SetBorderWidth{Width: uint32(value)})
	case "border-color":
		return send(command.SetBorderColor{Color: uint32(value)})
	case "focused-border-color":
		return send(command.SetFocusedBorderColor{Color: uint32(value)})
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}
