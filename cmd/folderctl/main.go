package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vharitonsky/iniflags"
	"golang.org/x/term"

	"folder-playlist/internal/host"
	"folder-playlist/internal/logging"
	"folder-playlist/internal/startup"
)

const prompt = "folderctl> "

// errQuit ends the command loop without error.
var errQuit = errors.New("quit")

func main() {
	if err := startup.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	config := &startup.Config{}
	startup.RegisterFlags(flag.CommandLine, config)
	flag.Usage = printUsage
	iniflags.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The CLI speaks through stdout; only warnings reach the log unless asked.
	logging.SetLevel(cliLogLevel(config.LogLevel))

	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	var sink host.PlaybackSink = host.LogSink{}
	var wpl *host.WPLSink
	if config.PlaylistFile != "" {
		wpl = host.NewWPLSink(config.PlaylistFile, config.PlaylistTitle)
		wpl.Retry = config.RetryConfig()
		sink = wpl
	}

	session := host.NewSession(host.Options{
		Anchors: host.StaticAnchor(flag.Arg(0)),
		Lister:  host.NewFSLister(),
		Sink:    sink,
	})

	res, err := session.Activate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to activate %s: %v\n", flag.Arg(0), err)
		removePlaylist(wpl)
		os.Exit(1)
	}
	printActivated(os.Stdout, session.Folder(), res)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if err := run(ctx, session, os.Stdin, os.Stdout, interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	session.Deactivate()
	removePlaylist(wpl)
}

func removePlaylist(wpl *host.WPLSink) {
	if wpl == nil {
		return
	}
	if err := wpl.Remove(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to remove %s: %v\n", wpl.Path, err)
	}
}

// cliLogLevel returns the level named by value, or warn when value is empty
// or not a level name.
func cliLogLevel(value string) logging.LogLevel {
	if value == "" {
		return logging.LevelWarn
	}
	level, ok := logging.ParseLevel(value)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using warn\n", value)
		return logging.LevelWarn
	}
	return level
}

// run executes commands read from in until quit, deactivate, end of input
// or ctx cancellation. Command failures are reported on out and do not stop
// the loop.
func run(ctx context.Context, session *host.Session, in io.Reader, out io.Writer, interactive bool) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			line = l
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := execute(ctx, session, line, out); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// execute runs one input line against session.
func execute(ctx context.Context, session *host.Session, line string, out io.Writer) error {
	command, ok := parseCommand(line)
	if !ok {
		// Sanitize command input using allowlist to break taint chain
		fmt.Fprintf(out, "unknown command: %s (try help)\n", sanitizeCommand(strings.TrimSpace(line)))
		return nil
	}

	switch command {
	case "quit":
		return errQuit
	case "help":
		printCommands(out)
		return nil
	case "list":
		printList(out, session.Snapshot())
		return nil
	case "deactivate":
		session.Deactivate()
		fmt.Fprintln(out, "deactivated")
		return errQuit
	}

	res, err := session.Dispatch(ctx, command)
	if err != nil {
		return err
	}
	printNowPlaying(out, res)
	return nil
}

// parseCommand maps an input line to a command name, resolving the short
// aliases the prompt accepts.
func parseCommand(line string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "next", "n", "media_next":
		return "next", true
	case "previous", "prev", "p", "media_previous":
		return "previous", true
	case "jump", "j":
		return "jump", true
	case "refresh", "r":
		return "refresh", true
	case "list", "ls", "l":
		return "list", true
	case "deactivate":
		return "deactivate", true
	case "quit", "q", "exit":
		return "quit", true
	case "help", "h", "?":
		return "help", true
	default:
		return "", false
	}
}

func printActivated(out io.Writer, folder string, res host.Result) {
	fmt.Fprintf(out, "%s (%d entries)\n", folder, res.Count)
	printNowPlaying(out, res)
}

func printNowPlaying(out io.Writer, res host.Result) {
	if res.Index < 0 || res.Count == 0 {
		fmt.Fprintln(out, "nothing to play")
		return
	}
	fmt.Fprintf(out, "[%d/%d] %s\n", res.Index+1, res.Count, res.Entry.Name)
}

func printList(out io.Writer, snap host.Snapshot) {
	if len(snap.Entries) == 0 {
		fmt.Fprintln(out, "playlist is empty")
		return
	}
	for i, e := range snap.Entries {
		marker := " "
		if i == snap.Index {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %3d  %s\n", marker, i+1, e.Name)
	}
}

// sanitizeCommand returns a safe representation of a command string for display.
// It uses an allowlist approach, replacing any character that is not alphanumeric,
// a hyphen, or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printCommands(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  next, n, media_next               - Play the next entry")
	fmt.Fprintln(out, "  previous, prev, p, media_previous - Play the previous entry")
	fmt.Fprintln(out, "  jump, j                           - Return to the opened file's entry")
	fmt.Fprintln(out, "  refresh, r                        - Re-list the folder")
	fmt.Fprintln(out, "  list, ls                          - Show the playlist")
	fmt.Fprintln(out, "  deactivate                        - Drop the playlist and exit")
	fmt.Fprintln(out, "  quit, q                           - Exit")
}

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Folder Playlist Control")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Usage: folderctl [flags] <file-or-uri>")
	fmt.Fprintln(out, "")
	printCommands(out)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}
