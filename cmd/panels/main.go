package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panellayout/internal/config"
	"panellayout/internal/panel"
	"panellayout/internal/pty"
	"panellayout/internal/snapshot"
	"panellayout/internal/tmux"
	"panellayout/internal/trace"
	"panellayout/internal/ui"
	"panellayout/internal/workspace"
)

type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ", ") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// settings is the merged configuration: flags over config file over
// defaults.
type settings struct {
	configPath string
	tabs       []string
	commands   stringSlice
	workspace  string
	history    int
	spans      int
	logPath    string
	tmux       bool
	dump       bool
	options    workspace.Options
}

func parseFlags() settings {
	var cfg settings
	var tabs string

	flag.StringVar(&cfg.configPath, "config", "", "config file (default $"+config.PathEnv+" or ~/"+config.DefaultPath+")")
	flag.StringVar(&tabs, "tabs", "editor,terminal,output", "comma-separated initial tabs")
	flag.Var(&cfg.commands, "cmd", "name=command: add a tab showing the command's output (repeatable)")
	flag.StringVar(&cfg.workspace, "workspace", "", "saved workspace to open; saved again on exit")
	flag.IntVar(&cfg.history, "history", workspace.DefaultHistoryLimit, "undo history depth")
	flag.IntVar(&cfg.spans, "spans", 50, "number of recent command spans to keep")
	flag.StringVar(&cfg.logPath, "log", "", "write debug log to this file")
	flag.BoolVar(&cfg.tmux, "tmux", false, "mirror the layout into a new tmux window and exit")
	flag.BoolVar(&cfg.dump, "dump", false, "print the layout as JSON and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: panels [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Panels is a terminal workspace of tabbed groups that can be split,\n")
		fmt.Fprintf(os.Stderr, "merged, resized and rearranged with the keyboard or mouse.\n\n")
		fmt.Fprintf(os.Stderr, "Environment:\n")
		fmt.Fprintf(os.Stderr, "  %s  snapshot directory (default ~/%s)\n", snapshot.DirEnv, snapshot.DefaultBase)
		fmt.Fprintf(os.Stderr, "  %s          config file (default ~/%s)\n", config.PathEnv, config.DefaultPath)
		fmt.Fprintf(os.Stderr, "  OTEL_EXPORTER_OTLP_ENDPOINT   export command spans over OTLP/HTTP\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	cfg.tabs = splitTabs(tabs)
	return cfg
}

func splitTabs(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// loadConfigFile merges the config file into cfg. Values given on the
// command line, listed in set, win. An explicit -config must exist.
func loadConfigFile(cfg *settings, set map[string]bool) error {
	path := cfg.configPath
	if path == "" {
		p, err := config.DefaultFile()
		if err != nil {
			return nil
		}
		path = p
	}
	f, ok, err := config.Load(path)
	if err != nil {
		return err
	}
	if !ok {
		if cfg.configPath != "" {
			return fmt.Errorf("config %s not found", path)
		}
		return nil
	}
	applyFile(cfg, f, set)
	return nil
}

func applyFile(cfg *settings, f config.File, set map[string]bool) {
	if !set["tabs"] && len(f.Tabs) > 0 {
		cfg.tabs = f.Tabs
	}
	if !set["cmd"] {
		for _, c := range f.Commands {
			cfg.commands = append(cfg.commands, c.Name+"="+c.Run)
		}
	}
	if !set["workspace"] && f.Workspace != "" {
		cfg.workspace = f.Workspace
	}
	if !set["history"] && f.History > 0 {
		cfg.history = f.History
	}
	if !set["spans"] && f.Spans > 0 {
		cfg.spans = f.Spans
	}
	if !set["log"] && f.Log != "" {
		cfg.logPath = f.Log
	}
	cfg.options.Ratio = f.Ratio()
	cfg.options.ResizeStep = f.ResizeStep
}

// setFlags returns the names of flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// commandTab is a tab whose body is the live output of a shell command.
type commandTab struct {
	name    string
	command string
	output  *pty.Output
}

func parseCommands(args []string) ([]commandTab, error) {
	out := make([]commandTab, 0, len(args))
	for _, arg := range args {
		name, command, ok := strings.Cut(arg, "=")
		name, command = strings.TrimSpace(name), strings.TrimSpace(command)
		if !ok || name == "" || command == "" {
			return nil, fmt.Errorf("-cmd %q: want name=command", arg)
		}
		out = append(out, commandTab{
			name:    name,
			command: command,
			output:  pty.NewOutput(&pty.CreackPTY{}, pty.DefaultLineLimit),
		})
	}
	return out, nil
}

// startCommands runs each command tab under its own pty. Output changes are
// forwarded to send so the screen redraws.
func startCommands(ctx context.Context, commands []commandTab, send func(tea.Msg)) {
	for _, c := range commands {
		id := panel.PanelID(c.name)
		c.output.OnUpdate(func() { send(ui.TabOutputMsg{ID: id}) })
		cmd := exec.Command("sh", "-c", c.command)
		if err := c.output.Start(ctx, cmd, pty.Size{Rows: 24, Cols: 80}); err != nil {
			log.Printf("command tab %s: %v", c.name, err)
			_, _ = c.output.Write([]byte(err.Error() + "\n"))
		}
	}
}

// watchSnapshot forwards on-disk snapshot changes to the app, which reloads
// the workspace it has open.
func watchSnapshot(ctx context.Context, snapshots *snapshot.Store, send func(tea.Msg)) {
	changes, err := snapshots.Watch(ctx, 200*time.Millisecond)
	if err != nil {
		log.Printf("watch workspaces: %v", err)
		return
	}
	go func() {
		for name := range changes {
			send(ui.SnapshotChangedMsg{Name: name})
		}
	}()
}

func tabDefinitions(names []string, commands []commandTab) []panel.TabDefinition {
	defs := make([]panel.TabDefinition, 0, len(names)+len(commands))
	seen := make(map[panel.PanelID]bool, len(names)+len(commands))
	for _, c := range commands {
		id := panel.PanelID(c.name)
		if seen[id] {
			continue
		}
		seen[id] = true
		output := c.output
		defs = append(defs, panel.TabDefinition{
			ID:     id,
			Title:  c.name,
			Render: output.Render,
			Resize: func(width, height int) {
				size := pty.Size{Rows: uint16(min(height, math.MaxUint16)), Cols: uint16(min(width, math.MaxUint16))}
				if err := output.Resize(size); err != nil {
					log.Printf("resize %s: %v", id, err)
				}
			},
		})
	}
	for _, name := range names {
		id := panel.PanelID(name)
		if seen[id] {
			continue
		}
		seen[id] = true
		defs = append(defs, panel.TabDefinition{
			ID:    id,
			Title: name,
			Render: func() string {
				return name + "\n\nDrag the tab title to move it, or SPC m to move it from the keyboard."
			},
		})
	}
	return defs
}

// openWorkspace restores the named snapshot when it exists and starts a
// fresh layout otherwise.
func openWorkspace(cfg settings, commands []commandTab, snapshots *snapshot.Store) (*workspace.Store, string, error) {
	opts := cfg.options
	opts.HistoryLimit = cfg.history
	tabs := tabDefinitions(cfg.tabs, commands)
	if cfg.workspace == "" {
		return workspace.New(tabs, opts), "", nil
	}
	name, err := snapshot.NormalizeName(cfg.workspace)
	if err != nil {
		return nil, "", err
	}
	state, ok, err := snapshots.Load(name)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		log.Printf("workspace %s not found, starting fresh", name)
		return workspace.New(tabs, opts), name, nil
	}
	store, err := workspace.Restore(state, tabs, opts)
	if err != nil {
		return nil, "", err
	}
	return store, name, nil
}

func run(cfg settings) error {
	if err := loadConfigFile(&cfg, setFlags()); err != nil {
		return err
	}
	if cfg.logPath != "" {
		f, err := tea.LogToFile(cfg.logPath, "panels")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	snapshots, err := snapshot.NewStore()
	if err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	commands, err := parseCommands(cfg.commands)
	if err != nil {
		return err
	}
	store, name, err := openWorkspace(cfg, commands, snapshots)
	if err != nil {
		return err
	}

	recorder := trace.NewRecorder(cfg.spans)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.Shutdown(ctx); err != nil {
			log.Printf("flush spans: %v", err)
		}
	}()
	store.SetRecorder(recorder)

	if cfg.dump {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(store.State())
	}

	if cfg.tmux {
		if !tmux.InTmux() {
			return errors.New("-tmux must be run inside tmux")
		}
		window := name
		if window == "" {
			window = "panels"
		}
		panes, err := tmux.ApplyLayout(window, tmux.PlanLayout(store.State().Tree))
		if err != nil {
			return err
		}
		fmt.Printf("panels: mirrored %d groups into tmux window %s\n", len(panes), window)
		return nil
	}

	app := ui.NewAppModel(store, snapshots)
	app.Recorder = recorder
	app.SnapshotName = name
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startCommands(ctx, commands, p.Send)
	if name != "" {
		watchSnapshot(ctx, snapshots, p.Send)
	}

	if _, err := p.Run(); err != nil {
		return err
	}

	if app.SnapshotName != "" {
		if err := snapshots.Save(app.SnapshotName, store.State()); err != nil {
			return err
		}
		log.Printf("saved workspace %s (%s)", app.SnapshotName, snapshot.Summary(store.State()))
	}
	return nil
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "panels: %v\n", err)
		os.Exit(1)
	}
}
