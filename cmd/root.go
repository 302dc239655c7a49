// Package cmd implements the CLI command structure for yuko.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/Junsious/yuko/internal/config"
	"github.com/Junsious/yuko/internal/logging"
	"github.com/Junsious/yuko/internal/task"
	"github.com/Junsious/yuko/internal/ui"
	"github.com/Junsious/yuko/internal/utils"
	"github.com/Junsious/yuko/internal/yukodir"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the yuko CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("yuko", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "done":
		return setCompletedCommand(cfg, remainingArgs, "done", true)
	case "undone":
		return setCompletedCommand(cfg, remainingArgs, "undone", false)
	case "rm":
		return rmCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// If it's not a recognized command, it might be a tasks file path
		// for the default tui command
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.TasksFile = subcommand
			return tuiCommand(ctx, cfg, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// resolveTasksPath picks the tasks file from an optional positional argument
// and makes it absolute.
func resolveTasksPath(cfg *config.Config, remaining []string) (string, error) {
	if len(remaining) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := cfg.TasksFile
	if len(remaining) == 1 {
		path = remaining[0]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	return path, nil
}

// tuiCommand launches the interactive task list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("yuko tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasksPath, err := resolveTasksPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLoggerFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller, "yuko")
	opts := []ui.TUIOption{ui.WithLogger(logger)}

	if cfg.SessionLog {
		session, err := logging.NewSessionLogger(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			logger.Warn("session log disabled", "error", err)
		} else {
			defer session.Close()
			opts = append(opts, ui.WithSessionLogger(session))
		}
	}

	return ui.RunTUI(ctx, cfg, tasksPath, opts...)
}

// lsCommand prints tasks in display order.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("yuko ls", flag.ContinueOnError)
	statusFilter := fs.String("status", "", "Filter by status (open|done)")
	verbose := fs.Bool("v", false, "Show full task text")

	if err := fs.Parse(args); err != nil {
		return err
	}

	tasksPath, err := resolveTasksPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	list, err := task.LoadOrNew(tasksPath)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	tasks := list.Tasks
	switch *statusFilter {
	case "":
	case "open":
		tasks = filterTasks(tasks, false)
	case "done":
		tasks = filterTasks(tasks, true)
	default:
		return fmt.Errorf("unknown status %q (expected open|done)", *statusFilter)
	}

	printTaskList(tasks, *verbose)
	return nil
}

// addCommand appends a task from the command line.
func addCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("yuko add", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")

	list, err := task.LoadOrNew(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	t, ok := list.Add(text)
	if !ok {
		return fmt.Errorf("nothing to add: text is empty")
	}
	if err := list.Save(cfg.TasksFile); err != nil {
		return err
	}

	printTask(t, false)
	return nil
}

// setCompletedCommand marks a task done or open. The underlying toggle is
// skipped when the task is already in the requested state, so the command
// is idempotent.
func setCompletedCommand(cfg *config.Config, args []string, name string, completed bool) error {
	fs := flag.NewFlagSet("yuko "+name, flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("usage: yuko %s <id>", name)
	}
	id := remaining[0]

	list, err := task.LoadOrNew(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	t := list.Get(id)
	if t == nil {
		return fmt.Errorf("no task with id %q", id)
	}
	if t.Completed != completed {
		list.ToggleComplete(id)
	}
	if err := list.Save(cfg.TasksFile); err != nil {
		return err
	}

	printTask(*t, false)
	return nil
}

// rmCommand deletes a task from the command line.
func rmCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("yuko rm", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("usage: yuko rm <id>")
	}
	id := remaining[0]

	list, err := task.LoadOrNew(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	t := list.Get(id)
	if t == nil {
		return fmt.Errorf("no task with id %q", id)
	}
	removed := *t
	list.Delete(id)
	if err := list.Save(cfg.TasksFile); err != nil {
		return err
	}

	fmt.Println("Deleted:")
	printTask(removed, false)
	return nil
}

// initCommand creates the task snapshot, the .yuko directory, an example
// config, and a copy of the snapshot schema. Existing files are left alone
// unless -force is given.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("yuko init", flag.ContinueOnError)
	skipConfig := fs.Bool("skip-config", false, "Do not write the example config")
	force := fs.Bool("force", false, "Overwrite existing files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if fileExists(cfg.TasksFile) && !*force {
		fmt.Printf("  skipped %s (exists)\n", cfg.TasksFile)
	} else {
		if err := task.NewList().Save(cfg.TasksFile); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", cfg.TasksFile)
	}

	dir := yukodir.DirPath(cfg.ProjectRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	if !*skipConfig {
		configPath := yukodir.ConfigPath(cfg.ProjectRoot)
		if fileExists(configPath) && !*force {
			fmt.Printf("  skipped %s (exists)\n", configPath)
		} else {
			if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", configPath, err)
			}
			fmt.Printf("  wrote %s\n", configPath)
		}
	}

	schemaPath := yukodir.SchemaPath(cfg.ProjectRoot)
	if fileExists(schemaPath) && !*force {
		fmt.Printf("  skipped %s (exists)\n", schemaPath)
	} else {
		if err := os.WriteFile(schemaPath, task.BundledSchema(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", schemaPath, err)
		}
		fmt.Printf("  wrote %s\n", schemaPath)
	}

	return nil
}

// doctorCommand checks config, the tasks file, and the TUI's runtime
// dependencies.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("yuko doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cws.Config
	tasksPath, err := resolveTasksPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	fmt.Println("Yuko Doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	// Check project root
	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check config
	fmt.Println("Config:")
	if configFile := cws.GetConfigFile(); configFile != "" {
		fmt.Printf("  ✅ File: %s\n", configFile)
	} else {
		fmt.Println("  ⚠️  File: none found (using defaults)")
	}
	if !checkConfigValues(cws, *verbose) {
		allOK = false
	}
	fmt.Println()

	// Check the clipboard helper the copy key needs
	fmt.Println("Clipboard:")
	checkClipboard()
	fmt.Println()

	// Check tasks file
	fmt.Printf("Tasks file: %s\n", tasksPath)
	info, err := os.Stat(tasksPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (run yuko init, or add your first task)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
		// Validate the file
		list, loadErr := task.Load(tasksPath)
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
		} else {
			result := list.Validate(task.ValidationOptions{SchemaPath: cfg.SchemaFile})
			for _, w := range result.Warnings {
				fmt.Printf("  ⚠️  %s\n", w)
			}
			if result.Valid {
				fmt.Println("  ✅ Valid")
			} else {
				fmt.Println("  ❌ Validation failed:")
				for _, e := range result.Errors {
					fmt.Printf("     - %v\n", e)
				}
				allOK = false
			}
			if *verbose {
				open, done := list.Counts()
				fmt.Printf("  Tasks: %d open, %d done\n", open, done)
				sorted := make([]task.Task, len(list.Tasks))
				copy(sorted, list.Tasks)
				sort.Slice(sorted, func(i, j int) bool {
					return task.CompareIDs(sorted[i].ID, sorted[j].ID)
				})
				for _, t := range sorted {
					printTask(t, false)
				}
			}
		}
	}
	fmt.Println()

	// Check schema file
	if cfg.SchemaFile == "" {
		fmt.Println("Schema: embedded")
		fmt.Println("  ✅ OK")
	} else {
		fmt.Printf("Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ⚠️  Not found (validation falls back to minimal checks)")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if info.IsDir() {
			fmt.Println("  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
	}
	fmt.Println()

	// Check log directory
	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first run)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Yuko may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// tailCommand tails the latest session log file.
func tailCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("yuko tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Find the log directory
	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	// Find the latest JSONL file
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}

	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(os.Stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("yuko version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Yuko - A terminal task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  yuko [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]     Open the interactive task list (default command)")
	fmt.Fprintln(w, "  ls [file]      Print tasks")
	fmt.Fprintln(w, "  add <text>     Add a task")
	fmt.Fprintln(w, "  done <id>      Mark a task completed")
	fmt.Fprintln(w, "  undone <id>    Mark a task open again")
	fmt.Fprintln(w, "  rm <id>        Delete a task")
	fmt.Fprintln(w, "  init           Create tasks.json and the .yuko directory")
	fmt.Fprintln(w, "  doctor [file]  Check config and tasks file validity")
	fmt.Fprintln(w, "  tail           Tail the latest session log")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (open|done)")
	fmt.Fprintln(w, "  -v    Show full task text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options (use with 'init' command):")
	fmt.Fprintln(w, "  -skip-config")
	fmt.Fprintln(w, "        Do not write the example config")
	fmt.Fprintln(w, "  -force")
	fmt.Fprintln(w, "        Overwrite existing files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}

// printTaskList prints tasks in display order.
func printTaskList(tasks []task.Task, verbose bool) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}
	for _, t := range tasks {
		printTask(t, verbose)
	}
}

// printTask prints a single task row. Verbose mode prints the remaining
// lines of multi-line text indented under the row.
func printTask(t task.Task, verbose bool) {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	fmt.Printf("  %s %s  %s\n", checkbox, t.ID, utils.FirstLine(t.Text))

	if verbose && strings.Contains(t.Text, "\n") {
		lines := strings.Split(t.Text, "\n")
		for _, line := range lines[1:] {
			fmt.Printf("      %s\n", line)
		}
	}
}

// filterTasks keeps tasks matching the completion state.
func filterTasks(tasks []task.Task, completed bool) []task.Task {
	var filtered []task.Task
	for _, t := range tasks {
		if t.Completed == completed {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// checkConfigValues validates the enum-like config values and reports each
// with its source.
func checkConfigValues(cws *config.ConfigWithSources, verbose bool) bool {
	cfg := cws.Config
	ok := true

	if cfg.Theme == "dark" || cfg.Theme == "light" {
		fmt.Printf("  ✅ theme: %s (%s)\n", cfg.Theme, cws.Sources["theme"])
	} else {
		fmt.Printf("  ❌ theme: %s (expected dark|light)\n", cfg.Theme)
		ok = false
	}
	if isValidLogLevel(cfg.LogLevel) {
		fmt.Printf("  ✅ log_level: %s (%s)\n", cfg.LogLevel, cws.Sources["log_level"])
	} else {
		fmt.Printf("  ❌ log_level: %s (expected debug|info|warn|error|fatal)\n", cfg.LogLevel)
		ok = false
	}
	if isValidLogFormat(cfg.LogFormat) {
		fmt.Printf("  ✅ log_format: %s (%s)\n", cfg.LogFormat, cws.Sources["log_format"])
	} else {
		fmt.Printf("  ❌ log_format: %s (expected text|json|logfmt)\n", cfg.LogFormat)
		ok = false
	}

	if verbose {
		fmt.Printf("  tasks_file: %s (%s)\n", cfg.TasksFile, cws.Sources["tasks_file"])
		schema := cfg.SchemaFile
		if schema == "" {
			schema = "(embedded)"
		}
		fmt.Printf("  schema_file: %s (%s)\n", schema, cws.Sources["schema_file"])
		fmt.Printf("  log_dir: %s (%s)\n", cfg.LogDir, cws.Sources["log_dir"])
		fmt.Printf("  autosave: %v (%s)\n", cfg.AutoSave, cws.Sources["autosave"])
		fmt.Printf("  confirm_delete: %v (%s)\n", cfg.ConfirmDelete, cws.Sources["confirm_delete"])
		fmt.Printf("  session_log: %v (%s)\n", cfg.SessionLog, cws.Sources["session_log"])
	}

	return ok
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func isValidLogFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "json", "logfmt":
		return true
	}
	return false
}

// checkClipboard reports whether a clipboard helper for the TUI copy key is
// present. Missing helpers are a warning, not a failure; everything else
// works without one.
func checkClipboard() {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"pbcopy"}
	case "windows":
		candidates = []string{"clip"}
	default:
		candidates = []string{"xclip", "xsel", "wl-copy"}
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			candidates = []string{"wl-copy", "xclip", "xsel"}
		}
	}

	for _, name := range candidates {
		if resolved, err := exec.LookPath(name); err == nil {
			fmt.Printf("  ✅ %s (found in PATH: %s)\n", name, resolved)
			return
		}
	}
	fmt.Printf("  ⚠️  No clipboard helper found (looked for %s); the copy key will not work\n", strings.Join(candidates, ", "))
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
