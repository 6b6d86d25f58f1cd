package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/focusflow"
	"github.com/hay-kot/focusflow/internal/tui/components/taskform"
	"github.com/hay-kot/focusflow/pkg/iojson"
)

// TaskCmd implements the focusflow task command group.
type TaskCmd struct {
	flags *Flags
	app   *focusflow.App

	// add/edit flags
	title       string
	description string
	priority    string
	minutes     int

	// list flags
	listAll   bool
	listMatch string

	importReader iojson.FileReader[[]task.Draft]
}

// NewTaskCmd creates a new task command.
func NewTaskCmd(flags *Flags, app *focusflow.App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

// Register adds the task command to the application.
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "task",
		Usage: "Manage tasks",
		Description: `Task commands for adding, listing, editing, and completing tasks.

Examples:
  focusflow task add --title "Review PR" --priority high --minutes 30
  focusflow task ls --match "*review*"
  focusflow task done <id>`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.listCmd(),
			cmd.editCmd(),
			cmd.removeCmd(),
			cmd.doneCmd(),
			cmd.importCmd(),
		},
	})

	return app
}

func (cmd *TaskCmd) draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "task title",
			Destination: &cmd.title,
		},
		&cli.StringFlag{
			Name:        "description",
			Aliases:     []string{"d"},
			Usage:       "task description (markdown)",
			Destination: &cmd.description,
		},
		&cli.StringFlag{
			Name:        "priority",
			Aliases:     []string{"p"},
			Usage:       "priority (high, medium, low)",
			Destination: &cmd.priority,
		},
		&cli.IntFlag{
			Name:        "minutes",
			Aliases:     []string{"m"},
			Usage:       fmt.Sprintf("time allocation in minutes (%d-%d)", task.MinTimeAllocation, task.MaxTimeAllocation),
			Destination: &cmd.minutes,
		},
	}
}

func (cmd *TaskCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "focusflow task add [--title <title>] [--priority <p>] [--minutes <n>]",
		Description: `Adds a task and prints it as JSON.

When --title is omitted and stdin is a terminal, an interactive form
prompts for input. Priority and minutes default to the configured values.`,
		Flags:  cmd.draftFlags(),
		Action: cmd.runAdd,
	}
}

func (cmd *TaskCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks",
		UsageText: "focusflow task list [--all] [--match <glob>]",
		Description: `Lists tasks as JSON lines in insertion order.

Completed tasks are hidden unless --all is set. --match filters by a
case-insensitive glob on the title.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "include completed tasks",
				Destination: &cmd.listAll,
			},
			&cli.StringFlag{
				Name:        "match",
				Usage:       "glob pattern matched against titles",
				Destination: &cmd.listMatch,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *TaskCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a task",
		UsageText: "focusflow task edit <id> [--title <title>] [--priority <p>] [--minutes <n>]",
		Description: `Edits a task and prints the result as JSON.

Only the flags that are set are changed. With no flags and a terminal on
stdin, an interactive form prefilled with the task is shown.`,
		Flags:  cmd.draftFlags(),
		Action: cmd.runEdit,
	}
}

func (cmd *TaskCmd) removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		UsageText: "focusflow task rm <id>",
		Action:    cmd.runRemove,
	}
}

func (cmd *TaskCmd) doneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a task completed",
		UsageText: "focusflow task done <id>",
		Action:    cmd.runDone,
	}
}

func (cmd *TaskCmd) importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Add tasks from a JSON array of drafts",
		UsageText: "focusflow task import [-f <file>]",
		Description: `Reads a JSON array of task drafts from a file or stdin and adds them.

Each draft has title, description, priority, and timeAllocation fields.
Missing priority and timeAllocation fall back to the configured defaults.
Nothing is added if any draft is invalid.

Examples:
  focusflow task import -f tasks.json
  echo '[{"title":"Plan sprint","timeAllocation":30}]' | focusflow task import`,
		Flags:  []cli.Flag{cmd.importReader.Flag()},
		Action: cmd.runImport,
	}
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	d, err := cmd.applyFlags(c, cmd.app.Config.DefaultDraft())
	if err != nil {
		return err
	}

	if !c.IsSet("title") {
		if !stdinIsTerminal() {
			return fmt.Errorf("--title is required when stdin is not a terminal")
		}
		d, err = runDraftForm(d)
		if err != nil {
			return err
		}
	}

	d = d.Normalize()
	if err := task.ValidateDraft(d); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	added, err := cmd.app.Tasks.Add(ctx, d)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, added)
}

func (cmd *TaskCmd) runList(_ context.Context, c *cli.Command) error {
	pattern := strings.ToLower(cmd.listMatch)
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid --match pattern %q", cmd.listMatch)
	}

	for _, t := range cmd.app.Tasks.Tasks() {
		if t.Completed && !cmd.listAll {
			continue
		}
		if pattern != "" {
			ok, _ := doublestar.Match(pattern, strings.ToLower(t.Title))
			if !ok {
				continue
			}
		}

		if err := iojson.WriteLine(c.Root().Writer, t); err != nil {
			return err
		}
	}

	return nil
}

func (cmd *TaskCmd) runEdit(ctx context.Context, c *cli.Command) error {
	t, err := cmd.lookup(c)
	if err != nil {
		return err
	}

	d, err := cmd.applyFlags(c, t.Draft())
	if err != nil {
		return err
	}

	if !anySet(c, "title", "description", "priority", "minutes") {
		if !stdinIsTerminal() {
			return fmt.Errorf("nothing to change: set at least one of --title, --description, --priority, --minutes")
		}
		d, err = runDraftForm(d)
		if err != nil {
			return err
		}
	}

	d = d.Normalize()
	if err := task.ValidateDraft(d); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	updated := t.Apply(d)
	if err := cmd.app.Tasks.Update(ctx, updated); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, updated)
}

func (cmd *TaskCmd) runRemove(ctx context.Context, c *cli.Command) error {
	t, err := cmd.lookup(c)
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "deleted")
	return nil
}

func (cmd *TaskCmd) runDone(ctx context.Context, c *cli.Command) error {
	t, err := cmd.lookup(c)
	if err != nil {
		return err
	}

	cmd.app.Tasks.SetCurrentTask(&t)
	if err := cmd.app.Tasks.CompleteCurrent(ctx); err != nil {
		return fmt.Errorf("complete task: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "completed")
	return nil
}

func (cmd *TaskCmd) runImport(ctx context.Context, c *cli.Command) error {
	drafts, err := cmd.importReader.Read()
	if err != nil {
		return err
	}

	defaults := cmd.app.Config.DefaultDraft()
	var errs []error
	for i := range drafts {
		if drafts[i].Priority == "" {
			drafts[i].Priority = defaults.Priority
		}
		if drafts[i].TimeAllocation == 0 {
			drafts[i].TimeAllocation = defaults.TimeAllocation
		}
		drafts[i] = drafts[i].Normalize()
		if err := task.ValidateDraft(drafts[i]); err != nil {
			errs = append(errs, fmt.Errorf("draft %d: %w", i, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid import: %w", err)
	}

	for _, d := range drafts {
		added, err := cmd.app.Tasks.Add(ctx, d)
		if err != nil {
			return fmt.Errorf("add task: %w", err)
		}
		if err := iojson.WriteLine(c.Root().Writer, added); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(drafts)).Msg("imported tasks")
	return nil
}

// applyFlags overlays the draft flags that were set onto d.
func (cmd *TaskCmd) applyFlags(c *cli.Command, d task.Draft) (task.Draft, error) {
	if c.IsSet("title") {
		d.Title = cmd.title
	}
	if c.IsSet("description") {
		d.Description = cmd.description
	}
	if c.IsSet("priority") {
		p, err := task.ParsePriority(cmd.priority)
		if err != nil {
			return d, err
		}
		d.Priority = p
	}
	if c.IsSet("minutes") {
		d.TimeAllocation = cmd.minutes
	}
	return d, nil
}

func (cmd *TaskCmd) lookup(c *cli.Command) (task.Task, error) {
	if c.NArg() < 1 {
		return task.Task{}, fmt.Errorf("usage: focusflow task %s <id>", c.Name)
	}
	return findTask(cmd.app.Tasks, c.Args().Get(0))
}

// findTask resolves id, suggesting similar ids when it is unknown.
func findTask(store *focusflow.TaskStore, id string) (task.Task, error) {
	if t, ok := store.Get(id); ok {
		return t, nil
	}

	msg := fmt.Sprintf("unknown task %q", id)
	if suggestions := task.Suggest(id, store.Tasks(), 3); len(suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(suggestions, ", "))
	}
	return task.Task{}, errors.New(msg)
}

func runDraftForm(d task.Draft) (task.Draft, error) {
	fmt.Println(styles.BannerStyle.Render(styles.Banner))
	fmt.Println()

	values := taskform.FromDraft(d)
	if err := taskform.New(values).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return d, fmt.Errorf("cancelled")
		}
		return d, err
	}

	return values.Draft()
}

func anySet(c *cli.Command, names ...string) bool {
	for _, n := range names {
		if c.IsSet(n) {
			return true
		}
	}
	return false
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
