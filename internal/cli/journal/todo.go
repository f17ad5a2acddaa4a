package journal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/models"
)

var priorities = map[string]models.TaskPriority{
	"critical": models.PriorityCritical,
	"high":     models.PriorityHigh,
	"medium":   models.PriorityMedium,
	"low":      models.PriorityLow,
}

type TodoAddCmd struct {
	Text     string `arg:"" help:"What needs doing."`
	Priority string `short:"p" default:"medium" enum:"critical,high,medium,low" help:"Priority: critical, high, medium or low."`
	Category string `short:"c" help:"Free-form category."`
	Goal     string `short:"g" help:"Goal id or title this todo moves forward."`
	Date     string `short:"d" help:"Day to add to (default today)."`
}

func (c *TodoAddCmd) Run(ctx *cli.Context) error {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return fmt.Errorf("todo text must not be empty")
	}
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	item := models.ToDoItem{
		Text:     text,
		Priority: priorities[c.Priority],
		Category: c.Category,
	}
	if c.Goal != "" {
		g, err := cli.FindGoal(t.Snapshot().Goals, c.Goal)
		if err != nil {
			return err
		}
		item.LinkedGoalID = g.ID
	}
	item = t.AddTodo(day, item)
	ctx.Printf("✓ Added todo %s: %s\n", cli.ShortID(item.ID), item.Text)
	return nil
}

// findTodo matches a 1-based list position, an id or an id prefix.
func findTodo(todos []models.ToDoItem, key string) (models.ToDoItem, error) {
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(todos) {
		return todos[n-1], nil
	}
	for _, t := range todos {
		if t.ID == key || (len(key) >= 4 && strings.HasPrefix(t.ID, key)) {
			return t, nil
		}
	}
	return models.ToDoItem{}, fmt.Errorf("no todo %q", key)
}

type TodoDoneCmd struct {
	Todo string `arg:"" help:"Todo number or id."`
	Date string `short:"d" help:"Day of the todo (default today)."`
}

func (c *TodoDoneCmd) Run(ctx *cli.Context) error {
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	e, _ := t.Snapshot().Entry(day)
	item, err := findTodo(e.Todos, c.Todo)
	if err != nil {
		return err
	}
	if t.ToggleTodo(day, item.ID) {
		ctx.Printf("✓ Completed: %s\n", item.Text)
	} else {
		ctx.Printf("↺ Reopened: %s\n", item.Text)
	}
	return nil
}

type TodoRmCmd struct {
	Todo string `arg:"" help:"Todo number or id."`
	Date string `short:"d" help:"Day of the todo (default today)."`
}

func (c *TodoRmCmd) Run(ctx *cli.Context) error {
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	e, _ := t.Snapshot().Entry(day)
	item, err := findTodo(e.Todos, c.Todo)
	if err != nil {
		return err
	}
	t.DeleteTodo(day, item.ID)
	ctx.Printf("✓ Removed: %s\n", item.Text)
	return nil
}

type TodoListCmd struct {
	Date string `arg:"" optional:"" help:"Day to list (default today)."`
}

func (c *TodoListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	day, err := cli.ResolveDate(c.Date, t.Now())
	if err != nil {
		return err
	}
	e, _ := t.Snapshot().Entry(day)
	if len(e.Todos) == 0 {
		ctx.Printf("No todos for %s\n", day)
		return nil
	}
	printTodos(ctx, e.Todos)
	return nil
}

func printTodos(ctx *cli.Context, todos []models.ToDoItem) {
	for i, item := range todos {
		line := fmt.Sprintf("  %2d. %s %s", i+1, check(item.Completed), item.Text)
		if item.Priority != "" && item.Priority != models.PriorityMedium {
			line += fmt.Sprintf(" (%s)", item.Priority)
		}
		if item.Category != "" {
			line += " #" + item.Category
		}
		ctx.Println(line)
	}
}
