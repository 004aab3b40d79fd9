package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ncobase/tasklist/types"
)

var colorAttrs = map[types.Color][]color.Attribute{
	types.Red:    {color.FgRed},
	types.Blue:   {color.FgBlue},
	types.Green:  {color.FgGreen},
	types.Yellow: {color.FgYellow},
	types.Purple: {color.FgMagenta},
	types.Orange: {color.FgHiRed},
	types.Pink:   {color.FgHiMagenta},
	types.Brown:  {color.FgHiYellow, color.Faint},
}

// colorize renders the color name in its own color when the terminal supports it.
func colorize(c types.Color) string {
	attrs, ok := colorAttrs[c]
	if !ok {
		return string(c)
	}
	return color.New(attrs...).Sprint(c.Name())
}

func printTasks(w io.Writer, tasks []types.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTITLE\tUPDATED\tCOLOR")
	for _, t := range tasks {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, done, t.Title, types.FormatTime(t.UpdatedAt), colorize(t.Color))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, summary(tasks))
	return err
}

// summary is the footer under the table: how many tasks exist and how many are done.
func summary(tasks []types.Task) string {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return fmt.Sprintf("\nCreated tasks: %d  Completed: %d of %d", len(tasks), completed, len(tasks))
}
