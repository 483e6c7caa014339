package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/authoring"
	"github.com/2beens/fitprogram/internal/program/client"
	"github.com/2beens/fitprogram/internal/program/service"
)

var errUserRequired = errors.New("user id required, use --user or FITPROGRAM_USER")

func (o *cliOptions) requireUser() error {
	if o.user == "" {
		return errUserRequired
	}
	return nil
}

func (o *cliOptions) print(w io.Writer, v any) error {
	if o.output == "yaml" {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(toPlain(v)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// toPlain routes v through its JSON form so the yaml output uses the same
// field names and custom encodings (ledger, durations) as the API.
func toPlain(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var plain any
	if err := json.Unmarshal(data, &plain); err != nil {
		return v
	}
	return plain
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid program id [%s]", arg)
	}
	return id, nil
}

func parseDay(idArg, weekArg, dayArg string) (id int64, week, day int, err error) {
	if id, err = parseID(idArg); err != nil {
		return 0, 0, 0, err
	}
	if week, err = strconv.Atoi(weekArg); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid week [%s]", weekArg)
	}
	if day, err = strconv.Atoi(dayArg); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid day [%s]", dayArg)
	}
	return id, week, day, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date [%s], use YYYY-MM-DD", value)
	}
	return date, nil
}

func readDefinition(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func createCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <file.yaml | ->",
		Short: "Create a program from a YAML definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireUser(); err != nil {
				return err
			}
			doc, err := readDefinition(args[0], cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read program definition: %w", err)
			}
			// fail fast without a round trip
			if _, err := authoring.Parse(bytes.NewReader(doc)); err != nil {
				return err
			}
			sched, err := opts.client().CreateFromYAML(cmd.Context(), opts.user, doc)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), sched)
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.yaml | ->",
		Short: "Check a YAML program definition locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDefinition(args[0], cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read program definition: %w", err)
			}
			f, err := authoring.Parse(bytes.NewReader(doc))
			if err != nil {
				return err
			}
			tmpl := f.Template()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %d weeks x %d days, %d workout days per week\n",
				f.Name, f.DurationWeeks, tmpl.DaysPerWeek, tmpl.WorkoutDaysPerWeek())
			return nil
		},
	}
}

func listCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the programs of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireUser(); err != nil {
				return err
			}
			list, err := opts.client().List(cmd.Context(), opts.user)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), list)
		},
	}
}

// idCmd builds a command taking a single program id argument.
func idCmd(use, short string, run func(ctx context.Context, c *client.Client, id int64) (any, error), opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <program-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out, err := run(cmd.Context(), opts.client(), id)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), out)
		},
	}
}

func showCmd(opts *cliOptions) *cobra.Command {
	return idCmd("show", "Show a program", func(ctx context.Context, c *client.Client, id int64) (any, error) {
		return c.Get(ctx, id)
	}, opts)
}

func templateCmd(opts *cliOptions) *cobra.Command {
	return idCmd("template", "Show the template of a program", func(ctx context.Context, c *client.Client, id int64) (any, error) {
		return c.Template(ctx, id)
	}, opts)
}

func statsCmd(opts *cliOptions) *cobra.Command {
	return idCmd("stats", "Show progress statistics of a program", func(ctx context.Context, c *client.Client, id int64) (any, error) {
		return c.Stats(ctx, id)
	}, opts)
}

func historyCmd(opts *cliOptions) *cobra.Command {
	return idCmd("history", "List completed sessions of a program", func(ctx context.Context, c *client.Client, id int64) (any, error) {
		return c.History(ctx, id)
	}, opts)
}

func transitionCmd(
	opts *cliOptions,
	use, short string,
	transition func(*client.Client, context.Context, int64) (*program.Schedule, error),
) *cobra.Command {
	return idCmd(use, short, func(ctx context.Context, c *client.Client, id int64) (any, error) {
		return transition(c, ctx, id)
	}, opts)
}

func exportCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <program-id>",
		Short: "Print a program as a YAML definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			doc, err := opts.client().Export(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(doc)
			return err
		},
	}
}

func deleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <program-id>",
		Short: "Delete a program with its template and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := opts.client().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "program %d deleted\n", id)
			return nil
		},
	}
}

func startCmd(opts *cliOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "start <program-id>",
		Short: "Start a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			startDate, err := parseDate(date)
			if err != nil {
				return err
			}
			sched, err := opts.client().Start(cmd.Context(), id, startDate)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), sched)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "start date YYYY-MM-DD (default today)")
	return cmd
}

func completeDayCmd(opts *cliOptions) *cobra.Command {
	var (
		sessionID string
		notes     string
		duration  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "complete-day <program-id> <week> <day>",
		Short: "Mark a program day as done",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, week, day, err := parseDay(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			var report *service.SessionReport
			if sessionID != "" || notes != "" || duration > 0 {
				report = &service.SessionReport{
					SessionID: sessionID,
					Duration:  duration,
					Notes:     notes,
				}
			}
			sched, err := opts.client().CompleteDay(cmd.Context(), id, week, day, report)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), sched)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "id of the logged workout session")
	cmd.Flags().StringVar(&notes, "notes", "", "session notes")
	cmd.Flags().DurationVar(&duration, "duration", 0, "session duration, e.g. 45m")
	return cmd
}

func undoDayCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <program-id> <week> <day>",
		Short: "Remove a day from the completed days",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, week, day, err := parseDay(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			sched, err := opts.client().UndoDay(cmd.Context(), id, week, day)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), sched)
		},
	}
}

func renameCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <program-id> <title>",
		Short: "Change the title of a program",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sched, err := opts.client().Rename(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), sched)
		},
	}
}

func restCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Log or show rest day entries",
	}

	var (
		feeling    string
		note       string
		activities []string
	)
	logCmd := &cobra.Command{
		Use:   "log <program-id> <week> <day>",
		Short: "Log how a rest day went",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, week, day, err := parseDay(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			saved, err := opts.client().LogRestDay(cmd.Context(), id, program.RestDayLog{
				Week:       week,
				Day:        day,
				Feeling:    feeling,
				Activities: activities,
				Note:       note,
			})
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), saved)
		},
	}
	logCmd.Flags().StringVar(&feeling, "feeling", "", "how the day felt")
	logCmd.Flags().StringSliceVar(&activities, "activity", nil, "activity done on the rest day, repeatable")
	logCmd.Flags().StringVar(&note, "note", "", "free text note")

	getCmd := &cobra.Command{
		Use:   "show <program-id> <week> <day>",
		Short: "Show the rest day entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, week, day, err := parseDay(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			restLog, err := opts.client().GetRestDay(cmd.Context(), id, week, day)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), restLog)
		},
	}

	cmd.AddCommand(logCmd, getCmd)
	return cmd
}

func todayCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the workout scheduled for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireUser(); err != nil {
				return err
			}
			workout, err := opts.client().Today(cmd.Context(), opts.user)
			if err != nil {
				return err
			}
			if workout == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing scheduled today")
				return nil
			}
			return opts.print(cmd.OutOrStdout(), workout)
		},
	}
}

func calendarCmd(opts *cliOptions) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show scheduled workouts between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireUser(); err != nil {
				return err
			}
			fromDate, err := parseDate(from)
			if err != nil {
				return err
			}
			if fromDate.IsZero() {
				fromDate = time.Now()
			}
			toDate, err := parseDate(to)
			if err != nil {
				return err
			}
			if toDate.IsZero() {
				toDate = fromDate.AddDate(0, 0, 6)
			}
			view, err := opts.client().Calendar(cmd.Context(), opts.user, fromDate, toDate)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&to, "to", "", "last date YYYY-MM-DD (default a week after from)")
	return cmd
}
