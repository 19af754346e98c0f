package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chalk/internal/bootstrap"
	lessondto "chalk/internal/modules/lesson/dto"
	"chalk/internal/platform/calc"
	"chalk/internal/platform/config"
	apperrors "chalk/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	vault  string
	config string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "chalk",
		Short:         "Terminal classroom with a chalkboard lesson and study panels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.vault, "vault", ".", "lesson vault path")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "config file (default <vault>/.chalk/config.yaml)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newLessonCmd(flags))
	root.AddCommand(newAssistantCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newCalcCmd())
	return root
}

// withApp builds the application for one command and closes it afterwards.
func withApp(flags *globalFlags, run func(app *bootstrap.App) error) error {
	cfg, err := config.Load(flags.vault, flags.config)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	runErr := run(app)
	if err := app.Close(); err != nil && runErr == nil {
		return fmt.Errorf("close: %w", err)
	}
	return runErr
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	var lessonID string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the classroom",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				path, err := bootstrap.RunTUI(app, lessonID)
				if path != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session note: %s\n", path)
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&lessonID, "lesson", "", "lesson id to open first")
	return cmd
}

func newInitCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the sample lessons into the vault and index them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				ctx := context.Background()
				seeded, err := app.LessonCLI.Seed(ctx)
				if err != nil {
					return err
				}
				for _, path := range seeded.Written {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				}
				for _, path := range seeded.Skipped {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kept %s\n", path)
				}
				out, err := app.LessonCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed=%d removed=%d\n", out.Indexed, out.Removed)
				return nil
			})
		},
	}
}

func newLessonCmd(flags *globalFlags) *cobra.Command {
	lesson := &cobra.Command{Use: "lesson", Short: "Lesson catalog commands"}

	lesson.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List lessons in chapter order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				lessons, err := app.LessonCLI.ListLessons(context.Background())
				if err != nil {
					return err
				}
				if len(lessons) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no lessons, run `chalk init`")
					return nil
				}
				for _, l := range lessons {
					mark := " "
					if l.Completed {
						mark = "✓"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n", mark, l.ID, l.Chapter, l.Title)
				}
				return nil
			})
		},
	})

	lesson.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a lesson with its continuation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				l, err := app.LessonCLI.GetLesson(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ntitle: %s\nchapter: %s\nformat: %s\ncompleted: %t\nfile: %s\n\n", l.ID, l.Title, l.Chapter, l.Format, l.Completed, l.Path)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), joinSegments(l.Body))
				if len(l.Continuation) > 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\n---")
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), joinSegments(l.Continuation))
				}
				return nil
			})
		},
	})

	lesson.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the lesson index from the vault",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.LessonCLI.Reindex(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed=%d removed=%d\n", out.Indexed, out.Removed)
				return nil
			})
		},
	})
	return lesson
}

func newAssistantCmd(flags *globalFlags) *cobra.Command {
	assistant := &cobra.Command{Use: "assistant", Short: "Assistant plugin operations"}

	assistant.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured assistant plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				plugins, err := app.AssistantCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no assistant plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n", p.Name, p.Version, p.Enabled, p.Binary, strings.Join(p.Capabilities, ","))
				}
				return nil
			})
		},
	})

	assistant.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check plugin checksums, binaries and handshake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				results, err := app.AssistantCLI.Doctor(context.Background())
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no assistant plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})

	var plugin, lessonID string
	ask := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				name := plugin
				if name == "" {
					name = app.Config.Assistant.Plugin
				}
				out, err := app.AssistantCLI.Ask(context.Background(), name, strings.Join(args, " "), lessonID)
				if errors.Is(err, apperrors.ErrNoAssistant) {
					return fmt.Errorf("%w: pass --plugin or set assistant.plugin", err)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Answer)
				return nil
			})
		},
	}
	ask.Flags().StringVar(&plugin, "plugin", "", "plugin name (default assistant.plugin)")
	ask.Flags().StringVar(&lessonID, "lesson", "", "lesson id for context")
	assistant.AddCommand(ask)
	return assistant
}

func newSessionCmd(flags *globalFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session records"}

	session.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the open study session, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				active, err := app.SessionCLI.GetActive(context.Background())
				if errors.Is(err, apperrors.ErrNoActiveSession) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session=%s lesson=%s started=%s\n", active.SessionID, active.LessonID, active.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "Close a session left open by a crashed classroom",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.End(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s duration=%dmin note=%s\n", out.SessionID, out.DurationMin, out.Path)
				return nil
			})
		},
	})
	return session
}

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <expr>",
		Short: "Evaluate an arithmetic expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := calc.Evaluate(strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), calc.Format(v))
			return nil
		},
	}
}

func joinSegments(segments []lessondto.Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		if seg.Kind == "break" {
			sb.WriteString("\n\n")
			continue
		}
		if i > 0 && segments[i-1].Kind != "break" {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
