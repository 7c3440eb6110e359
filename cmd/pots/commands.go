package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pot-ca/internal/app"
	"pot-ca/internal/logs"
)

// session carries state prepared by the root command for its subcommands.
type session struct {
	cfg        *app.Config
	configPath string
	app        *app.App
	closeLog   func() error
}

// execute runs the command line in args and releases the log file and
// metrics afterwards, also when the command failed.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, s := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() (*cobra.Command, *session) {
	s := &session{cfg: app.NewConfig()}

	root := &cobra.Command{
		Use:           "pots",
		Short:         "Simulate and extrapolate a one-dimensional pot automaton",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&s.configPath, "config", "", "YAML config file")
	s.cfg.Bind(root.PersistentFlags())

	root.AddCommand(
		newRunCmd(s),
		newSimulateCmd(s),
		newExtrapolateCmd(s),
	)
	return root, s
}

func (s *session) open(cmd *cobra.Command) error {
	if s.configPath != "" {
		file, err := app.LoadFile(s.configPath)
		if err != nil {
			return err
		}
		s.cfg.MergeFile(file, cmd.Flags())
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	logger, closeLog, err := logs.New(cmd.ErrOrStderr(), s.cfg.LogOptions())
	if err != nil {
		return err
	}
	s.closeLog = closeLog
	s.app = app.New(s.cfg, logger, nil)
	return nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	if cerr := s.closeLog(); err == nil {
		err = cerr
	}
	return err
}

func newRunCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "run <input>",
		Short: "Print the short simulated result and the long extrapolated result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := s.app.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Short)
			fmt.Fprintln(cmd.OutOrStdout(), res.Long)
			return nil
		},
	}
}

func newSimulateCmd(s *session) *cobra.Command {
	var generations int64
	cmd := &cobra.Command{
		Use:   "simulate <input>",
		Short: "Step every generation and print the sum of live positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := s.app.Load(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("generations") {
				generations = s.cfg.ShortGenerations
			}
			score, err := s.app.Simulate(in, generations)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), score)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&generations, "generations", "n", 0, "generations to simulate (defaults to --short)")
	return cmd
}

func newExtrapolateCmd(s *session) *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "extrapolate <input>",
		Short: "Find the repeating pattern and print the sum of live positions after --target generations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := s.app.Load(args[0])
			if err != nil {
				return err
			}
			res, err := s.app.Extrapolate(cmd.Context(), in, s.cfg.TargetGenerations)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Score)
			if explain {
				switch {
				case res.StableEmpty:
					fmt.Fprintf(out, "all pots empty after %d generations\n", res.Searched)
				case res.Direct:
					fmt.Fprintf(out, "target reached after %d generations without a repeat\n", res.Searched)
				default:
					fmt.Fprintf(out, "pattern of generation %d repeats at generation %d\n", res.FirstSeen, res.Recurrence)
					fmt.Fprintf(out, "period %d, shift %d per period\n", res.Period, res.Shift)
					fmt.Fprintf(out, "%d repetitions, remainder %d\n", res.Repetitions, res.Remainder)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "also print the cycle bookkeeping")
	return cmd
}
