package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/beat2frame/internal/config"
	"github.com/ivlev/beat2frame/internal/engine"
	"github.com/ivlev/beat2frame/internal/export"
	"github.com/ivlev/beat2frame/internal/frames"
	"github.com/ivlev/beat2frame/internal/input"
	"github.com/ivlev/beat2frame/internal/locale"
	"github.com/ivlev/beat2frame/internal/numfmt"
	"github.com/ivlev/beat2frame/internal/script"
	"github.com/ivlev/beat2frame/internal/settings"
	"github.com/ivlev/beat2frame/internal/share"
	"github.com/ivlev/beat2frame/internal/table"
	"github.com/ivlev/beat2frame/internal/timecode"
	"github.com/ivlev/beat2frame/internal/watch"
)

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{cfg: config.Default(), out: out, cache: frames.NewCache()}
	a.cfg.BuildVersion = version

	root := &cobra.Command{
		Use:           "beat2frame",
		Short:         "Beat to frame calculator and After Effects keyframe script generator.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.open()
		},
	}
	root.SetOut(out)
	help := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		root.Long = a.about()
		help(cmd, args)
	})
	root.PersistentFlags().StringVar(&a.cfg.SettingsPath, "settings", a.cfg.SettingsPath, "settings file (env "+config.SettingsEnv+")")

	root.AddCommand(
		newTableCmd(a),
		newScriptCmd(a),
		newTimecodeCmd(a),
		newSettingsCmd(a),
		newBatchCmd(a),
		newShareCmd(a),
		newWatchCmd(a),
		newVerifyCmd(a),
	)
	return root
}

func newTableCmd(a *app) *cobra.Command {
	var p paramFlags
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the beat to frame table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := table.ParseFormat(a.cfg.Format)
			if err != nil {
				return err
			}
			s, err := a.update(cmd, &p)
			if err != nil {
				return err
			}
			return table.Write(a.out, a.rows(s, a.cfg.RowCount), format, a.loc)
		},
	}
	p.register(cmd.Flags())
	cmd.Flags().IntVarP(&a.cfg.RowCount, "rows", "n", a.cfg.RowCount, "number of rows")
	cmd.Flags().StringVarP(&a.cfg.Format, "format", "f", a.cfg.Format, "output format: text, yaml, json")
	return cmd
}

func newScriptCmd(a *app) *cobra.Command {
	var (
		p         paramFlags
		stdout    bool
		timestamp bool
	)
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Write an After Effects script that keys every beat frame.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.update(cmd, &p)
			if err != nil {
				return err
			}
			text := script.Render(script.Frames(a.rows(s, a.cfg.RowCount)), s.FPS)
			if stdout {
				_, err := io.WriteString(a.out, text)
				return err
			}
			name := a.cfg.ScriptName
			if timestamp {
				name = export.TimestampedName(strings.TrimSuffix(name, "."+export.DefaultExtension))
			}
			path, err := export.WriteText(a.cfg.OutputDir, name, export.DefaultExtension, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "[+++] %s\n", a.loc.T(locale.ScriptSaved, map[string]interface{}{"Path": path}))
			return nil
		},
	}
	p.register(cmd.Flags())
	cmd.Flags().IntVarP(&a.cfg.RowCount, "rows", "n", a.cfg.RowCount, "number of keyframes")
	cmd.Flags().StringVarP(&a.cfg.OutputDir, "output", "o", a.cfg.OutputDir, "output directory")
	cmd.Flags().StringVar(&a.cfg.ScriptName, "name", a.cfg.ScriptName, "script file name (.jsx is added)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the script instead of writing a file")
	cmd.Flags().BoolVar(&timestamp, "timestamp", false, "append the current time to the file name")
	return cmd
}

func newTimecodeCmd(a *app) *cobra.Command {
	var (
		fps     string
		seconds bool
	)
	cmd := &cobra.Command{
		Use:   "timecode FRAMES...",
		Short: "Convert frame counts to HH:MM:SS:FF.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate := input.ParseNumber(fps, a.session.Current().FPS)
			if rate == 0 {
				return errors.New("fps must not be zero")
			}
			for _, arg := range args {
				n, ok := input.Parse(arg)
				if !ok {
					return errors.Errorf("not a frame count: %q", arg)
				}
				if seconds {
					fmt.Fprintf(a.out, "%s\t%s\t%ss\n", arg, timecode.Format(n, rate), numfmt.Format(timecode.Seconds(n, rate)))
					continue
				}
				fmt.Fprintf(a.out, "%s\t%s\n", arg, timecode.Format(n, rate))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fps, "fps", "", "frame rate (defaults to the stored one)")
	cmd.Flags().BoolVar(&seconds, "seconds", false, "also print the position in seconds")
	return cmd
}

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the stored settings.",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session.Current()
			if format == "yaml" {
				data, err := yaml.Marshal(s)
				if err != nil {
					return err
				}
				_, err = a.out.Write(data)
				return err
			}
			raw, err := settings.Encode(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, raw)
			return nil
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")

	var (
		p    paramFlags
		lang string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change stored values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lang") {
				if err := a.session.SetLanguage(settings.Language(lang)); err != nil {
					return err
				}
				a.loc = locale.New(lang)
			}
			next := p.apply(cmd.Flags(), a.session.Current())
			if err := a.session.Observe(next); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "[+++] %s\n", a.loc.T(locale.SettingsSaved))
			return nil
		},
	}
	p.register(set.Flags())
	set.Flags().StringVar(&lang, "lang", "", "interface language: "+languageList())

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Reset(); err != nil {
				return err
			}
			a.loc = locale.New(string(settings.Primary))
			fmt.Fprintf(a.out, "[+++] %s\n", a.loc.T(locale.SettingsReset))
			return nil
		},
	}

	var by string
	step := &cobra.Command{
		Use:       "step FIELD",
		Short:     "Nudge one stored value up or down.",
		Long:      "Adds --by to one value. FIELD is one of: " + strings.Join(fieldNames(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: fieldNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := fields[args[0]]
			if !ok {
				return errors.Errorf("unknown field %q", args[0])
			}
			delta, ok := input.Parse(by)
			if !ok {
				return errors.Errorf("not a number: %q", by)
			}

			next := a.session.Current()
			v := field(&next)
			*v = input.ParseNumber(input.Step(numfmt.Format(*v), delta), *v)
			if next.FPS == 0 {
				return errors.New("fps must not be zero")
			}
			if err := a.session.Observe(next); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s\t%s\n", args[0], numfmt.Format(*v))
			return nil
		},
	}
	step.Flags().StringVar(&by, "by", "1", "amount to add, negative to subtract")

	cmd.AddCommand(show, set, reset, step)
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "batch [FILE.yaml]",
		Short: "Export a script for every preset of a batch file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				latest, err := config.FindLatestBatch(dir)
				if err != nil {
					return err
				}
				path = latest
				fmt.Fprintf(a.out, "[*] Using batch file: %s\n", path)
			}

			batch, err := config.ReadBatch(path)
			if err != nil {
				return errors.Wrapf(err, "reading %s", path)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			results, err := engine.NewBatchProject(a.cfg, batch).Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "[+++] %s\n", a.loc.T(locale.BatchDone, map[string]interface{}{"Count": len(results)}))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "presets", "directory of batch files; batch without FILE uses the newest one")
	cmd.Flags().StringVarP(&a.cfg.OutputDir, "output", "o", a.cfg.OutputDir, "output directory")
	cmd.Flags().IntVarP(&a.cfg.Workers, "workers", "w", a.cfg.Workers, "parallel exports")
	cmd.Flags().BoolVar(&a.cfg.ShowStats, "stats", false, "print a performance report and append it to benchmark.log")

	var name string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Start a new batch file from the stored settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session.Current()
			batch := &config.BatchFile{
				Version: config.BatchVersion,
				Presets: []config.Preset{{
					Name:   name,
					Rows:   a.cfg.RowCount,
					Params: s.Params(),
				}},
			}
			if err := batch.Presets[0].Validate(); err != nil {
				return err
			}

			path := config.GenerateBatchPath(dir)
			if err := config.WriteBatch(batch, path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "[+++] Batch file created: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&name, "name", export.DefaultName, "preset name")
	initCmd.Flags().IntVarP(&a.cfg.RowCount, "rows", "n", a.cfg.RowCount, "number of keyframes")
	cmd.AddCommand(initCmd)
	return cmd
}

func newShareCmd(a *app) *cobra.Command {
	var (
		path string
		size int
	)
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Save the stored settings as a QR code.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := share.WritePNG(a.session.Current(), path, size); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "[+++] %s\n", a.loc.T(locale.QRSaved, map[string]interface{}{"Path": path}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "settings.png", "PNG file")
	cmd.Flags().IntVar(&size, "size", share.DefaultSize, "image size in pixels")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rewrite the script whenever the settings file changes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regenerate := func(s settings.Settings) error {
				if s.FPS == 0 {
					return errors.New("fps must not be zero")
				}
				loc := locale.New(string(s.Lang))
				text := script.Render(script.Frames(a.rows(s, a.cfg.RowCount)), s.FPS)
				path, err := export.WriteText(a.cfg.OutputDir, a.cfg.ScriptName, export.DefaultExtension, text)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "[>] %s\n", loc.T(locale.ScriptSaved, map[string]interface{}{"Path": path}))
				return nil
			}

			if err := regenerate(a.session.Current()); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			fmt.Fprintf(a.out, "[*] %s\n", a.loc.T(locale.Watching, map[string]interface{}{"Path": a.cfg.SettingsPath}))
			return watch.New(a.cfg.SettingsPath, regenerate).Run(ctx)
		},
	}
	cmd.Flags().IntVarP(&a.cfg.RowCount, "rows", "n", a.cfg.RowCount, "number of keyframes")
	cmd.Flags().StringVarP(&a.cfg.OutputDir, "output", "o", a.cfg.OutputDir, "output directory")
	cmd.Flags().StringVar(&a.cfg.ScriptName, "name", a.cfg.ScriptName, "script file name (.jsx is added)")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var p paramFlags
	cmd := &cobra.Command{
		Use:   "verify [FILE.jsx]",
		Short: "Check that a script keys the frames the settings produce.",
		Long:  "Check that a script keys the frames the settings produce. Without FILE the newest script in the output directory is checked.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				latest, err := export.FindLatest(a.cfg.OutputDir, export.DefaultExtension)
				if err != nil {
					return err
				}
				path = latest
				fmt.Fprintf(a.out, "[*] Checking %s\n", path)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			got, err := script.ExtractTimes(string(data))
			if err != nil {
				return err
			}

			s := p.apply(cmd.Flags(), a.session.Current())
			want := script.Frames(a.rows(s, len(got)))
			if !script.Same(got, want) {
				return errors.New(a.loc.T(locale.VerifyMismatch))
			}
			fmt.Fprintf(a.out, "[+++] %s\n", a.loc.T(locale.VerifyOK, map[string]interface{}{"Count": len(got)}))
			return nil
		},
	}
	p.register(cmd.Flags())
	cmd.Flags().StringVarP(&a.cfg.OutputDir, "output", "o", a.cfg.OutputDir, "directory searched for the newest script when FILE is omitted")
	return cmd
}
