package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ivlev/beat2frame/internal/config"
	"github.com/ivlev/beat2frame/internal/frames"
	"github.com/ivlev/beat2frame/internal/input"
	"github.com/ivlev/beat2frame/internal/locale"
	"github.com/ivlev/beat2frame/internal/settings"
)

// app is the state shared by all commands of one invocation.
type app struct {
	cfg     *config.Config
	out     io.Writer
	store   settings.Store
	session *settings.Session
	loc     *locale.Localizer
	cache   *frames.Cache
}

var languageNames = map[settings.Language]string{
	settings.Japanese: locale.LanguageJa,
	settings.English:  locale.LanguageEn,
}

// open restores the stored settings and renders them once, so that only
// later changes are written back.
func (a *app) open() {
	a.store = settings.NewFileStore(a.cfg.SettingsPath)
	a.session = settings.NewSession(a.store)
	a.session.Observe(a.session.Current())
	a.loc = locale.New(string(a.session.Current().Lang))
}

// about is the root help text in the stored language. Help runs without
// open, so the settings are read here without a session.
func (a *app) about() string {
	loc := a.loc
	if loc == nil {
		loc = locale.New(string(settings.Restore(settings.NewFileStore(a.cfg.SettingsPath)).Lang))
	}

	var names []string
	for _, lang := range settings.Languages() {
		names = append(names, fmt.Sprintf("%s (%s)", lang, loc.T(languageNames[lang])))
	}
	return loc.T(locale.Title) + "\n" + loc.T(locale.Catchphrase) + "\n\n" +
		"Languages: " + strings.Join(names, ", ")
}

// rows returns the table for s through the shared cache.
func (a *app) rows(s settings.Settings, rowCount int) []frames.Row {
	return a.cache.Rows(s.Params(), rowCount)
}

// paramFlags are the table inputs as typed text. Unset flags keep the
// stored value, unreadable ones too.
type paramFlags struct {
	beatInterval string
	beatOffset   string
	fps          string
	bpm          string
	frameOffset  string
}

func (p *paramFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.beatInterval, "beat-interval", "", "beats between rows")
	fs.StringVar(&p.beatOffset, "beat-offset", "", "beat of the first row")
	fs.StringVar(&p.fps, "fps", "", "frame rate")
	fs.StringVar(&p.bpm, "bpm", "", "tempo in beats per minute (0 counts as 1)")
	fs.StringVar(&p.frameOffset, "frame-offset", "", "frames added to every row")
}

func (p *paramFlags) apply(fs *pflag.FlagSet, s settings.Settings) settings.Settings {
	if fs.Changed("beat-interval") {
		s.BeatInterval = input.ParseNumber(p.beatInterval, s.BeatInterval)
	}
	if fs.Changed("beat-offset") {
		s.BeatOffset = input.ParseNumber(p.beatOffset, s.BeatOffset)
	}
	if fs.Changed("fps") {
		s.FPS = input.ParseNumber(p.fps, s.FPS)
	}
	if fs.Changed("bpm") {
		s.BPM = input.ParseNumber(p.bpm, s.BPM)
	}
	if fs.Changed("frame-offset") {
		s.FrameOffset = input.ParseNumber(p.frameOffset, s.FrameOffset)
	}
	return s
}

// update applies the flags to the live settings, persists any change and
// returns the result. Settings with a zero fps are rejected before saving.
func (a *app) update(cmd *cobra.Command, p *paramFlags) (settings.Settings, error) {
	next := p.apply(cmd.Flags(), a.session.Current())
	if next.FPS == 0 {
		return next, errors.New("fps must not be zero")
	}
	if err := a.session.Observe(next); err != nil {
		return next, errors.Wrap(err, "saving settings")
	}
	return next, nil
}

// fields maps the parameter flag names to the values they edit.
var fields = map[string]func(*settings.Settings) *float64{
	"beat-interval": func(s *settings.Settings) *float64 { return &s.BeatInterval },
	"beat-offset":   func(s *settings.Settings) *float64 { return &s.BeatOffset },
	"fps":           func(s *settings.Settings) *float64 { return &s.FPS },
	"bpm":           func(s *settings.Settings) *float64 { return &s.BPM },
	"frame-offset":  func(s *settings.Settings) *float64 { return &s.FrameOffset },
}

func fieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func languageList() string {
	tags := make([]string, 0, len(settings.Languages()))
	for _, lang := range settings.Languages() {
		tags = append(tags, string(lang))
	}
	return strings.Join(tags, ", ")
}
