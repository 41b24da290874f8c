package podcaster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"podcaster/internal/app/podcaster/generate"
	"podcaster/internal/app/podcaster/proc"
	"podcaster/internal/app/podcaster/session"
	"podcaster/internal/app/podcaster/upload"
	"podcaster/internal/app/podcaster/workflow"
	"podcaster/internal/configs"
)

// DashboardPath is the view hosting the upload workflow
const DashboardPath = "/dashboard"

// ErrNotAuthenticated returned when dashboard redirects to login
var ErrNotAuthenticated = errors.New("not authenticated, sign in first")

// App is terminal host of the dashboard
type App struct {
	config   *configs.Conf
	workflow *workflow.Workflow
	out      io.Writer
	colorize bool
}

// NewApplication makes dashboard with generator chosen by config mode
func NewApplication(conf *configs.Conf, out io.Writer) (*App, error) {
	gen, err := NewGenerator(conf)
	if err != nil {
		return nil, err
	}
	app := &App{config: conf, out: out, colorize: shouldColorize(out)}
	app.workflow = workflow.New(workflow.Options{
		Generator:    gen,
		Host:         app,
		DemoAudioURL: conf.Client.DemoAudioURL,
	})
	return app, nil
}

// NewGenerator by client mode
func NewGenerator(conf *configs.Conf) (generate.Generator, error) {
	switch conf.Client.Mode {
	case configs.ModeHTTP, "":
		return generate.NewHTTPClient(conf.Client.Endpoint,
			generate.WithTimeout(conf.Client.Timeout), generate.WithToken(conf.Client.Token)), nil
	case configs.ModeDemo:
		return &generate.DemoGenerator{AudioURL: conf.Client.DemoAudioURL}, nil
	case configs.ModeLocal:
		return &generate.LocalGenerator{
			Pipeline: &proc.Processor{Extractor: &proc.Extractor{}, MaxChars: conf.Service.SummaryMaxChars},
			MaxSize:  conf.Service.MaxUploadSize,
		}, nil
	default:
		return nil, fmt.Errorf("unknown client mode %q", conf.Client.Mode)
	}
}

// Run stages and submits files one by one, adds demo items and renders dashboard
func (a *App) Run(ctx context.Context, files []string, demos int) error {
	route := session.Resolve(DashboardPath)
	if route.Redirect != "" {
		log.Printf("[WARN] dashboard redirects to %s", route.Redirect)
		return ErrNotAuthenticated
	}

	for i := 0; i < demos; i++ {
		a.workflow.AddDemo()
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.workflow.Select(upload.FromPath(file)); err != nil {
			continue
		}
		if _, err := a.workflow.Submit(ctx); err != nil {
			log.Printf("[WARN] can't submit %s, %v", file, err)
		}
	}

	a.Render()
	return nil
}

// Notify prints user notice
func (a *App) Notify(message string) {
	if a.colorize {
		message = text.FgRed.Sprint(message)
	}
	fmt.Fprintf(a.out, "! %s\n", message) // nolint
}

// ResetFileInput has nothing to clear in terminal, files come from args
func (a *App) ResetFileInput() {
	log.Printf("[DEBUG] file input reset")
}

// Render dashboard view
func (a *App) Render() {
	v := a.workflow.View()

	status := "idle"
	if v.Uploading {
		status = "uploading"
	}
	fmt.Fprintf(a.out, "Selected file: %s (%s)\n", v.StagedName, status) // nolint

	if v.Summary != "" {
		fmt.Fprintf(a.out, "\nSummary\n%s\n", v.Summary) // nolint
	}

	fmt.Fprintln(a.out, "\nMy Podcasts") // nolint
	if len(v.Items) == 0 {
		fmt.Fprintln(a.out, `No podcasts yet. Use "Add Demo Podcast" or generate one above.`) // nolint
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Audio / Summary"})
	for i, item := range v.Items {
		content := item.AudioURL
		if !item.HasAudio() {
			content = "No audio (backend TTS not configured)\n" + wrap(item.Summary, 72)
		}
		tw.AppendRow(table.Row{i + 1, item.Title, content})
	}
	fmt.Fprintln(a.out, tw.Render()) // nolint
}

func wrap(s string, width int) string {
	return text.WrapSoft(strings.TrimSpace(s), width)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
