// Package workflow drives upload-and-generate: it stages a document, submits
// it through a generator and folds the outcome into the podcast collection.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"

	"podcaster/internal/app/podcaster/generate"
	"podcaster/internal/app/podcaster/podcast"
	"podcaster/internal/app/podcaster/upload"
)

// User-visible notices
const (
	NoticeUnsupported = "Only .pdf and .txt files are allowed"
	NoticeNoFile      = "Please select a .pdf or .txt file first"
)

// NoFileLabel is shown as staged name when nothing is staged
const NoFileLabel = "none"

var (
	// ErrNoFileStaged returned by Submit in Idle state
	ErrNoFileStaged = errors.New("no file staged")
	// ErrBusy returned while a submission is in flight
	ErrBusy = errors.New("submission in progress")
)

// Host is the rendering side the workflow reports to
type Host interface {
	Notify(message string)
	ResetFileInput()
}

// NopHost ignores everything
type NopHost struct{}

// Notify does nothing
func (NopHost) Notify(string) {}

// ResetFileInput does nothing
func (NopHost) ResetFileInput() {}

// View is a snapshot for rendering
type View struct {
	State      State
	StagedName string
	Uploading  bool
	Summary    string // empty when there is nothing to show
	Items      []podcast.Item
}

// Options of workflow
type Options struct {
	Generator    generate.Generator
	Host         Host
	DemoAudioURL string
	IDs          *podcast.IDSource
}

// Workflow is bound to one user session and owns its staged slot and collection
type Workflow struct {
	mu         sync.Mutex
	selector   upload.Selector
	items      podcast.Collection
	generator  generate.Generator
	host       Host
	ids        *podcast.IDSource
	demoAudio  string
	submitting bool
	summary    string
}

// New makes idle workflow with empty collection
func New(opts Options) *Workflow {
	w := &Workflow{
		generator: opts.Generator,
		host:      opts.Host,
		ids:       opts.IDs,
		demoAudio: opts.DemoAudioURL,
	}
	if w.generator == nil {
		w.generator = &generate.DemoGenerator{AudioURL: podcast.SampleAudioURL}
	}
	if w.host == nil {
		w.host = NopHost{}
	}
	if w.ids == nil {
		w.ids = podcast.NewIDSource(nil)
	}
	if w.demoAudio == "" {
		w.demoAudio = podcast.SampleAudioURL
	}
	return w
}

// State of workflow
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Workflow) stateLocked() State {
	if w.submitting {
		return Submitting
	}
	if _, ok := w.selector.Staged(); ok {
		return Staged
	}
	return Idle
}

// Select stages candidate. Unsupported files leave nothing staged, the user
// is notified and the file input is reset.
func (w *Workflow) Select(c upload.Candidate) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return ErrBusy
	}
	f, err := w.selector.Select(c)
	w.mu.Unlock()

	switch {
	case err == nil:
		log.Printf("[INFO] staged %s", f.Name)
	case errors.Is(err, upload.ErrUnsupportedExtension):
		log.Printf("[WARN] rejected %s, %v", c.Name, err)
		w.host.Notify(NoticeUnsupported)
		w.host.ResetFileInput()
	}
	return err
}

// Submit sends staged file to generator and waits for the outcome.
// It returns ErrNoFileStaged or ErrBusy when no request was made, otherwise
// the outcome of the single attempt. The workflow is idle again on return.
func (w *Workflow) Submit(ctx context.Context) (generate.Outcome, error) {
	w.mu.Lock()
	state := w.stateLocked()
	if state == Submitting {
		w.mu.Unlock()
		return generate.Outcome{}, ErrBusy
	}
	if !state.CanSubmit() {
		w.mu.Unlock()
		w.host.Notify(NoticeNoFile)
		return generate.Outcome{}, ErrNoFileStaged
	}
	file, _ := w.selector.Staged()
	w.submitting = true
	w.summary = ""
	w.mu.Unlock()

	log.Printf("[INFO] submit %s", file.Name)
	out := w.generator.Generate(ctx, file)

	w.mu.Lock()
	if out.OK() {
		w.summary = out.Summary
		if w.summary == "" {
			w.summary = generate.NoSummary
		}
		item, err := w.buildItem(file.Name, out)
		if err != nil {
			log.Printf("[ERROR] can't build item for %s, %v", file.Name, err)
		} else {
			w.items.Prepend(item)
			log.Printf("[INFO] generated %s, audio: %t", file.Name, item.HasAudio())
		}
	} else {
		w.summary = ""
		log.Printf("[WARN] generation of %s failed, %v", file.Name, out.Err)
	}
	w.selector.Clear()
	w.submitting = false
	w.mu.Unlock()

	if !out.OK() {
		w.host.Notify(out.Message())
	}
	w.host.ResetFileInput()
	return out, nil
}

func (w *Workflow) buildItem(title string, out generate.Outcome) (podcast.Item, error) {
	id := w.ids.Next()
	if out.AudioURL != "" {
		return podcast.AudioItem(id, title, out.AudioURL)
	}
	return podcast.SummaryItem(id, title, w.summary)
}

// AddDemo prepends sample item, allowed in any state
func (w *Workflow) AddDemo() podcast.Item {
	item := w.items.PrependWith(func(size int) podcast.Item {
		return podcast.Item{
			ID:       w.ids.Next(),
			Title:    fmt.Sprintf("Demo podcast %d", size+1),
			AudioURL: w.demoAudio,
		}
	})
	log.Printf("[DEBUG] added %s", item.Title)
	return item
}

// Items in display order
func (w *Workflow) Items() []podcast.Item {
	return w.items.All()
}

// View snapshot for rendering
func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		State:      w.stateLocked(),
		StagedName: NoFileLabel,
		Uploading:  w.submitting,
		Summary:    w.summary,
		Items:      w.items.All(),
	}
	if f, ok := w.selector.Staged(); ok {
		v.StagedName = f.Name
	}
	return v
}
