package wizard

import (
	"sort"
	"sync"

	"github.com/maheshrc27/socialflow/internal/models"
)

type Step int

const (
	StepSource Step = iota + 1
	StepBrand
	StepReview
)

// Session holds one user's in-progress wizard run. The brand profile and the
// candidate batch are owned exclusively by the session until finalize hands
// snapshots to the sink.
type Session struct {
	mu     sync.Mutex
	busy   bool
	status string

	step       Step
	inputURL   string
	brand      models.BrandProfile
	candidates []models.Candidate
	selected   map[int]struct{}
}

func newSession() *Session {
	s := &Session{}
	s.resetLocked()
	return s
}

func (s *Session) resetLocked() {
	s.step = StepSource
	s.inputURL = ""
	s.brand = models.DefaultBrandProfile()
	s.candidates = nil
	s.selected = make(map[int]struct{})
}

// begin marks the session busy for the duration of an AI-backed operation.
// It fails fast when the session is already busy or on the wrong step.
func (s *Session) begin(required Step, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	if s.step != required {
		return ErrWrongStep
	}
	s.busy = true
	s.status = status
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.status = ""
	s.mu.Unlock()
}

// sync runs a non-suspending operation under the session lock, still
// respecting the single-operation-in-flight rule.
func (s *Session) sync(required Step, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	if required != 0 && s.step != required {
		return ErrWrongStep
	}
	return fn()
}

// State is the render contract: everything a caller needs to draw the three
// steps, the loading indicator, and the two modal sub-flows.
type State struct {
	Step          int                 `json:"step"`
	InputURL      string              `json:"input_url"`
	Brand         models.BrandProfile `json:"brand"`
	Candidates    []models.Candidate  `json:"candidates"`
	Selected      []int               `json:"selected"`
	Busy          bool                `json:"busy"`
	StatusMessage string              `json:"status_message"`
}

func (s *Session) snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make([]int, 0, len(s.selected))
	for idx := range s.selected {
		selected = append(selected, idx)
	}
	sort.Ints(selected)

	candidates := make([]models.Candidate, len(s.candidates))
	copy(candidates, s.candidates)

	return State{
		Step:          int(s.step),
		InputURL:      s.inputURL,
		Brand:         s.brand,
		Candidates:    candidates,
		Selected:      selected,
		Busy:          s.busy,
		StatusMessage: s.status,
	}
}
