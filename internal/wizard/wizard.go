package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maheshrc27/socialflow/internal/ai"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/service"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultIdeaCount is the batch size of one generation call.
const DefaultIdeaCount = 3

// scheduleDelay is applied when finalize runs with scheduling on.
const scheduleDelay = 24 * time.Hour

// ImageStore persists generated image bytes and yields a stable URL.
type ImageStore interface {
	StoreImage(ctx context.Context, img *ai.Image) (string, error)
}

// Wizard drives the three-step generation flow. One session per user; state
// only ever changes after the operation it belongs to has fully succeeded.
type Wizard struct {
	gen         ai.Generator
	credits     service.CreditService
	sink        service.PublishService
	connections service.ConnectionService
	assets      ImageStore

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(
	gen ai.Generator,
	credits service.CreditService,
	sink service.PublishService,
	connections service.ConnectionService,
	assets ImageStore) *Wizard {
	return &Wizard{
		gen:         gen,
		credits:     credits,
		sink:        sink,
		connections: connections,
		assets:      assets,
		sessions:    make(map[string]*Session),
	}
}

func (w *Wizard) session(userID string) *Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.sessions[userID]
	if !ok {
		s = newSession()
		w.sessions[userID] = s
	}
	return s
}

func (w *Wizard) State(userID string) State {
	return w.session(userID).snapshot()
}

// Scan extracts brand identity from a website URL and advances to the brand
// step. On any failure the session stays on the source step untouched.
func (w *Wizard) Scan(ctx context.Context, userID, rawURL string) error {
	if _, err := ai.ValidateURL(rawURL); err != nil {
		return err
	}

	s := w.session(userID)
	if err := s.begin(StepSource, "Scanning website for brand identity..."); err != nil {
		return err
	}
	defer s.end()

	info, err := w.gen.ExtractBusinessInfo(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputURL = rawURL
	s.brand = mergeBrand(s.brand, info)
	s.step = StepBrand
	return nil
}

// Skip enters the brand step for manual entry without scanning.
func (w *Wizard) Skip(userID string) error {
	s := w.session(userID)
	return s.sync(StepSource, func() error {
		s.step = StepBrand
		return nil
	})
}

// SetBrand overwrites the session's brand profile during manual entry.
func (w *Wizard) SetBrand(userID string, profile models.BrandProfile) error {
	s := w.session(userID)
	return s.sync(StepBrand, func() error {
		if !isHexColor(profile.PrimaryColor) {
			profile.PrimaryColor = models.DefaultPrimaryColor
		}
		s.brand = profile
		return nil
	})
}

// Back moves one step towards the source step. The input URL survives
// Brand→Source; the candidate batch and selection survive Review→Brand.
func (w *Wizard) Back(userID string) error {
	s := w.session(userID)
	return s.sync(0, func() error {
		switch s.step {
		case StepBrand:
			s.step = StepSource
		case StepReview:
			s.step = StepBrand
		default:
			return ErrWrongStep
		}
		return nil
	})
}

// Generate produces a fresh candidate batch: one ideas call, then an image
// per idea fanned out concurrently. Credits are debited only after the whole
// batch has resolved; any single failure leaves batch and balance untouched.
func (w *Wizard) Generate(ctx context.Context, userID string) error {
	s := w.session(userID)
	if err := s.begin(StepBrand, "Generating branded post strategies..."); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	brand := s.brand
	s.mu.Unlock()

	if brand.BusinessName == "" {
		return ErrEmptyBrand
	}

	balance, err := w.credits.Balance(ctx, userID)
	if err != nil {
		return err
	}
	if balance < service.GenerationCost {
		return ErrInsufficientCredits
	}

	ideas, err := w.gen.GeneratePostIdeas(ctx, brand, DefaultIdeaCount)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	s.mu.Lock()
	s.status = "Rendering professional assets..."
	s.mu.Unlock()

	// Fan out one image per idea; each writes to its own slot. The first
	// failure cancels the siblings and fails the whole batch.
	urls := make([]string, len(ideas))
	g, gctx := errgroup.WithContext(ctx)
	for i, idea := range ideas {
		g.Go(func() error {
			img, err := w.gen.GenerateImage(gctx, idea.ImagePrompt, brand)
			if err != nil {
				return err
			}
			url, err := w.assets.StoreImage(gctx, img)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	ok, err := w.credits.Spend(ctx, userID, service.GenerationCost)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientCredits
	}

	batch := make([]models.Candidate, len(ideas))
	for i, idea := range ideas {
		id, err := gonanoid.New()
		if err != nil {
			return err
		}
		batch[i] = models.Candidate{
			ID:          "post-" + id,
			Caption:     idea.Caption,
			ImagePrompt: idea.ImagePrompt,
			VisualStyle: idea.VisualStyle,
			ImageURL:    urls[i],
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = batch
	s.selected = make(map[int]struct{})
	s.step = StepReview
	return nil
}

// RegenerateImage replaces one candidate's image (and prompt, when an
// override is given). The caption is untouched; debit happens only after the
// new image resolved.
func (w *Wizard) RegenerateImage(ctx context.Context, userID string, idx int, promptOverride string) error {
	s := w.session(userID)
	if err := s.begin(StepReview, "Re-crafting your unique visual..."); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	if idx < 0 || idx >= len(s.candidates) {
		s.mu.Unlock()
		return ErrIndexOutOfRange
	}
	brand := s.brand
	prompt := s.candidates[idx].ImagePrompt
	s.mu.Unlock()

	if strings.TrimSpace(promptOverride) != "" {
		prompt = promptOverride
	}

	balance, err := w.credits.Balance(ctx, userID)
	if err != nil {
		return err
	}
	if balance < service.RegenerationCost {
		return ErrInsufficientCredits
	}

	img, err := w.gen.GenerateImage(ctx, prompt, brand)
	if err != nil {
		return fmt.Errorf("image regeneration failed: %w", err)
	}
	url, err := w.assets.StoreImage(ctx, img)
	if err != nil {
		return fmt.Errorf("image regeneration failed: %w", err)
	}

	ok, err := w.credits.Spend(ctx, userID, service.RegenerationCost)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientCredits
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < len(s.candidates) {
		s.candidates[idx].ImageURL = url
		s.candidates[idx].ImagePrompt = prompt
	}
	return nil
}

// EditCaption rewrites one candidate's caption. Free, always succeeds for a
// valid index.
func (w *Wizard) EditCaption(userID string, idx int, caption string) error {
	s := w.session(userID)
	return s.sync(StepReview, func() error {
		if idx < 0 || idx >= len(s.candidates) {
			return ErrIndexOutOfRange
		}
		s.candidates[idx].Caption = caption
		return nil
	})
}

// ToggleSelect flips membership of idx in the selection set.
func (w *Wizard) ToggleSelect(userID string, idx int) error {
	s := w.session(userID)
	return s.sync(StepReview, func() error {
		if idx < 0 || idx >= len(s.candidates) {
			return ErrIndexOutOfRange
		}
		if _, ok := s.selected[idx]; ok {
			delete(s.selected, idx)
		} else {
			s.selected[idx] = struct{}{}
		}
		return nil
	})
}

// SaveIdea snapshots one candidate together with the brand profile into the
// library. The wizard state is not touched; saving the same candidate twice
// is a no-op in the sink.
func (w *Wizard) SaveIdea(ctx context.Context, userID string, idx int) error {
	s := w.session(userID)

	var idea models.SavedIdea
	if err := s.sync(StepReview, func() error {
		if idx < 0 || idx >= len(s.candidates) {
			return ErrIndexOutOfRange
		}
		c := s.candidates[idx]
		idea = models.SavedIdea{
			ID:           c.ID,
			Caption:      c.Caption,
			ImagePrompt:  c.ImagePrompt,
			VisualStyle:  c.VisualStyle,
			ImageURL:     c.ImageURL,
			BusinessInfo: s.brand,
			SavedAt:      time.Now().UTC(),
		}
		return nil
	}); err != nil {
		return err
	}

	_, err := w.sink.SaveIdea(ctx, userID, idea)
	return err
}

// Finalize turns every selected candidate into a persisted post and resets
// the session. Requires a non-empty selection, at least one connected
// platform, and at least one chosen target that is actually connected.
func (w *Wizard) Finalize(ctx context.Context, userID string, platforms []string, schedule bool) ([]models.Post, error) {
	connected, err := w.connections.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	s := w.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return nil, ErrBusy
	}
	if s.step != StepReview {
		return nil, ErrWrongStep
	}
	if len(s.selected) == 0 {
		return nil, ErrEmptySelection
	}
	if len(connected) == 0 {
		return nil, ErrNoConnectedPlatforms
	}
	if len(platforms) == 0 {
		return nil, ErrNoTargetPlatforms
	}
	for _, p := range platforms {
		if !contains(connected, p) {
			slog.Info("finalize with unconnected platform", "platform", p)
			return nil, ErrPlatformNotConnected
		}
	}

	indices := make([]int, 0, len(s.selected))
	for idx := range s.selected {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	now := time.Now().UTC()
	status := models.PostStatusPosted
	var scheduledTime *time.Time
	if schedule {
		status = models.PostStatusScheduled
		t := now.Add(scheduleDelay)
		scheduledTime = &t
	}

	posts := make([]models.Post, 0, len(indices))
	for _, idx := range indices {
		c := s.candidates[idx]
		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		post := models.Post{
			ID:            "pub-" + id,
			Caption:       c.Caption,
			ImageURL:      c.ImageURL,
			Status:        status,
			ScheduledTime: scheduledTime,
			Platforms:     append([]string(nil), platforms...),
			CreatedAt:     now,
			BusinessInfo:  s.brand,
		}
		if _, err := w.sink.Publish(ctx, userID, post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	s.resetLocked()
	return posts, nil
}

func mergeBrand(current models.BrandProfile, info *ai.BusinessInfo) models.BrandProfile {
	merged := current
	if info.BusinessName != "" {
		merged.BusinessName = info.BusinessName
	}
	if info.Description != "" {
		merged.Description = info.Description
	}
	if info.Niche != "" {
		merged.Niche = info.Niche
	}
	if len(info.Keywords) > 0 {
		merged.Keywords = append([]string(nil), info.Keywords...)
	}
	if info.ContactInfo != "" {
		merged.ContactInfo = info.ContactInfo
	}
	if isHexColor(info.PrimaryColor) {
		merged.PrimaryColor = info.PrimaryColor
	} else {
		merged.PrimaryColor = models.DefaultPrimaryColor
	}
	if info.LogoURL != "" {
		merged.LogoURL = info.LogoURL
	}
	return merged
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
