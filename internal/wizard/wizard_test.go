package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/maheshrc27/socialflow/internal/ai"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/repository"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	extract func(ctx context.Context, rawURL string) (*ai.BusinessInfo, error)
	ideas   func(ctx context.Context, profile models.BrandProfile, count int) ([]ai.Idea, error)
	image   func(ctx context.Context, prompt string, profile models.BrandProfile) (*ai.Image, error)
}

func (f *fakeGenerator) ExtractBusinessInfo(ctx context.Context, rawURL string) (*ai.BusinessInfo, error) {
	if f.extract != nil {
		return f.extract(ctx, rawURL)
	}
	return &ai.BusinessInfo{
		BusinessName: "Acme Coffee",
		Description:  "Specialty coffee roasters",
		Niche:        "Food & Beverage",
		Keywords:     []string{"coffee", "roastery"},
		ContactInfo:  "hello@acme.coffee",
		PrimaryColor: "#112233",
	}, nil
}

func (f *fakeGenerator) GeneratePostIdeas(ctx context.Context, profile models.BrandProfile, count int) ([]ai.Idea, error) {
	if f.ideas != nil {
		return f.ideas(ctx, profile, count)
	}
	ideas := make([]ai.Idea, count)
	for i := range ideas {
		ideas[i] = ai.Idea{
			Caption:     fmt.Sprintf("Caption %d for %s", i+1, profile.BusinessName),
			ImagePrompt: fmt.Sprintf("prompt-%d", i+1),
			VisualStyle: models.VisualStyleEditorial,
		}
	}
	return ideas, nil
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string, profile models.BrandProfile) (*ai.Image, error) {
	if f.image != nil {
		return f.image(ctx, prompt, profile)
	}
	return &ai.Image{URL: "https://images.test/" + prompt}, nil
}

type passthroughStore struct{}

func (passthroughStore) StoreImage(_ context.Context, img *ai.Image) (string, error) {
	return img.URL, nil
}

type testEnv struct {
	wizard      *Wizard
	credits     service.CreditService
	sink        service.PublishService
	connections service.ConnectionService
}

func newTestEnv(gen ai.Generator) *testEnv {
	kv := storage.NewMemoryKV()
	credits := service.NewCreditService(repository.NewCreditRepository(kv))
	sink := service.NewPublishService(repository.NewPostRepository(kv), repository.NewIdeaRepository(kv))
	connections := service.NewConnectionService(repository.NewConnectionRepository(kv))
	w := New(gen, credits, sink, connections, passthroughStore{})
	return &testEnv{wizard: w, credits: credits, sink: sink, connections: connections}
}

const testUser = "user-1"

// advance drives the session to the brand step with a usable profile.
func (e *testEnv) advanceToBrand(t *testing.T) {
	t.Helper()
	require.NoError(t, e.wizard.Skip(testUser))
	require.NoError(t, e.wizard.SetBrand(testUser, models.BrandProfile{
		BusinessName: "Acme Coffee",
		Description:  "Specialty coffee roasters",
		Keywords:     []string{"coffee"},
		PrimaryColor: "#112233",
	}))
}

func (e *testEnv) advanceToReview(t *testing.T) {
	t.Helper()
	e.advanceToBrand(t)
	require.NoError(t, e.wizard.Generate(context.Background(), testUser))
}

func TestScanColorFallback(t *testing.T) {
	tests := []struct {
		name      string
		color     string
		wantColor string
	}{
		{name: "valid six digit hex", color: "#a1B2c3", wantColor: "#a1B2c3"},
		{name: "valid short hex", color: "#abc", wantColor: "#abc"},
		{name: "missing color", color: "", wantColor: models.DefaultPrimaryColor},
		{name: "not a hex string", color: "cornflower blue", wantColor: models.DefaultPrimaryColor},
		{name: "hash but bad digits", color: "#zzzzzz", wantColor: models.DefaultPrimaryColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{
				extract: func(_ context.Context, _ string) (*ai.BusinessInfo, error) {
					return &ai.BusinessInfo{
						BusinessName: "Acme",
						PrimaryColor: tt.color,
					}, nil
				},
			}
			env := newTestEnv(gen)

			err := env.wizard.Scan(context.Background(), testUser, "https://acme.coffee")
			require.NoError(t, err)

			state := env.wizard.State(testUser)
			assert.Equal(t, int(StepBrand), state.Step)
			assert.Equal(t, tt.wantColor, state.Brand.PrimaryColor)
			assert.True(t, strings.HasPrefix(state.Brand.PrimaryColor, "#"))
		})
	}
}

func TestScanInvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "no scheme", url: "acme.coffee"},
		{name: "unsupported scheme", url: "ftp://acme.coffee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(&fakeGenerator{})

			err := env.wizard.Scan(context.Background(), testUser, tt.url)
			require.ErrorIs(t, err, ai.ErrInvalidURL)

			state := env.wizard.State(testUser)
			assert.Equal(t, int(StepSource), state.Step)
			assert.Empty(t, state.InputURL)
		})
	}
}

func TestScanExtractionFailureKeepsState(t *testing.T) {
	gen := &fakeGenerator{
		extract: func(_ context.Context, _ string) (*ai.BusinessInfo, error) {
			return nil, errors.New("model unavailable")
		},
	}
	env := newTestEnv(gen)

	err := env.wizard.Scan(context.Background(), testUser, "https://acme.coffee")
	require.Error(t, err)

	state := env.wizard.State(testUser)
	assert.Equal(t, int(StepSource), state.Step)
	assert.Equal(t, models.DefaultBrandProfile(), state.Brand)
}

func TestGenerateInsufficientCredits(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	env.advanceToBrand(t)

	_, err := env.credits.TopUp(context.Background(), testUser, 1)
	require.NoError(t, err)
	ok, err := env.credits.Spend(context.Background(), testUser, 46)
	require.NoError(t, err)
	require.True(t, ok) // balance now 5

	err = env.wizard.Generate(context.Background(), testUser)
	require.ErrorIs(t, err, ErrInsufficientCredits)

	balance, err := env.credits.Balance(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, 5, balance)

	state := env.wizard.State(testUser)
	assert.Equal(t, int(StepBrand), state.Step)
	assert.Empty(t, state.Candidates)
}

func TestGenerateBatchIsAtomic(t *testing.T) {
	gen := &fakeGenerator{
		image: func(_ context.Context, prompt string, _ models.BrandProfile) (*ai.Image, error) {
			if prompt == "prompt-2" {
				return nil, errors.New("image model rejected the request")
			}
			return &ai.Image{URL: "https://images.test/" + prompt}, nil
		},
	}
	env := newTestEnv(gen)
	env.advanceToBrand(t)

	err := env.wizard.Generate(context.Background(), testUser)
	require.Error(t, err)

	balance, err := env.credits.Balance(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, repository.StartingCredits, balance)

	state := env.wizard.State(testUser)
	assert.Equal(t, int(StepBrand), state.Step)
	assert.Empty(t, state.Candidates)
	assert.Empty(t, state.Selected)
}

func TestGenerateReplacesBatchAndClearsSelection(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	env.advanceToReview(t)

	require.NoError(t, env.wizard.ToggleSelect(testUser, 0))
	firstBatch := env.wizard.State(testUser).Candidates

	require.NoError(t, env.wizard.Back(testUser))
	require.NoError(t, env.wizard.Generate(context.Background(), testUser))

	state := env.wizard.State(testUser)
	assert.Len(t, state.Candidates, DefaultIdeaCount)
	assert.Empty(t, state.Selected)
	for i, c := range state.Candidates {
		assert.NotEqual(t, firstBatch[i].ID, c.ID)
	}
}

func TestToggleSelectIsItsOwnInverse(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	env.advanceToReview(t)

	require.NoError(t, env.wizard.ToggleSelect(testUser, 1))
	assert.Equal(t, []int{1}, env.wizard.State(testUser).Selected)

	require.NoError(t, env.wizard.ToggleSelect(testUser, 1))
	assert.Empty(t, env.wizard.State(testUser).Selected)

	err := env.wizard.ToggleSelect(testUser, 99)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestEditCaption(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	env.advanceToReview(t)

	require.NoError(t, env.wizard.EditCaption(testUser, 0, "Rewritten caption"))

	state := env.wizard.State(testUser)
	assert.Equal(t, "Rewritten caption", state.Candidates[0].Caption)
	// Neighbors untouched.
	assert.Contains(t, state.Candidates[1].Caption, "Caption 2")
}

func TestRegenerateImageKeepsCaption(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	env.advanceToReview(t)

	before := env.wizard.State(testUser).Candidates[1]

	err := env.wizard.RegenerateImage(context.Background(), testUser, 1, "sunset skyline")
	require.NoError(t, err)

	after := env.wizard.State(testUser).Candidates[1]
	assert.Equal(t, before.Caption, after.Caption)
	assert.Equal(t, "sunset skyline", after.ImagePrompt)
	assert.Equal(t, "https://images.test/sunset skyline", after.ImageURL)

	balance, err := env.credits.Balance(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, repository.StartingCredits-service.GenerationCost-service.RegenerationCost, balance)
}

func TestRegenerateImageFailureDebitsNothing(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	env.advanceToReview(t)

	env.wizard.gen.(*fakeGenerator).image = func(_ context.Context, _ string, _ models.BrandProfile) (*ai.Image, error) {
		return nil, errors.New("quota exhausted")
	}

	before := env.wizard.State(testUser).Candidates[0]
	err := env.wizard.RegenerateImage(context.Background(), testUser, 0, "")
	require.Error(t, err)

	after := env.wizard.State(testUser).Candidates[0]
	assert.Equal(t, before, after)

	balance, err := env.credits.Balance(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, repository.StartingCredits-service.GenerationCost, balance)
}

func TestSaveIdeaIsIdempotent(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	env.advanceToReview(t)

	require.NoError(t, env.wizard.SaveIdea(context.Background(), testUser, 0))
	require.NoError(t, env.wizard.SaveIdea(context.Background(), testUser, 0))

	ideas, err := env.sink.Ideas(context.Background(), testUser)
	require.NoError(t, err)
	assert.Len(t, ideas, 1)

	// Saving does not touch the wizard session.
	state := env.wizard.State(testUser)
	assert.Equal(t, int(StepReview), state.Step)
	assert.Len(t, state.Candidates, DefaultIdeaCount)
}

func TestFinalizePreconditions(t *testing.T) {
	tests := []struct {
		name      string
		selection []int
		connect   []string
		targets   []string
		wantErr   error
	}{
		{name: "empty selection", selection: nil, connect: []string{"X"}, targets: []string{"X"}, wantErr: ErrEmptySelection},
		{name: "no connected platforms", selection: []int{0}, connect: nil, targets: []string{"X"}, wantErr: ErrNoConnectedPlatforms},
		{name: "no target platforms", selection: []int{0}, connect: []string{"X"}, targets: nil, wantErr: ErrNoTargetPlatforms},
		{name: "target not connected", selection: []int{0}, connect: []string{"X"}, targets: []string{"LinkedIn"}, wantErr: ErrPlatformNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(&fakeGenerator{})
			env.advanceToReview(t)

			for _, p := range tt.connect {
				_, err := env.connections.Toggle(context.Background(), testUser, p)
				require.NoError(t, err)
			}
			for _, idx := range tt.selection {
				require.NoError(t, env.wizard.ToggleSelect(testUser, idx))
			}

			posts, err := env.wizard.Finalize(context.Background(), testUser, tt.targets, false)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, posts)

			// No post emitted, wizard state unchanged.
			history, err := env.sink.History(context.Background(), testUser)
			require.NoError(t, err)
			assert.Empty(t, history)
			assert.Equal(t, int(StepReview), env.wizard.State(testUser).Step)
		})
	}
}

func TestEndToEndPublishScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&fakeGenerator{})

	balance, err := env.credits.Balance(ctx, testUser)
	require.NoError(t, err)
	require.Equal(t, 50, balance)

	env.advanceToBrand(t)
	require.NoError(t, env.wizard.Generate(ctx, testUser))

	balance, err = env.credits.Balance(ctx, testUser)
	require.NoError(t, err)
	require.Equal(t, 40, balance)

	require.NoError(t, env.wizard.RegenerateImage(ctx, testUser, 0, ""))

	balance, err = env.credits.Balance(ctx, testUser)
	require.NoError(t, err)
	require.Equal(t, 38, balance)

	_, err = env.connections.Toggle(ctx, testUser, "X")
	require.NoError(t, err)
	require.NoError(t, env.wizard.ToggleSelect(testUser, 0))
	require.NoError(t, env.wizard.ToggleSelect(testUser, 2))

	posts, err := env.wizard.Finalize(ctx, testUser, []string{"X"}, false)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	history, err := env.sink.History(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, post := range history {
		assert.Equal(t, models.PostStatusPosted, post.Status)
		assert.Nil(t, post.ScheduledTime)
		assert.Equal(t, []string{"X"}, post.Platforms)
		assert.Equal(t, "Acme Coffee", post.BusinessInfo.BusinessName)
		assert.True(t, strings.HasPrefix(post.ID, "pub-"))
	}

	state := env.wizard.State(testUser)
	assert.Equal(t, int(StepSource), state.Step)
	assert.Empty(t, state.InputURL)
	assert.Equal(t, models.DefaultBrandProfile(), state.Brand)
	assert.Empty(t, state.Candidates)
	assert.Empty(t, state.Selected)
}

func TestFinalizeScheduled(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&fakeGenerator{})
	env.advanceToReview(t)

	_, err := env.connections.Toggle(ctx, testUser, "Instagram")
	require.NoError(t, err)
	require.NoError(t, env.wizard.ToggleSelect(testUser, 1))

	posts, err := env.wizard.Finalize(ctx, testUser, []string{"Instagram"}, true)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, models.PostStatusScheduled, post.Status)
	require.NotNil(t, post.ScheduledTime)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), *post.ScheduledTime, time.Minute)
}

func TestBackTransitions(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})

	// Back on the source step is invalid.
	require.ErrorIs(t, env.wizard.Back(testUser), ErrWrongStep)

	require.NoError(t, env.wizard.Scan(context.Background(), testUser, "https://acme.coffee"))
	require.NoError(t, env.wizard.Back(testUser))

	state := env.wizard.State(testUser)
	assert.Equal(t, int(StepSource), state.Step)
	assert.Equal(t, "https://acme.coffee", state.InputURL)

	env.advanceToReview(t)
	require.NoError(t, env.wizard.ToggleSelect(testUser, 0))
	require.NoError(t, env.wizard.Back(testUser))

	// Review -> Brand keeps the batch and the selection.
	state = env.wizard.State(testUser)
	assert.Equal(t, int(StepBrand), state.Step)
	assert.Len(t, state.Candidates, DefaultIdeaCount)
	assert.Equal(t, []int{0}, state.Selected)
}

func TestConcurrentIntentIsRejectedWhileBusy(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{
		ideas: func(_ context.Context, profile models.BrandProfile, count int) ([]ai.Idea, error) {
			<-release
			return (&fakeGenerator{}).GeneratePostIdeas(context.Background(), profile, count)
		},
	}
	env := newTestEnv(gen)
	env.advanceToBrand(t)

	done := make(chan error, 1)
	go func() {
		done <- env.wizard.Generate(context.Background(), testUser)
	}()

	require.Eventually(t, func() bool {
		return env.wizard.State(testUser).Busy
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, env.wizard.Skip(testUser), ErrBusy)
	assert.ErrorIs(t, env.wizard.Generate(context.Background(), testUser), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int(StepReview), env.wizard.State(testUser).Step)
}

func TestWrongStepOperations(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})

	assert.ErrorIs(t, env.wizard.Generate(context.Background(), testUser), ErrWrongStep)
	assert.ErrorIs(t, env.wizard.EditCaption(testUser, 0, "x"), ErrWrongStep)
	assert.ErrorIs(t, env.wizard.ToggleSelect(testUser, 0), ErrWrongStep)

	_, err := env.wizard.Finalize(context.Background(), testUser, []string{"X"}, false)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestGenerateRequiresBusinessName(t *testing.T) {
	env := newTestEnv(&fakeGenerator{})
	require.NoError(t, env.wizard.Skip(testUser))

	err := env.wizard.Generate(context.Background(), testUser)
	assert.ErrorIs(t, err, ErrEmptyBrand)
}
