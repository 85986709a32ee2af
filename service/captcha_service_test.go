package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/layer-3/clickcha/adapters/store"
	"github.com/layer-3/clickcha/core"
	"github.com/layer-3/clickcha/layout"
)

// stubRenderer pretends every glyph rendered half again as large as its
// font size, which is roughly what rotation does to real glyphs.
type stubRenderer struct {
	err error
}

func (r *stubRenderer) Render(targets []*core.Target) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	for _, t := range targets {
		t.Width = t.FontSize * 3 / 2
		t.Height = t.FontSize * 3 / 2
	}
	return "data:image/png;base64,c3R1Yg==", nil
}

// recordingPublisher captures lifecycle events.
type recordingPublisher struct {
	created  []string
	consumed []string
}

func (p *recordingPublisher) PublishCreated(ctx context.Context, id string) error {
	p.created = append(p.created, id)
	return nil
}

func (p *recordingPublisher) PublishConsumed(ctx context.Context, id string, success bool) error {
	p.consumed = append(p.consumed, id)
	return nil
}

func newTestService(t *testing.T) (*CaptchaService, *store.MemoryStore, *recordingPublisher) {
	t.Helper()

	memStore := store.NewMemoryStore()
	events := &recordingPublisher{}

	generator := layout.NewGenerator(layout.Config{
		Width:       400,
		Height:      200,
		MinFontSize: 30,
		MaxFontSize: 45,
		MaxRotation: 30,
	})

	svc := NewCaptchaService(Config{
		Tolerance:   30,
		TTL:         120 * time.Second,
		ImageWidth:  400,
		ImageHeight: 200,
	}, memStore, &stubRenderer{}, events, generator, zap.NewNop())

	return svc, memStore, events
}

// centerClicks builds the correct click sequence for a challenge.
func centerClicks(c *core.Challenge) []core.ClickPosition {
	clicks := make([]core.ClickPosition, len(c.Targets))
	for i, t := range c.Targets {
		clicks[i] = core.ClickPosition{X: t.X, Y: t.Y}
	}
	return clicks
}

func TestCreate_ChallengeInvariants(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Create(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, challenge.CaptchaID)
	assert.Equal(t, challenge.TargetCount, len(challenge.Targets))
	assert.Equal(t, 400, challenge.ImageWidth)
	assert.Equal(t, 200, challenge.ImageHeight)
	assert.Contains(t, challenge.ImageData, "data:image/png;base64,")
	assert.WithinDuration(t, time.Now(), challenge.CreatedAt, time.Second)

	// Rendered extents replaced the layout's font-size placeholder.
	for _, tgt := range challenge.Targets {
		assert.Equal(t, tgt.FontSize*3/2, tgt.Width)
		assert.Greater(t, tgt.Width, 0)
		assert.Greater(t, tgt.Height, 0)
	}

	// Every prompt character corresponds to exactly one persisted target.
	for i, tgt := range challenge.Targets {
		assert.Contains(t, challenge.Prompt, tgt.Name, "target %d missing from prompt", i)
	}

	assert.Equal(t, []string{challenge.CaptchaID}, events.created)
}

func TestCreate_PersistsFetchableChallenge(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	fetched, err := svc.Fetch(ctx, created.CaptchaID)
	require.NoError(t, err)

	assert.Equal(t, created.CaptchaID, fetched.CaptchaID)
	assert.Equal(t, created.Targets, fetched.Targets)
	assert.Equal(t, created.Prompt, fetched.Prompt)
	assert.Equal(t, created.TargetCount, fetched.TargetCount)

	// Reads are idempotent: fetching does not consume.
	again, err := svc.Fetch(ctx, created.CaptchaID)
	require.NoError(t, err)
	assert.Equal(t, fetched, again)
}

func TestCreate_RendererFailurePropagates(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.renderer = &stubRenderer{err: core.ErrFontNotFound}

	_, err := svc.Create(context.Background())
	assert.ErrorIs(t, err, core.ErrFontNotFound)
}

func TestVerify_CorrectClicks(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Create(ctx)
	require.NoError(t, err)

	valid, err := svc.Verify(ctx, challenge.CaptchaID, centerClicks(challenge))
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, []string{challenge.CaptchaID}, events.consumed)
}

func TestVerify_SingleUse(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Create(ctx)
	require.NoError(t, err)
	clicks := centerClicks(challenge)

	valid, err := svc.Verify(ctx, challenge.CaptchaID, clicks)
	require.NoError(t, err)
	require.True(t, valid)

	// The identical correct submission is now worthless.
	valid, err = svc.Verify(ctx, challenge.CaptchaID, clicks)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = svc.Fetch(ctx, challenge.CaptchaID)
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestVerify_WrongClicksStillConsume(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Create(ctx)
	require.NoError(t, err)

	// Clicks far outside every radius.
	wrong := make([]core.ClickPosition, len(challenge.Targets))
	for i := range wrong {
		wrong[i] = core.ClickPosition{X: -500, Y: -500}
	}

	valid, err := svc.Verify(ctx, challenge.CaptchaID, wrong)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = svc.Fetch(ctx, challenge.CaptchaID)
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestVerify_CountMismatchDeletes(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Create(ctx)
	require.NoError(t, err)

	valid, err := svc.Verify(ctx, challenge.CaptchaID, []core.ClickPosition{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = svc.Fetch(ctx, challenge.CaptchaID)
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestVerify_UnknownIDIsFailureNotError(t *testing.T) {
	svc, _, _ := newTestService(t)

	valid, err := svc.Verify(context.Background(), "no-such-id", []core.ClickPosition{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerify_ExpiredChallenge(t *testing.T) {
	svc, memStore, _ := newTestService(t)
	ctx := context.Background()

	now := time.Now()
	memStore.SetClock(func() time.Time { return now })

	challenge, err := svc.Create(ctx)
	require.NoError(t, err)

	now = now.Add(121 * time.Second)

	valid, err := svc.Verify(ctx, challenge.CaptchaID, centerClicks(challenge))
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestFetch_MalformedRecordTreatedAsAbsent(t *testing.T) {
	svc, memStore, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, memStore.Set(ctx, "broken", "{not json", time.Minute))

	_, err := svc.Fetch(ctx, "broken")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestVerify_StoreErrorSurfaces(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.store = &failingStore{}

	_, err := svc.Verify(context.Background(), "id", nil)
	assert.Error(t, err)
}

type failingStore struct{}

func (s *failingStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("boom")
}

func (s *failingStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("boom")
}

func (s *failingStore) Delete(ctx context.Context, key string) (bool, error) {
	return false, errors.New("boom")
}
