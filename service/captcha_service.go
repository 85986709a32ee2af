// Package service orchestrates the captcha lifecycle: layout generation,
// rendering, persistence with TTL, and single-use verification.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/layer-3/clickcha/core"
	"github.com/layer-3/clickcha/layout"
	"github.com/layer-3/clickcha/ports"
)

// Config holds the service tunables.
type Config struct {
	// Tolerance is the pixel slack added to a target's hit radius.
	Tolerance int

	// TTL bounds how long an unverified challenge stays valid.
	TTL time.Duration

	// ImageWidth and ImageHeight describe the rendered canvas and are
	// echoed to clients so they can scale click coordinates.
	ImageWidth  int
	ImageHeight int
}

// CaptchaService handles captcha business logic. It owns challenge
// creation and destruction; the store owns physical storage lifetime.
type CaptchaService struct {
	cfg       Config
	store     ports.Store
	renderer  ports.Renderer
	eventPub  ports.EventPublisher
	generator *layout.Generator
	logger    *zap.Logger
}

// NewCaptchaService creates a new captcha service. eventPub may be nil,
// in which case lifecycle events are not published.
func NewCaptchaService(
	cfg Config,
	store ports.Store,
	renderer ports.Renderer,
	eventPub ports.EventPublisher,
	generator *layout.Generator,
	logger *zap.Logger,
) *CaptchaService {
	return &CaptchaService{
		cfg:       cfg,
		store:     store,
		renderer:  renderer,
		eventPub:  eventPub,
		generator: generator,
		logger:    logger,
	}
}

// TTL returns the configured challenge lifetime.
func (s *CaptchaService) TTL() time.Duration {
	return s.cfg.TTL
}

// Create generates a new challenge: lays out targets and decoys, renders
// them (which fixes each target's true extents), persists the challenge
// under a fresh id with the configured TTL, and returns it. The returned
// challenge still contains target geometry; transport must strip it
// before answering the client.
func (s *CaptchaService) Create(ctx context.Context) (*core.Challenge, error) {
	l := s.generator.Generate()

	imageData, err := s.renderer.Render(l.Display)
	if err != nil {
		return nil, fmt.Errorf("render captcha: %w", err)
	}

	// Keep only the characters that must be clicked, in the click order
	// fixed at sampling time. Display order stays shuffled on the image.
	clickTargets := make([]core.Target, 0, l.TargetCount)
	for _, char := range l.TargetChars {
		for _, t := range l.Display {
			if t.Name == char {
				clickTargets = append(clickTargets, *t)
				break
			}
		}
	}

	challenge := &core.Challenge{
		CaptchaID:   uuid.New().String(),
		ImageData:   imageData,
		Targets:     clickTargets,
		Prompt:      l.Prompt,
		TargetCount: l.TargetCount,
		CreatedAt:   time.Now(),
		ImageWidth:  s.cfg.ImageWidth,
		ImageHeight: s.cfg.ImageHeight,
	}

	payload, err := json.Marshal(challenge)
	if err != nil {
		return nil, fmt.Errorf("marshal challenge: %w", err)
	}

	if err := s.store.Set(ctx, challenge.CaptchaID, string(payload), s.cfg.TTL); err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishCreated(ctx, challenge.CaptchaID); err != nil {
			s.logger.Warn("failed to publish created event",
				zap.String("captcha_id", challenge.CaptchaID), zap.Error(err))
		}
	}

	s.logger.Info("captcha created",
		zap.String("captcha_id", challenge.CaptchaID),
		zap.Int("target_count", challenge.TargetCount))

	return challenge, nil
}

// Fetch loads a challenge by id. Unknown, consumed, and expired ids are
// indistinguishable: all return core.ErrChallengeNotFound. A stored
// record that fails to decode is treated as not found rather than
// surfaced, so a corrupt entry cannot wedge a client.
func (s *CaptchaService) Fetch(ctx context.Context, captchaID string) (*core.Challenge, error) {
	data, err := s.store.Get(ctx, captchaID)
	if err != nil {
		return nil, err
	}

	var challenge core.Challenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		s.logger.Error("failed to decode stored challenge",
			zap.String("captcha_id", captchaID), zap.Error(err))
		return nil, core.ErrChallengeNotFound
	}

	return &challenge, nil
}

// Verify checks a click sequence against a stored challenge and consumes
// it. The challenge is deleted whatever the outcome, so a given id can be
// verified at most once; replaying the same id returns false. A missing
// or expired id is an ordinary failed verification, not an error.
//
// Fetch and delete are two store calls, not a transaction: two concurrent
// verifies of the same id can both load the challenge before either
// deletes it. The second delete is a no-op.
func (s *CaptchaService) Verify(ctx context.Context, captchaID string, clicks []core.ClickPosition) (bool, error) {
	challenge, err := s.Fetch(ctx, captchaID)
	if err != nil {
		if errors.Is(err, core.ErrChallengeNotFound) {
			s.logger.Warn("verify failed: challenge not found",
				zap.String("captcha_id", captchaID))
			return false, nil
		}
		return false, err
	}

	if len(clicks) != len(challenge.Targets) {
		s.logger.Info("verify failed: click count mismatch",
			zap.String("captcha_id", captchaID),
			zap.Int("expected", len(challenge.Targets)),
			zap.Int("received", len(clicks)))
		s.discard(ctx, captchaID, false)
		return false, nil
	}

	valid := core.Verify(challenge.Targets, clicks, s.cfg.Tolerance)

	s.discard(ctx, captchaID, valid)

	if valid {
		s.logger.Info("verify succeeded", zap.String("captcha_id", captchaID))
	} else {
		s.logger.Info("verify failed: click positions wrong",
			zap.String("captcha_id", captchaID))
		for i, click := range clicks {
			s.logger.Debug("submitted click",
				zap.Int("index", i+1), zap.Int("x", click.X), zap.Int("y", click.Y))
		}
	}

	return valid, nil
}

// Discard removes a challenge without verifying it. Used by transport
// when a structural client error (wrong click count) burns the challenge
// before matching runs.
func (s *CaptchaService) Discard(ctx context.Context, captchaID string) {
	s.discard(ctx, captchaID, false)
}

func (s *CaptchaService) discard(ctx context.Context, captchaID string, success bool) {
	if _, err := s.store.Delete(ctx, captchaID); err != nil {
		s.logger.Error("failed to delete challenge",
			zap.String("captcha_id", captchaID), zap.Error(err))
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishConsumed(ctx, captchaID, success); err != nil {
			s.logger.Warn("failed to publish consumed event",
				zap.String("captcha_id", captchaID), zap.Error(err))
		}
	}
}
