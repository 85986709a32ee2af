package core_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/clickcha/core"
)

// The JSON field names are the storage contract: a stored challenge must
// survive a round trip through the key-value store unchanged.
func TestChallengeJSONShape(t *testing.T) {
	challenge := core.Challenge{
		CaptchaID: "abc-123",
		ImageData: "data:image/png;base64,xx",
		Targets: []core.Target{
			{Name: "喝", X: 100, Y: 80, Width: 52, Height: 48, FontSize: 40, Rotation: -12},
		},
		Prompt:      "请依次点击: 喝",
		TargetCount: 1,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ImageWidth:  400,
		ImageHeight: 200,
	}

	data, err := json.Marshal(challenge)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"captcha_id", "image_data", "targets", "prompt",
		"target_count", "created_at", "image_width", "image_height",
	} {
		assert.Contains(t, raw, key)
	}

	var decoded core.Challenge
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, challenge, decoded)
}

func TestChallengeExpiresAt(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	challenge := core.Challenge{CreatedAt: created}

	assert.Equal(t, created.Add(2*time.Minute), challenge.ExpiresAt(2*time.Minute))
}
