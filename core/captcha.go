package core

import "time"

// Target is a single clickable character region on the captcha image.
// X and Y are the center of the rendered glyph; Width and Height are the
// rendered bounding-box extents after rotation and drive the hit radius.
type Target struct {
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FontSize int    `json:"font_size"`
	Rotation int    `json:"rotation"`
}

// Challenge is one issued captcha instance. Targets holds only the
// characters the user must click, in required click order. The struct is
// immutable after creation and lives in the store until verified once or
// expired.
type Challenge struct {
	CaptchaID   string    `json:"captcha_id"`
	ImageData   string    `json:"image_data"`
	Targets     []Target  `json:"targets"`
	Prompt      string    `json:"prompt"`
	TargetCount int       `json:"target_count"`
	CreatedAt   time.Time `json:"created_at"`
	ImageWidth  int       `json:"image_width"`
	ImageHeight int       `json:"image_height"`
}

// ClickPosition is a single user click, supplied only within a verify
// request and never persisted.
type ClickPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ExpiresAt returns the moment the challenge falls out of the store.
func (c *Challenge) ExpiresAt(ttl time.Duration) time.Time {
	return c.CreatedAt.Add(ttl)
}
