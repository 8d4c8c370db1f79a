package starship

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/whispers/pkg/cache"
	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/feed"
	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

const ssTestSource = "http://localhost:3000/api/posts"

// ssWriteSnapshot saves ws as the cached snapshot for ssTestSource.
func ssWriteSnapshot(t *testing.T, ws []whisper.Whisper) *cache.Store {
	t.Helper()
	store, err := cache.NewStore(cache.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := feed.SaveSnapshot(store, ssTestSource, ws); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	return store
}

func ssFixture(now time.Time) []whisper.Whisper {
	return []whisper.Whisper{
		{ID: "a", Content: "older thought", Date: now.Add(-48 * time.Hour), Icon: "leaf"},
		{ID: "b", Content: "the moon\nis a night light", Date: now.Add(-5 * time.Minute), Icon: "moon"},
		{ID: "c", Content: "middle", Date: now.Add(-3 * time.Hour)},
	}
}

// --- Render ---

func TestRenderAllSegmentsEnabled(t *testing.T) {
	now := time.Now()
	store := ssWriteSnapshot(t, ssFixture(now))

	cfg := DefaultConfig(store, ssTestSource)
	cfg.MaxWidth = 200
	cfg.Now = func() time.Time { return now }
	result := Render(cfg)
	if result == "" {
		t.Fatal("expected non-empty render, got empty")
	}

	stripped := ansi.Strip(result)
	for _, want := range []string{"☾ the moon is a night light", "(5m ago)", "3 whispers", "just now"} {
		if !strings.Contains(stripped, want) {
			t.Errorf("expected %q in output, got: %s", want, stripped)
		}
	}
	if strings.Contains(stripped, "older thought") {
		t.Errorf("only the newest whisper should be shown, got: %s", stripped)
	}
}

func TestRenderNoCachedData(t *testing.T) {
	store, err := cache.NewStore(cache.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if got := Render(DefaultConfig(store, ssTestSource)); got != "" {
		t.Errorf("expected empty render with no snapshot, got: %q", got)
	}
}

func TestRenderNilCache(t *testing.T) {
	if got := Render(DefaultConfig(nil, ssTestSource)); got != "" {
		t.Errorf("expected empty render with no cache, got: %q", got)
	}
}

func TestRenderEmptySnapshot(t *testing.T) {
	store := ssWriteSnapshot(t, []whisper.Whisper{})
	if got := Render(DefaultConfig(store, ssTestSource)); got != "" {
		t.Errorf("expected empty render for empty snapshot, got: %q", got)
	}
}

func TestRenderOtherSourceMisses(t *testing.T) {
	store := ssWriteSnapshot(t, ssFixture(time.Now()))
	if got := Render(DefaultConfig(store, "/tmp/whispers.yaml")); got != "" {
		t.Errorf("snapshot of another source leaked: %q", got)
	}
}

func TestRenderOnlyCountEnabled(t *testing.T) {
	store := ssWriteSnapshot(t, ssFixture(time.Now()))
	result := Render(Config{Cache: store, Source: ssTestSource, ShowCount: true})

	stripped := ansi.Strip(result)
	if stripped != "✉ 3 whispers" {
		t.Errorf("count-only render = %q", stripped)
	}
}

func TestRenderRespectsMaxWidth(t *testing.T) {
	store := ssWriteSnapshot(t, ssFixture(time.Now()))
	cfg := DefaultConfig(store, ssTestSource)
	cfg.MaxWidth = 20

	result := Render(cfg)
	if result == "" {
		t.Fatal("expected at least the first segment")
	}
	if w := components.VisibleLen(result); w > 20 {
		t.Errorf("visible width %d exceeds 20, output: %s", w, ansi.Strip(result))
	}
}

// --- Segments ---

func TestCountSegmentSingular(t *testing.T) {
	if got := ssCountSegment(1).Text; got != "1 whisper" {
		t.Errorf("ssCountSegment(1) = %q", got)
	}
	if got := ssCountSegment(4).Text; got != "4 whispers" {
		t.Errorf("ssCountSegment(4) = %q", got)
	}
}

func TestAgeSegmentColorThresholds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := 15 * time.Minute
	tests := []struct {
		age  time.Duration
		want string
	}{
		{time.Minute, ssColorGreen},
		{20 * time.Minute, ssColorYellow},
		{2 * time.Hour, ssColorRed},
	}
	for _, tt := range tests {
		seg := ssAgeSegment(now.Add(-tt.age), now, stale)
		if seg.Color != tt.want {
			t.Errorf("age %v: color = %q, want %q", tt.age, seg.Color, tt.want)
		}
	}
}

func TestLatestSegmentTruncatesLongContent(t *testing.T) {
	now := time.Now()
	ws := []whisper.Whisper{{ID: "x", Content: strings.Repeat("word ", 30), Date: now.Add(-24 * time.Hour)}}
	seg := ssLatestSegment(ws, now)
	if w := components.VisibleLen(seg.Text); w > ssLatestWidth {
		t.Errorf("excerpt width %d exceeds %d", w, ssLatestWidth)
	}
	if !strings.HasSuffix(seg.Text, components.Ellipsis) {
		t.Errorf("expected ellipsis, got %q", seg.Text)
	}
}

// --- Formatting ---

func TestFormatLineJoinsWithSeparator(t *testing.T) {
	segments := []*Segment{
		{Icon: "A", Text: "one"},
		{Icon: "B", Text: "two"},
	}
	result := ssFormatLine(segments, 200)
	if got := ansi.Strip(result); got != "A one │ B two" {
		t.Errorf("ssFormatLine = %q", got)
	}
}

func TestFormatLineDropsSegmentsExceedingMaxWidth(t *testing.T) {
	segments := []*Segment{
		{Icon: "A", Text: "short"},
		{Icon: "B", Text: "medium-text"},
		{Icon: "C", Text: "this-is-very-long-segment-text"},
	}

	// "A short" = 7, " │ " = 3, "B medium-text" = 13 => 23
	stripped := ansi.Strip(ssFormatLine(segments, 25))
	if stripped != "A short │ B medium-text" {
		t.Errorf("ssFormatLine(25) = %q", stripped)
	}
}

func TestFormatLineTruncatesFirstSegment(t *testing.T) {
	segments := []*Segment{{Icon: "A", Text: "a-first-segment-that-is-too-wide"}}
	stripped := ansi.Strip(ssFormatLine(segments, 10))
	if components.VisibleLen(stripped) > 10 {
		t.Errorf("first segment not truncated: %q", stripped)
	}
	if !strings.HasPrefix(stripped, "A a-first") {
		t.Errorf("ssFormatLine(10) = %q", stripped)
	}
}

func TestFormatLineEmptySegments(t *testing.T) {
	if got := ssFormatLine(nil, 60); got != "" {
		t.Errorf("expected empty string for nil segments, got: %q", got)
	}
}

func TestColorize(t *testing.T) {
	result := ssColorize("hello", ssColorGreen)
	if result != ssColorGreen+"hello"+ssAnsiReset {
		t.Errorf("ssColorize = %q", result)
	}
	if got := ssColorize("hello", ""); got != "hello" {
		t.Errorf("expected bare text with empty color, got: %q", got)
	}
}
