package generation

import (
	"strings"
	"testing"

	"github.com/M1DES1/aigenimgtovid/internal/models"
)

func TestEnrichPrompt(t *testing.T) {
	cases := []struct {
		prompt string
		style  string
		motion int
		want   string
	}{
		{"A cat dancing", "realistic", 3, "A cat dancing. Style: Realistic. Motion intensity: 3/10."},
		{"A cat dancing.", "", 0, "A cat dancing. Style: Default. Motion intensity: 5/10."},
		{"Sunset", "noir", 42, "Sunset. Style: Noir. Motion intensity: 10/10."},
	}
	for _, tc := range cases {
		if got := EnrichPrompt(tc.prompt, tc.style, tc.motion); got != tc.want {
			t.Fatalf("expected %q got %q", tc.want, got)
		}
	}
}

func TestSuggestPrompt(t *testing.T) {
	if got := SuggestPrompt("/tmp/beach_day.png"); got != "Animation of beach day in motion." {
		t.Fatalf("unexpected suggestion %q", got)
	}
	if got := SuggestPrompt(""); got != "Animation of the image in motion." {
		t.Fatalf("unexpected suggestion %q", got)
	}
}

func TestPromptExcerptInHistory(t *testing.T) {
	h := NewHistory(2)
	long := strings.Repeat("a", 50)
	h.Add(models.GenerationRecord{ID: "1", PromptExcerpt: models.PromptExcerpt(long)})
	h.Add(models.GenerationRecord{ID: "2"})
	h.Add(models.GenerationRecord{ID: "3"})

	records := h.List()
	if len(records) != 2 || records[0].ID != "3" || records[1].ID != "2" {
		t.Fatalf("unexpected records %+v", records)
	}
	if got := models.PromptExcerpt(long); got != strings.Repeat("a", 40)+"..." {
		t.Fatalf("unexpected excerpt %q", got)
	}
}
