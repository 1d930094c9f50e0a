package content

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate_WithKeyword(t *testing.T) {
	got := Generate("dog+insurance", "summer_sale")

	if got.Headline != "Find the Best Dog Insurance Solutions" {
		t.Errorf("headline: got %q", got.Headline)
	}
	if got.Subheadline != "You searched for 'dog insurance' - We have exactly what you need!" {
		t.Errorf("subheadline: got %q", got.Subheadline)
	}
	if got.CTAText != "Get Dog Insurance Now" {
		t.Errorf("cta: got %q", got.CTAText)
	}
	if !strings.Contains(got.BodyContent, "<strong>dog insurance</strong>") {
		t.Errorf("body should embed cleaned keyword, got %q", got.BodyContent)
	}
	if !strings.Contains(got.MetaDescription, "dog insurance") {
		t.Errorf("meta description should embed keyword, got %q", got.MetaDescription)
	}
}

func TestGenerate_CTABranches(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"buy pet insurance", "Buy Now & Save 20%"},
		{"free quote puppy cover", "Start Your Free Trial"},
		{"senior cat insurance", "Get Senior Cat Insurance Now"},
		{"", "Learn More"},
	}

	for _, test := range tests {
		if got := Generate(test.keyword, "").CTAText; got != test.want {
			t.Errorf("keyword %q: expected CTA %q, got %q", test.keyword, test.want, got)
		}
	}
}

func TestGenerate_NoKeyword(t *testing.T) {
	got := Generate("", "")

	if got.Headline != "Welcome to Our Site" {
		t.Errorf("headline: got %q", got.Headline)
	}
	if got.Subheadline != "Discover our premium products and services" {
		t.Errorf("subheadline: got %q", got.Subheadline)
	}
	if !strings.Contains(got.BodyContent, "Welcome!") {
		t.Errorf("body: got %q", got.BodyContent)
	}
}

func TestGenerate_NoKeywordWithCampaign(t *testing.T) {
	got := Generate("", "black_friday")
	if got.Subheadline != "Special offer from our black_friday campaign" {
		t.Errorf("subheadline: got %q", got.Subheadline)
	}
}

// Generate runs on every landing hit, so concurrent calls must produce
// stable output. Run with -race.
func TestGenerate_Concurrent(t *testing.T) {
	want := Generate("pet insurance quotes", "spring")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := Generate("pet insurance quotes", "spring")
				if got.Headline != want.Headline || got.CTAText != want.CTAText {
					t.Errorf("concurrent call diverged: headline %q cta %q", got.Headline, got.CTAText)
					return
				}
			}
		}()
	}
	wg.Wait()
}
