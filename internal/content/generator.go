// Package content generates and caches keyword-targeted landing copy.
package content

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pawshield/adtrack/internal/model"
)

// titleCase title-cases a keyword for display. A cases.Caser carries
// transform state and is not safe for concurrent use, so every call
// builds its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Generate produces landing-page copy for a keyword and campaign.
// An empty keyword falls back to generic copy.
func Generate(keyword, campaign string) *model.GeneratedContent {
	return &model.GeneratedContent{
		Headline:        headline(keyword),
		Subheadline:     subheadline(keyword, campaign),
		BodyContent:     bodyContent(keyword),
		CTAText:         ctaText(keyword),
		MetaDescription: metaDescription(keyword),
	}
}

// cleanKeyword normalizes a raw utm_term value for display.
func cleanKeyword(keyword string) string {
	return strings.TrimSpace(strings.ReplaceAll(keyword, "+", " "))
}

func headline(keyword string) string {
	k := cleanKeyword(keyword)
	if k == "" {
		return "Welcome to Our Site"
	}
	return fmt.Sprintf("Find the Best %s Solutions", titleCase(k))
}

func subheadline(keyword, campaign string) string {
	if k := cleanKeyword(keyword); k != "" {
		return fmt.Sprintf("You searched for '%s' - We have exactly what you need!", k)
	}
	if campaign != "" {
		return fmt.Sprintf("Special offer from our %s campaign", campaign)
	}
	return "Discover our premium products and services"
}

func ctaText(keyword string) string {
	k := cleanKeyword(keyword)
	lower := strings.ToLower(k)
	switch {
	case k == "":
		return "Learn More"
	case strings.Contains(lower, "buy"):
		return "Buy Now & Save 20%"
	case strings.Contains(lower, "free"):
		return "Start Your Free Trial"
	default:
		return fmt.Sprintf("Get %s Now", titleCase(k))
	}
}

func metaDescription(keyword string) string {
	k := cleanKeyword(keyword)
	if k == "" {
		return "Discover our wide selection of products with expert reviews and competitive prices."
	}
	return fmt.Sprintf("Looking for %s? Find the best deals and expert reviews. Free shipping on orders over $50.", k)
}

func bodyContent(keyword string) string {
	k := cleanKeyword(keyword)
	if k == "" {
		return "<p>Welcome! We're glad you found us.</p>" +
			"<p>Browse our extensive catalog of premium products and services.</p>" +
			"<p>Join thousands of satisfied customers who trust us for their needs.</p>"
	}
	return fmt.Sprintf(
		"<p>Your search for <strong>%s</strong> brought you to the right place!</p>"+
			"<p>We specialize in providing high-quality %s solutions that meet your needs.</p>"+
			"<p>Our customers love our %s products because of our commitment to quality and service.</p>",
		k, k, k)
}
