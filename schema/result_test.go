package schema

import (
	"strings"
	"testing"
)

func TestQualityRank(t *testing.T) {
	ordered := []Quality{Quality4K, Quality1080p, Quality720p, Quality480p, QualitySD}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() <= ordered[i].Rank() {
			t.Errorf("Rank(%v) = %d should be greater than Rank(%v) = %d",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}
	if QualitySD.Rank() != 1 {
		t.Errorf("Rank(SD) = %d, want 1", QualitySD.Rank())
	}
}

func TestIsSeries(t *testing.T) {
	if (Result{Season: 1, Episode: 2}).IsSeries() != true {
		t.Error("season+episode should be series")
	}
	if (Result{Season: 1}).IsSeries() {
		t.Error("season without episode is not series")
	}
	if (Result{}).IsSeries() {
		t.Error("bare result is not series")
	}
}

func TestStreamFromResult(t *testing.T) {
	stream := StreamFromResult(Result{
		Filename:  "Movie.Name.2020.1080p.mkv",
		Locator:   "https://a.example/Movie.Name.2020.1080p.mkv",
		Size:      "1.4 GB",
		Quality:   Quality1080p,
		Languages: []string{"English", "French"},
	})

	if stream.Name != "Mediafeed 1080p" {
		t.Errorf("Name = %q", stream.Name)
	}
	if stream.URL != "https://a.example/Movie.Name.2020.1080p.mkv" {
		t.Errorf("URL = %q", stream.URL)
	}
	for _, part := range []string{"Movie.Name.2020.1080p.mkv", "1.4 GB", "English / French"} {
		if !strings.Contains(stream.Title, part) {
			t.Errorf("Title %q missing %q", stream.Title, part)
		}
	}
}
