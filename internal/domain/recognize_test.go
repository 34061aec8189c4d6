package domain

import "testing"

func TestRecognize(t *testing.T) {
	t.Parallel()

	criteria := RecognitionCriteria{MinCharCountNoSpaces: 1000, MinImageCount: 3}

	cases := []struct {
		name    string
		metrics ContentMetrics
		want    bool
	}{
		{"both thresholds met", ContentMetrics{CharCountNoSpaces: 1200, ImageCount: 4}, true},
		{"exactly at thresholds", ContentMetrics{CharCountNoSpaces: 1000, ImageCount: 3}, true},
		{"char threshold missed despite image surplus", ContentMetrics{CharCountNoSpaces: 999, ImageCount: 5}, false},
		{"image threshold missed despite char surplus", ContentMetrics{CharCountNoSpaces: 5000, ImageCount: 2}, false},
		{"both missed", ContentMetrics{CharCountNoSpaces: 0, ImageCount: 0}, false},
	}

	for _, tc := range cases {
		if got := Recognize(tc.metrics, criteria); got != tc.want {
			t.Errorf("%s: Recognize(%+v) = %v, want %v", tc.name, tc.metrics, got, tc.want)
		}
	}
}

func TestRecognizeMonotonic(t *testing.T) {
	t.Parallel()

	criteria := RecognitionCriteria{MinCharCountNoSpaces: 100, MinImageCount: 2}

	for chars := 0; chars < 200; chars += 10 {
		for images := 0; images < 6; images++ {
			base := Recognize(ContentMetrics{CharCountNoSpaces: chars, ImageCount: images}, criteria)
			moreChars := Recognize(ContentMetrics{CharCountNoSpaces: chars + 1, ImageCount: images}, criteria)
			moreImages := Recognize(ContentMetrics{CharCountNoSpaces: chars, ImageCount: images + 1}, criteria)
			if base && !moreChars {
				t.Fatalf("adding a char flipped verdict to false at chars=%d images=%d", chars, images)
			}
			if base && !moreImages {
				t.Fatalf("adding an image flipped verdict to false at chars=%d images=%d", chars, images)
			}
		}
	}
}

func TestRecognizeZeroCriteria(t *testing.T) {
	t.Parallel()

	if !Recognize(ContentMetrics{}, RecognitionCriteria{}) {
		t.Fatal("zero criteria should recognize empty metrics")
	}
}
