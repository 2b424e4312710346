package capacity

import (
	"testing"

	"nstego/pkg/config"
)

func TestCheckImageDimensions(t *testing.T) {
	limits := config.DefaultLimits()

	if err := CheckImageDimensions(100, 100, limits); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckImageDimensions(0, 100, limits); err == nil {
		t.Fatal("expected an error for a zero width")
	}
	if err := CheckImageDimensions(-5, 100, limits); err == nil {
		t.Fatal("expected an error for a negative width")
	}
	if err := CheckImageDimensions(limits.MaxImageDimension+1, 1, limits); err == nil {
		t.Fatal("expected an error for an over-wide image")
	}
}

func TestCheckImageDimensionsPixelCount(t *testing.T) {
	limits := config.Limits{MaxImageDimension: 100}
	// both sides at the maximum put the product exactly at MaxImageDimension^2,
	// which is still allowed
	if err := CheckImageDimensions(100, 100, limits); err != nil {
		t.Fatalf("unexpected error at the exact boundary: %v", err)
	}
}

func TestEstimatePostFramingSize(t *testing.T) {
	textEstimate := EstimatePostFramingSize(100, true, false)
	binaryEstimate := EstimatePostFramingSize(100, false, false)
	if binaryEstimate <= textEstimate {
		t.Fatalf("binary ratio (0.7) should estimate larger than text ratio (0.6): got text=%d binary=%d", textEstimate, binaryEstimate)
	}

	withEncryption := EstimatePostFramingSize(100, true, true)
	if withEncryption != textEstimate+32 {
		t.Fatalf("got %d, want %d", withEncryption, textEstimate+32)
	}
}

func TestCheckEstimatedCapacityStrict(t *testing.T) {
	if err := CheckEstimatedCapacity(1000, 10, true); err == nil {
		t.Fatal("expected a capacity error in strict mode")
	}
	if err := CheckEstimatedCapacity(1000, 10, false); err != nil {
		t.Fatalf("non-strict mode should not error: %v", err)
	}
	if err := CheckEstimatedCapacity(10, 1000, true); err != nil {
		t.Fatalf("unexpected error when estimate fits: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	limits := config.DefaultLimits()

	cases := map[string]string{
		"../../etc/passwd":    "etcpasswd",
		`bad"name<>chars.txt`: "badnamechars.txt",
		"...leading-dots.txt": "leading-dots.txt",
		"":                    "file",
		"...":                 "file",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in, limits); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilenameTruncatesPreservingExtension(t *testing.T) {
	limits := config.Limits{MaxFilenameLength: 10}
	name := "a_very_long_filename_indeed.txt"
	got := SanitizeFilename(name, limits)
	if len(got) > 10 {
		t.Fatalf("got length %d, want <= 10", len(got))
	}
	if got[len(got)-4:] != ".txt" {
		t.Fatalf("expected extension preserved, got %q", got)
	}
}
