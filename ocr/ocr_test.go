package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/tsawler/tablescan/model"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Alice", "Alice"},
		{"trailing newline", "Alice\n", "Alice"},
		{"inner newline", "Alice\nSmith", "Alice Smith"},
		{"crlf", "Alice\r\nSmith\r\n", "Alice Smith"},
		{"surrounding space", "  42 \n\n", "42"},
		{"decomposed umlaut", "Mu\u0308ller", "M\u00fcller"},
		{"form feed", "Total\n\f", "Total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeanConfidence(t *testing.T) {
	if got := MeanConfidence(nil); got != 0 {
		t.Errorf("MeanConfidence(nil) = %v, want 0", got)
	}
	if got := MeanConfidence([]float64{90, 80, 70}); got != 80 {
		t.Errorf("MeanConfidence = %v, want 80", got)
	}
}

func TestRecognizerFunc(t *testing.T) {
	var seen model.Rect
	var r Recognizer = RecognizerFunc(func(ctx context.Context, region model.Rect) (Result, error) {
		seen = region
		return Result{Text: "x", Confidence: 99}, nil
	})

	region := model.NewRect(4, 4, 42, 22)
	res, err := r.Recognize(context.Background(), region)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if res.Text != "x" || res.Confidence != 99 {
		t.Errorf("Recognize = %+v", res)
	}
	if seen != region {
		t.Errorf("region = %v, want %v", seen, region)
	}
}

func TestRecognizerFuncError(t *testing.T) {
	boom := errors.New("boom")
	r := RecognizerFunc(func(context.Context, model.Rect) (Result, error) {
		return Result{}, boom
	})
	if _, err := r.Recognize(context.Background(), model.Rect{}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestClientIsImageRecognizer(t *testing.T) {
	var _ ImageRecognizer = (*Client)(nil)
}
