package model

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const testImage = "data:image/png;base64,iVBORw0KGgo="

func TestDecodeImages(t *testing.T) {
	jsonList := `["` + testImage + `","data:image/jpeg;base64,/9j/"]`
	mixedList := `["` + testImage + `","https://example.com/cat.png"]`

	tests := []struct {
		name string
		raw  *string
		want []string
	}{
		{
			name: "nil stores nothing",
			raw:  nil,
			want: []string{},
		},
		{
			name: "empty string stores nothing",
			raw:  strptr(""),
			want: []string{},
		},
		{
			name: "json list",
			raw:  &jsonList,
			want: []string{testImage, "data:image/jpeg;base64,/9j/"},
		},
		{
			name: "non-image entries are filtered",
			raw:  &mixedList,
			want: []string{testImage},
		},
		{
			name: "legacy bare data-URI",
			raw:  strptr(testImage),
			want: []string{testImage},
		},
		{
			name: "garbage degrades to empty",
			raw:  strptr("not json, not an image"),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeImages(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeImages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeImages_RoundTrip(t *testing.T) {
	images := []string{testImage, "data:image/jpeg;base64,/9j/"}

	raw, err := EncodeImages(images)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw == nil {
		t.Fatal("expected encoded payload, got nil")
	}

	if got := DecodeImages(raw); !reflect.DeepEqual(got, images) {
		t.Errorf("round trip = %v, want %v", got, images)
	}
}

func TestEncodeImages_EmptyStoresNil(t *testing.T) {
	raw, err := EncodeImages(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != nil {
		t.Errorf("EncodeImages(nil) = %v, want nil", *raw)
	}
}

func TestValidateImages(t *testing.T) {
	atLimit := testImage + strings.Repeat("A", MaxImageBytes-len(testImage))
	overLimit := atLimit + "A"

	tests := []struct {
		name     string
		images   []string
		maxCount int
		maxBytes int
		wantMsg  string
	}{
		{
			name:     "empty list",
			images:   nil,
			maxCount: MaxImagesPerEntity,
			maxBytes: MaxImageBytes,
		},
		{
			name:     "at the count limit",
			images:   []string{testImage, testImage, testImage, testImage},
			maxCount: MaxImagesPerEntity,
			maxBytes: MaxImageBytes,
		},
		{
			name:     "over the count limit",
			images:   []string{testImage, testImage, testImage, testImage, testImage},
			maxCount: MaxImagesPerEntity,
			maxBytes: MaxImageBytes,
			wantMsg:  "You can attach up to 4 images.",
		},
		{
			name:     "single image slots say so",
			images:   []string{testImage, testImage},
			maxCount: 1,
			maxBytes: MaxImageBytes,
			wantMsg:  "Only 1 image is allowed.",
		},
		{
			name:     "exactly at the byte ceiling",
			images:   []string{atLimit},
			maxCount: MaxImagesPerEntity,
			maxBytes: MaxImageBytes,
		},
		{
			name:     "one byte over the ceiling",
			images:   []string{overLimit},
			maxCount: MaxImagesPerEntity,
			maxBytes: MaxImageBytes,
			wantMsg:  "Each image must be smaller than 2MB.",
		},
		{
			name:     "missing data-URI marker",
			images:   []string{"https://example.com/cat.png"},
			maxCount: MaxImagesPerEntity,
			maxBytes: MaxImageBytes,
			wantMsg:  "Images must be uploaded as embedded image data.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImages(tt.images, tt.maxCount, tt.maxBytes)

			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if err == nil {
				t.Fatalf("expected %q, got nil", tt.wantMsg)
			}
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want a ValidationError", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantMsg)
			}
		})
	}
}

func strptr(s string) *string { return &s }
