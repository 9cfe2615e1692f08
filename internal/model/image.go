package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Images are embedded in the row as a JSON-encoded list of data-URI strings.
// Older rows may hold a single bare data-URI instead of a list.
const (
	// ImagePrefix is the marker every stored image payload must carry.
	ImagePrefix = "data:image/"

	MaxImagesPerEntity = 4
	MaxImageBytes      = 2 * 1024 * 1024
	MaxAvatarBytes     = 1 * 1024 * 1024
)

// DecodeImages parses a stored image payload into a normalized list.
// Anything that does not look like an embedded image is filtered out, and
// decoding failures degrade to an empty list rather than an error. A bare
// data-URI value decodes to a one-element list.
func DecodeImages(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(*raw), &list); err != nil {
		if strings.HasPrefix(*raw, ImagePrefix) {
			return []string{*raw}
		}
		return []string{}
	}

	images := make([]string, 0, len(list))
	for _, img := range list {
		if strings.HasPrefix(img, ImagePrefix) {
			images = append(images, img)
		}
	}
	return images
}

// EncodeImages serializes a validated image list for storage. An empty list
// stores NULL.
func EncodeImages(images []string) (*string, error) {
	if len(images) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	s := string(b)
	return &s, nil
}

// ValidateImages enforces the shared count, marker and size rules.
func ValidateImages(images []string, maxCount, maxBytes int) error {
	if len(images) > maxCount {
		if maxCount == 1 {
			return Invalid("Only 1 image is allowed.")
		}
		return Invalid(fmt.Sprintf("You can attach up to %d images.", maxCount))
	}
	for _, img := range images {
		if !strings.HasPrefix(img, ImagePrefix) {
			return Invalid("Images must be uploaded as embedded image data.")
		}
		if len(img) > maxBytes {
			return Invalid(fmt.Sprintf("Each image must be smaller than %dMB.", maxBytes/(1024*1024)))
		}
	}
	return nil
}
