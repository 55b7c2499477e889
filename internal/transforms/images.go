package transforms

import (
	"fmt"
	"sort"
	"strings"
)

// Orientation is the shape a caller wants to display an image in.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation accepts "portrait" or "landscape" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(strings.ToLower(strings.TrimSpace(s))) {
	case Portrait:
		return Portrait, nil
	case Landscape:
		return Landscape, nil
	default:
		return "", fmt.Errorf("unknown orientation %q", s)
	}
}

// Image describes one stored image of an entity.
type Image struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Matches reports whether img has the shape of o. Square images match
// neither orientation.
func (o Orientation) Matches(img Image) bool {
	switch o {
	case Portrait:
		return img.Height > img.Width
	case Landscape:
		return img.Width > img.Height
	default:
		return false
	}
}

// RankImages orders images best-first for o. Images of the requested shape
// come first; within each group portrait prefers the tallest and landscape
// the widest. Equal images keep their input order. The input slice is left
// untouched.
func RankImages(images []Image, o Orientation) []Image {
	ranked := make([]Image, len(images))
	copy(ranked, images)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		am, bm := o.Matches(a), o.Matches(b)
		if am != bm {
			return am
		}
		switch o {
		case Portrait:
			return a.Height > b.Height
		case Landscape:
			return a.Width > b.Width
		}
		return false
	})
	return ranked
}

// PickImage returns the URL of the best image for o, or "" if there are none.
func PickImage(images []Image, o Orientation) string {
	if len(images) == 0 {
		return ""
	}
	return RankImages(images, o)[0].URL
}
