package transforms

import (
	"fmt"
	"strconv"
	"strings"
)

// Measurements are a performer's body measurements. Any field may be unset.
type Measurements struct {
	BandSize *int
	CupSize  string
	Waist    *int
	Hip      *int
}

// BodyModification is a tattoo or piercing.
type BodyModification struct {
	Location    string
	Description string
}

// URL is a typed external link.
type URL struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// FormatCareer renders "Active 2010–2015". A missing start shows as "????",
// a missing end is left blank. Returns "" when neither year is known.
func FormatCareer(start, end *int) string {
	if !positive(start) && !positive(end) {
		return ""
	}
	from := "????"
	if start != nil {
		from = strconv.Itoa(*start)
	}
	return "Active " + from + "–" + optionalInt(end)
}

// FormatMeasurements renders bust-waist-hip, e.g. "34C-24-36". The bust is
// "??" unless both band and cup are known.
func FormatMeasurements(m Measurements) string {
	hasBust := m.CupSize != "" && positive(m.BandSize)
	if !hasBust && !positive(m.Hip) && !positive(m.Waist) {
		return ""
	}
	bust := "??"
	if hasBust {
		bust = BraSize(m)
	}
	return fmt.Sprintf("%s-%s-%s", bust, optionalInt(m.Waist), optionalInt(m.Hip))
}

// BraSize renders band and cup together, e.g. "34C".
func BraSize(m Measurements) string {
	if m.CupSize == "" || m.BandSize == nil {
		return ""
	}
	return strconv.Itoa(*m.BandSize) + m.CupSize
}

// FormatBodyModification renders "location (description)".
func FormatBodyModification(b BodyModification) string {
	if b.Description == "" {
		return b.Location
	}
	return b.Location + " (" + b.Description + ")"
}

func FormatBodyModifications(mods []BodyModification) string {
	parts := make([]string, 0, len(mods))
	for _, mod := range mods {
		parts = append(parts, FormatBodyModification(mod))
	}
	return strings.Join(parts, ", ")
}

// FormatPendingEdits renders the " (N Pending)" suffix shown after entity
// names with open edits.
func FormatPendingEdits(count int) string {
	if count <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%d Pending)", count)
}

// URLByType returns the first URL of the given type, or "".
func URLByType(urls []URL, urlType string) string {
	for _, u := range urls {
		if u.Type == urlType {
			return u.URL
		}
	}
	return ""
}

func positive(v *int) bool {
	return v != nil && *v > 0
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
