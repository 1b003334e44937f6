package blocks

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Section backgrounds
const (
	BackgroundDefault     = ""
	BackgroundAlternative = "alternative-colors"
	BackgroundImage       = "image"
)

// Section background features
const (
	FeatureNone    = ""
	FeatureLogo    = "background-logo"
	FeatureMessage = "background-message"
)

// HeaderAttributes configures a header block
type HeaderAttributes struct {
	FullSized          bool   `json:"fullSized"`
	BackgroundImageURL string `json:"backgroundImageURL"`
	BackgroundParallax bool   `json:"backgroundParallax"`
	PhotoCredit        bool   `json:"photoCredit"`
	PhotoCreditText    string `json:"photoCreditText"`
}

// SectionAttributes configures a section block
type SectionAttributes struct {
	HeaderAttributes
	Background        string `json:"background"`
	BackgroundFeature string `json:"backgroundFeature"`
	BackgroundMessage string `json:"backgroundMessage"`
	Horizontal        bool   `json:"horizontal"`
}

// DefaultHeader returns header attributes with every default applied
func DefaultHeader() HeaderAttributes {
	return HeaderAttributes{
		BackgroundParallax: true,
		PhotoCredit:        true,
	}
}

// DefaultSection returns section attributes with every default applied
func DefaultSection() SectionAttributes {
	return SectionAttributes{HeaderAttributes: DefaultHeader()}
}

// ParseHeader decodes header attribute JSON over the defaults and validates it
func ParseHeader(dataJSON string) (HeaderAttributes, error) {
	attrs := DefaultHeader()
	if err := decode(dataJSON, &attrs); err != nil {
		return attrs, err
	}
	if err := attrs.Validate(); err != nil {
		return attrs, err
	}
	return attrs, nil
}

// ParseSection decodes section attribute JSON over the defaults, validates
// it and applies the horizontal layout rules.
func ParseSection(dataJSON string) (SectionAttributes, error) {
	attrs := DefaultSection()
	if err := decode(dataJSON, &attrs); err != nil {
		return attrs, err
	}
	if err := attrs.Validate(); err != nil {
		return attrs, err
	}
	attrs.Normalize()
	return attrs, nil
}

// Normalize drops settings that have no effect in the current layout
func (a *SectionAttributes) Normalize() {
	if a.Horizontal {
		a.FullSized = false
	}
	if a.Background == BackgroundImage {
		a.BackgroundFeature = FeatureNone
	} else {
		a.BackgroundImageURL = ""
	}
}

// Validate checks the header attributes
func (a HeaderAttributes) Validate() error {
	if err := ValidateImageURL(a.BackgroundImageURL); err != nil {
		return err
	}
	return nil
}

// Validate checks the section attributes
func (a SectionAttributes) Validate() error {
	switch a.Background {
	case BackgroundDefault, BackgroundAlternative, BackgroundImage:
	default:
		return fmt.Errorf("%w: unknown background %q", ErrInvalidAttributes, a.Background)
	}

	switch a.BackgroundFeature {
	case FeatureNone, FeatureLogo, FeatureMessage:
	default:
		return fmt.Errorf("%w: unknown background feature %q", ErrInvalidAttributes, a.BackgroundFeature)
	}

	if a.Horizontal {
		if a.Background == BackgroundImage {
			return fmt.Errorf("%w: horizontal sections cannot use an image background", ErrInvalidAttributes)
		}
		if a.BackgroundFeature != FeatureNone {
			return fmt.Errorf("%w: horizontal sections cannot use a background feature", ErrInvalidAttributes)
		}
	}

	return a.HeaderAttributes.Validate()
}

// ShowsLogo reports whether the logo container is rendered
func (a SectionAttributes) ShowsLogo() bool {
	return a.Background != BackgroundImage && a.BackgroundFeature == FeatureLogo
}

// ShowsMessage reports whether the background message grid is rendered
func (a SectionAttributes) ShowsMessage() bool {
	return a.Background != BackgroundImage && a.BackgroundFeature == FeatureMessage && a.BackgroundMessage != ""
}

func decode(dataJSON string, v interface{}) error {
	if strings.TrimSpace(dataJSON) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(dataJSON), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAttributes, err)
	}
	return nil
}

// ValidateImageURL accepts empty, http(s) and site-relative URLs that are
// safe to place inside a CSS url() in a style attribute.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	if strings.ContainsAny(raw, "'\"()\\<> \t\r\n") {
		return fmt.Errorf("%w: background image URL contains forbidden characters", ErrInvalidAttributes)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: background image URL: %v", ErrInvalidAttributes, err)
	}

	switch {
	case u.Scheme == "http" || u.Scheme == "https":
		if u.Host == "" {
			return fmt.Errorf("%w: background image URL has no host", ErrInvalidAttributes)
		}
	case u.Scheme == "" && u.Host == "" && strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//"):
	default:
		return fmt.Errorf("%w: background image URL must be http(s) or site-relative", ErrInvalidAttributes)
	}
	return nil
}
