package kpcc

import (
	"fmt"
	"time"
)

// AssetNativeType identifies the hosting service of a native video asset.
type AssetNativeType string

const (
	AssetNativeYouTube    AssetNativeType = "YoutubeVideo"
	AssetNativeBrightcove AssetNativeType = "BrightcoveVideo"
	AssetNativeVimeo      AssetNativeType = "VimeoVideo"
)

// UnmarshalText rejects unknown native types.
func (t *AssetNativeType) UnmarshalText(text []byte) error {
	return unmarshalEnum(t, text, "asset native type",
		AssetNativeYouTube, AssetNativeBrightcove, AssetNativeVimeo)
}

// AssetNative is the native video class and id of an asset.
type AssetNative struct {
	ID   string          `json:"id"`
	Type AssetNativeType `json:"type,omitempty"`
}

// AssetSize is one rendition of an image asset.
type AssetSize struct {
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Asset is an image or video attached to content.
type Asset struct {
	ID        int          `json:"id,omitempty"`
	Title     string       `json:"title,omitempty"`
	Caption   string       `json:"caption,omitempty"`
	Owner     string       `json:"owner,omitempty"`
	Native    *AssetNative `json:"native,omitempty"`
	Thumbnail *AssetSize   `json:"thumbnail,omitempty"`
	Small     *AssetSize   `json:"small,omitempty"`
	Large     *AssetSize   `json:"large,omitempty"`
	Full      *AssetSize   `json:"full,omitempty"`
}

// Equal reports whether a and other are the same asset.
func (a Asset) Equal(other Asset) bool {
	return a.ID == other.ID
}

// Audio is an audio file attached to an article, episode or event.
type Audio struct {
	ID                   int       `json:"id,omitempty"`
	Description          string    `json:"description,omitempty"`
	AuxiliaryDescription string    `json:"auxiliary_description,omitempty"`
	URL                  string    `json:"url,omitempty"`
	Byline               string    `json:"byline,omitempty"`
	UploadedAt           Timestamp `json:"uploaded_at,omitzero"`
	Position             int       `json:"position,omitempty"`
	DurationSeconds      float64   `json:"duration,omitempty"`
	FileSize             int       `json:"filesize,omitempty"`
	ArticleObjectKey     string    `json:"article_obj_key,omitempty"`
}

// Duration returns the audio length.
func (a Audio) Duration() time.Duration {
	return time.Duration(a.DurationSeconds * float64(time.Second))
}

// Attribution credits a contributor.
type Attribution struct {
	Name     string `json:"name,omitempty"`
	RoleText string `json:"role_text,omitempty"`
	Role     int    `json:"role,omitempty"`
}

// Tag labels content.
type Tag struct {
	Title string `json:"title,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

// Sponsor underwrites an event.
type Sponsor struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Address is a postal address.
type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

// Location is where an event takes place.
type Location struct {
	Title   string   `json:"title,omitempty"`
	URL     string   `json:"url,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// unmarshalEnum assigns text to dest if it is one of allowed. Empty text
// leaves dest as the zero value.
func unmarshalEnum[E ~string](dest *E, text []byte, what string, allowed ...E) error {
	value := E(text)
	if value == "" {
		*dest = value
		return nil
	}
	for _, candidate := range allowed {
		if value == candidate {
			*dest = value
			return nil
		}
	}
	return fmt.Errorf("%w: unknown %s %q", errSchema, what, string(text))
}
