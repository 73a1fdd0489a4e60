package domain

import "fmt"

// Image size tokens understood by the image CDN
const (
	PosterSize   = "w500"
	BackdropSize = "w1280"
	ProfileSize  = "w185"
	LogoSize     = "w92"
)

// DefaultImageBaseURL is the public image CDN
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/"

// Placeholder returns the reference used when an image path is absent
func Placeholder(width, height int) string {
	return fmt.Sprintf("placeholder:%dx%d", width, height)
}

// ImageURL joins base, size token and relative path.
// An empty path yields the placeholder instead.
func ImageURL(base, size, path, placeholder string) string {
	if path == "" {
		return placeholder
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + size + path
}

// PosterURL returns the poster image reference for a movie
func (m Movie) PosterURL(base string) string {
	return ImageURL(base, PosterSize, m.PosterPath, Placeholder(500, 750))
}

// BackdropURL returns the backdrop image reference for a movie
func (m Movie) BackdropURL(base string) string {
	return ImageURL(base, BackdropSize, m.BackdropPath, Placeholder(1280, 720))
}

// ProfileURL returns the profile image reference for a cast member
func (c CastMember) ProfileURL(base string) string {
	return ImageURL(base, ProfileSize, c.ProfilePath, Placeholder(185, 185))
}

// LogoURL returns the logo image reference for a company, empty if none
func (c Company) LogoURL(base string) string {
	return ImageURL(base, LogoSize, c.LogoPath, "")
}
