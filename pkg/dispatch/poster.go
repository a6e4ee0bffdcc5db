package dispatch

import "github.com/Abraxas-365/relaycrm/pkg/errx"

// Maximum overlay text lengths for a generated poster. Longer values are
// truncated, not rejected.
const (
	PosterTitleMaxLen = 75
	PosterNoteMaxLen  = 255
)

// PosterDraft collects the pieces of a generated poster before they are
// committed to a composition. A partial draft never reaches the composition:
// Commit writes the whole bundle atomically or not at all.
type PosterDraft struct {
	Icon       *ImageAsset
	Background *ImageAsset
	Title      string
	Note       string
}

// SetIcon sets the required icon image.
func (d *PosterDraft) SetIcon(name, contentType string, data []byte) {
	d.Icon = &ImageAsset{Name: name, ContentType: contentType, Data: data}
}

// SetBackground sets the optional background image.
func (d *PosterDraft) SetBackground(name, contentType string, data []byte) {
	d.Background = &ImageAsset{Name: name, ContentType: contentType, Data: data}
}

// Commit validates the draft and installs it as the composition's attachment,
// replacing any previously chosen file. The icon is a hard requirement;
// title and note are truncated to their maximum lengths.
func (d *PosterDraft) Commit(c *Composition) *errx.Error {
	if d.Icon == nil || len(d.Icon.Data) == 0 {
		return dispatchErrors.New(ErrPosterIconMissing)
	}

	c.attachment = AttachmentPoster{
		Icon:       *d.Icon,
		Background: d.Background,
		Title:      truncateRunes(d.Title, PosterTitleMaxLen),
		Note:       truncateRunes(d.Note, PosterNoteMaxLen),
	}
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
