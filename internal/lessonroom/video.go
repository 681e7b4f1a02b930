package lessonroom

import "fmt"

// VideoState is the playback state of the embedded player.
type VideoState int

const (
	VideoNotStarted VideoState = iota
	VideoPlaying
	VideoErrored
)

func (v VideoState) String() string {
	switch v {
	case VideoNotStarted:
		return "not started"
	case VideoPlaying:
		return "playing"
	case VideoErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Video tracks the player for a video lesson. EmbedKey changes on every
// retry so the player is rebuilt instead of reused.
type Video struct {
	state    VideoState
	embedKey int
}

// State returns the playback state.
func (v *Video) State() VideoState { return v.state }

// EmbedKey identifies the current player instance.
func (v *Video) EmbedKey() int { return v.embedKey }

// Play starts playback from the not-started state.
func (v *Video) Play() bool {
	if v.state != VideoNotStarted {
		return false
	}
	v.state = VideoPlaying
	return true
}

// ForceError switches a playing video to the fallback state.
func (v *Video) ForceError() bool {
	if v.state != VideoPlaying {
		return false
	}
	v.state = VideoErrored
	return true
}

// Retry replaces an errored player with a fresh instance.
func (v *Video) Retry() bool {
	if v.state != VideoErrored {
		return false
	}
	v.embedKey++
	v.state = VideoPlaying
	return true
}

// PlayerURL returns the embed URL for the current player instance.
func (v *Video) PlayerURL(embedURL string) string {
	return fmt.Sprintf("%s?autoplay=1&modestbranding=1&rel=0&instance=%d", embedURL, v.embedKey)
}
