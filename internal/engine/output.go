package engine

import "strings"

// MetaData is the passthrough video metadata attached to every Output.
type MetaData struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Channel              string   `json:"channel,omitempty"`
	Uploader             string   `json:"uploader,omitempty"`
	Duration             Number   `json:"duration,omitzero"`
	Thumbnail            string   `json:"thumbnail,omitempty"`
	AgeLimit             Number   `json:"age_limit,omitzero"`
	ChannelID            string   `json:"channel_id,omitempty"`
	Categories           []string `json:"categories,omitempty"`
	DisplayID            string   `json:"display_id,omitempty"`
	ViewCount            Number   `json:"view_count,omitzero"`
	LikeCount            Number   `json:"like_count,omitzero"`
	Description          string   `json:"description,omitempty"`
	ChannelURL           string   `json:"channel_url,omitempty"`
	WebpageURL           string   `json:"webpage_url,omitempty"`
	LiveStatus           string   `json:"live_status,omitempty"`
	UploadDate           string   `json:"upload_date,omitempty"`
	UploaderID           string   `json:"uploader_id,omitempty"`
	OriginalURL          string   `json:"original_url,omitempty"`
	UploaderURL          string   `json:"uploader_url,omitempty"`
	CommentCount         Number   `json:"comment_count,omitzero"`
	DurationString       string   `json:"duration_string,omitempty"`
	ChannelFollowerCount Number   `json:"channel_follower_count,omitzero"`
}

func newMetaData(env *Envelope) MetaData {
	var categories []string
	if len(env.Categories) > 0 {
		categories = append([]string(nil), env.Categories...)
	}
	return MetaData{
		ID:                   env.ID,
		Title:                env.Title,
		Channel:              env.Channel,
		Uploader:             env.Uploader,
		Duration:             env.Duration,
		Thumbnail:            env.Thumbnail,
		AgeLimit:             env.AgeLimit,
		ChannelID:            env.ChannelID,
		Categories:           categories,
		DisplayID:            env.DisplayID,
		ViewCount:            env.ViewCount,
		LikeCount:            env.LikeCount,
		Description:          env.Description,
		ChannelURL:           env.ChannelURL,
		WebpageURL:           env.WebpageURL,
		LiveStatus:           env.LiveStatus,
		UploadDate:           env.UploadDate,
		UploaderID:           env.UploaderID,
		OriginalURL:          env.OriginalURL,
		UploaderURL:          env.UploaderURL,
		CommentCount:         env.CommentCount,
		DurationString:       env.DurationString,
		ChannelFollowerCount: env.ChannelFollowerCount,
	}
}

// Output is the classified result for one video.
type Output struct {
	AudioLowF  NormalizedAudio `json:"AudioLowF"`
	AudioHighF NormalizedAudio `json:"AudioHighF"`
	VideoLowF  NormalizedVideo `json:"VideoLowF"`
	VideoHighF NormalizedVideo `json:"VideoHighF"`

	AudioLowDRC  []ProjectedAudio `json:"AudioLowDRC"`
	AudioHighDRC []ProjectedAudio `json:"AudioHighDRC"`
	AudioLow     []ProjectedAudio `json:"AudioLow"`
	AudioHigh    []ProjectedAudio `json:"AudioHigh"`

	VideoLowHDR  []ProjectedVideo `json:"VideoLowHDR"`
	VideoHighHDR []ProjectedVideo `json:"VideoHighHDR"`
	VideoLow     []ProjectedVideo `json:"VideoLow"`
	VideoHigh    []ProjectedVideo `json:"VideoHigh"`

	ManifestLow  []ProjectedManifest `json:"ManifestLow"`
	ManifestHigh []ProjectedManifest `json:"ManifestHigh"`

	MetaData MetaData `json:"metaData"`
}

// HasAudio reports whether any audio pick was made.
func (o *Output) HasAudio() bool {
	return o != nil && (!o.AudioLowF.IsZero() || !o.AudioHighF.IsZero())
}

// HasVideo reports whether any video pick was made.
func (o *Output) HasVideo() bool {
	return o != nil && (!o.VideoLowF.IsZero() || !o.VideoHighF.IsZero())
}

// ManifestMatching returns the first high-bitrate manifest whose format label
// contains substr, e.g. "720" for a 720p stream.
func (o *Output) ManifestMatching(substr string) (ProjectedManifest, bool) {
	if o == nil || substr == "" {
		return ProjectedManifest{}, false
	}
	for _, m := range o.ManifestHigh {
		if strings.Contains(m.Format, substr) {
			return m, true
		}
	}
	return ProjectedManifest{}, false
}

// VideoMatching returns the first high-filesize video whose format note or
// format label contains substr.
func (o *Output) VideoMatching(substr string) (ProjectedVideo, bool) {
	if o == nil || substr == "" {
		return ProjectedVideo{}, false
	}
	for _, v := range o.VideoHigh {
		if strings.Contains(v.FormatNote, substr) || strings.Contains(v.Format, substr) {
			return v, true
		}
	}
	return ProjectedVideo{}, false
}
