package engine

// ProjectedAudio is the narrow audio record carried in bucket lists.
type ProjectedAudio struct {
	Filesize   Number    `json:"filesize,omitzero"`
	FilesizeP  HumanSize `json:"filesizeP,omitzero"`
	ASR        Number    `json:"asr,omitzero"`
	FormatNote string    `json:"format_note,omitempty"`
	TBR        Number    `json:"tbr,omitzero"`
	URL        string    `json:"url"`
	Ext        string    `json:"ext,omitempty"`
	ACodec     string    `json:"acodec,omitempty"`
	Container  string    `json:"container,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	AudioExt   string    `json:"audio_ext,omitempty"`
	ABR        Number    `json:"abr,omitzero"`
	Format     string    `json:"format,omitempty"`
}

// ProjectedVideo is the narrow video record carried in bucket lists.
type ProjectedVideo struct {
	Filesize     Number    `json:"filesize,omitzero"`
	FilesizeP    HumanSize `json:"filesizeP,omitzero"`
	FormatNote   string    `json:"format_note,omitempty"`
	FPS          Number    `json:"fps,omitzero"`
	Height       Number    `json:"height,omitzero"`
	Width        Number    `json:"width,omitzero"`
	TBR          Number    `json:"tbr,omitzero"`
	URL          string    `json:"url"`
	Ext          string    `json:"ext,omitempty"`
	VCodec       string    `json:"vcodec,omitempty"`
	DynamicRange string    `json:"dynamic_range,omitempty"`
	Container    string    `json:"container,omitempty"`
	Resolution   string    `json:"resolution,omitempty"`
	AspectRatio  Number    `json:"aspect_ratio,omitzero"`
	VideoExt     string    `json:"video_ext,omitempty"`
	VBR          Number    `json:"vbr,omitzero"`
	Format       string    `json:"format,omitempty"`
}

// ProjectedManifest is the record carried in manifest bucket lists.
type ProjectedManifest struct {
	URL          string `json:"url"`
	ManifestURL  string `json:"manifest_url,omitempty"`
	TBR          Number `json:"tbr,omitzero"`
	Ext          string `json:"ext,omitempty"`
	FPS          Number `json:"fps,omitzero"`
	Width        Number `json:"width,omitzero"`
	Height       Number `json:"height,omitzero"`
	VCodec       string `json:"vcodec,omitempty"`
	DynamicRange string `json:"dynamic_range,omitempty"`
	AspectRatio  Number `json:"aspect_ratio,omitzero"`
	VideoExt     string `json:"video_ext,omitempty"`
	VBR          Number `json:"vbr,omitzero"`
	Format       string `json:"format,omitempty"`
}

// NormalizedAudio is a scalar audio pick: the projected fields plus the
// delivery details a downloader needs. Extractor bookkeeping such as
// format_id, source_preference and has_drm is dropped.
type NormalizedAudio struct {
	ProjectedAudio
	Protocol       string `json:"protocol,omitempty"`
	AudioChannels  Number `json:"audio_channels,omitzero"`
	Language       string `json:"language,omitempty"`
	Quality        Number `json:"quality,omitzero"`
	FilesizeApprox Number `json:"filesize_approx,omitzero"`
}

// IsZero reports whether no pick was made.
func (a NormalizedAudio) IsZero() bool {
	return a.URL == "" && !a.Filesize.Valid
}

// NormalizedVideo is a scalar video pick.
type NormalizedVideo struct {
	ProjectedVideo
	Protocol       string `json:"protocol,omitempty"`
	ACodec         string `json:"acodec,omitempty"`
	Quality        Number `json:"quality,omitzero"`
	FilesizeApprox Number `json:"filesize_approx,omitzero"`
}

// IsZero reports whether no pick was made.
func (v NormalizedVideo) IsZero() bool {
	return v.URL == "" && !v.Filesize.Valid
}

func projectAudio(f *Format) ProjectedAudio {
	return ProjectedAudio{
		Filesize:   f.Filesize,
		FilesizeP:  sizeOf(f.Filesize),
		ASR:        f.ASR,
		FormatNote: f.FormatNote,
		TBR:        f.TBR,
		URL:        f.URL,
		Ext:        f.Ext,
		ACodec:     f.ACodec,
		Container:  f.Container,
		Resolution: f.Resolution,
		AudioExt:   f.AudioExt,
		ABR:        f.ABR,
		Format:     f.Format,
	}
}

func projectVideo(f *Format) ProjectedVideo {
	return ProjectedVideo{
		Filesize:     f.Filesize,
		FilesizeP:    sizeOf(f.Filesize),
		FormatNote:   f.FormatNote,
		FPS:          f.FPS,
		Height:       f.Height,
		Width:        f.Width,
		TBR:          f.TBR,
		URL:          f.URL,
		Ext:          f.Ext,
		VCodec:       f.VCodec,
		DynamicRange: f.DynamicRange,
		Container:    f.Container,
		Resolution:   f.Resolution,
		AspectRatio:  f.AspectRatio,
		VideoExt:     f.VideoExt,
		VBR:          f.VBR,
		Format:       f.Format,
	}
}

func projectManifest(f *Format) ProjectedManifest {
	return ProjectedManifest{
		URL:          f.URL,
		ManifestURL:  f.ManifestURL,
		TBR:          f.TBR,
		Ext:          f.Ext,
		FPS:          f.FPS,
		Width:        f.Width,
		Height:       f.Height,
		VCodec:       f.VCodec,
		DynamicRange: f.DynamicRange,
		AspectRatio:  f.AspectRatio,
		VideoExt:     f.VideoExt,
		VBR:          f.VBR,
		Format:       f.Format,
	}
}

func normalizeAudio(f *Format) NormalizedAudio {
	if f == nil {
		return NormalizedAudio{}
	}
	return NormalizedAudio{
		ProjectedAudio: projectAudio(f),
		Protocol:       f.Protocol,
		AudioChannels:  f.AudioChannels,
		Language:       f.Language,
		Quality:        f.Quality,
		FilesizeApprox: f.FilesizeApprox,
	}
}

func normalizeVideo(f *Format) NormalizedVideo {
	if f == nil {
		return NormalizedVideo{}
	}
	return NormalizedVideo{
		ProjectedVideo: projectVideo(f),
		Protocol:       f.Protocol,
		ACodec:         f.ACodec,
		Quality:        f.Quality,
		FilesizeApprox: f.FilesizeApprox,
	}
}

// projectAudioList projects bucket values in key order. With plainOnly set,
// DRC and HDR tagged entries are dropped even when they won their key.
func projectAudioList(b *bucket, plainOnly bool) []ProjectedAudio {
	out := make([]ProjectedAudio, 0, b.len())
	for _, f := range b.values() {
		if plainOnly && hasVariantTag(f.FormatNote) {
			continue
		}
		out = append(out, projectAudio(f))
	}
	return out
}

func projectVideoList(b *bucket, plainOnly bool) []ProjectedVideo {
	out := make([]ProjectedVideo, 0, b.len())
	for _, f := range b.values() {
		if plainOnly && hasVariantTag(f.FormatNote) {
			continue
		}
		out = append(out, projectVideo(f))
	}
	return out
}

func projectManifestList(b *bucket) []ProjectedManifest {
	out := make([]ProjectedManifest, 0, b.len())
	for _, f := range b.values() {
		out = append(out, projectManifest(f))
	}
	return out
}
