package engine

import (
	"fmt"
	"strings"
)

const (
	tagDRC = "DRC"
	tagHDR = "HDR"
)

// excludedNotes never take part in bucketing.
var excludedNotes = map[string]struct{}{
	"storyboard": {},
	"Default":    {},
}

func isExcludedNote(note string) bool {
	_, ok := excludedNotes[note]
	return ok
}

// isManifestProtocol reports whether the descriptor is delivered through a
// segmented HLS manifest rather than as a single file.
func isManifestProtocol(protocol string) bool {
	return strings.Contains(protocol, "m3u8")
}

// isVideoNote treats resolution-style labels ("720p", "1080p60 HDR") as video.
func isVideoNote(note string) bool {
	return strings.Contains(note, "p")
}

func hasVariantTag(note string) bool {
	return strings.Contains(note, tagDRC) || strings.Contains(note, tagHDR)
}

type buckets struct {
	audioLow, audioHigh       *bucket
	videoLow, videoHigh       *bucket
	manifestLow, manifestHigh *bucket
	audioLowDRC, audioHighDRC *bucket
	videoLowHDR, videoHighHDR *bucket
}

func newBuckets() *buckets {
	return &buckets{
		audioLow:     newBucket(),
		audioHigh:    newBucket(),
		videoLow:     newBucket(),
		videoHigh:    newBucket(),
		manifestLow:  newBucket(),
		manifestHigh: newBucket(),
		audioLowDRC:  newBucket(),
		audioHighDRC: newBucket(),
		videoLowHDR:  newBucket(),
		videoHighHDR: newBucket(),
	}
}

func (b *buckets) add(f *Format) {
	note := f.FormatNote
	excluded := isExcludedNote(note)

	// Manifest bucketing is independent of the audio/video pass below.
	if !excluded && isManifestProtocol(f.Protocol) && f.VBR.Valid {
		b.manifestLow.keepLower(f.Resolution, f, byVBR)
		b.manifestHigh.keepHigher(f.Resolution, f, byVBR)
	}

	if excluded || !f.Filesize.Valid {
		return
	}

	switch {
	case strings.Contains(note, tagDRC):
		// Seeding by resolution runs for video-shaped DRC notes too.
		b.audioLowDRC.seed(f.Resolution, b.audioLow)
		b.audioHighDRC.seed(f.Resolution, b.audioHigh)
		b.audioLowDRC.set(note, f)
		b.audioHighDRC.set(note, f)
	case strings.Contains(note, tagHDR):
		b.videoLowHDR.keepLower(note, f, byFilesize)
		b.videoHighHDR.keepHigher(note, f, byFilesize)
	}

	if isVideoNote(note) {
		b.videoLow.keepLower(note, f, byFilesize)
		b.videoHigh.keepHigher(note, f, byFilesize)
		return
	}
	b.audioLow.keepLower(note, f, byFilesize)
	b.audioHigh.keepHigher(note, f, byFilesize)
}

// scalarPicks walks the low bucket once. Each entry updates at most one slot:
// the low slot wins when both conditions hold, so a single-entry bucket
// leaves high empty.
func scalarPicks(low *bucket) (lowest, highest *Format) {
	for _, f := range low.values() {
		if !f.Filesize.Valid {
			continue
		}
		switch {
		case lowest == nil || f.Filesize.Value < lowest.Filesize.Value:
			lowest = f
		case highest == nil || f.Filesize.Value > highest.Filesize.Value:
			highest = f
		}
	}
	return lowest, highest
}

// Classify reduces an envelope's formats to the engine output. It performs no
// I/O and never mutates env.
func Classify(env *Envelope) (*Output, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: nil envelope", ErrMalformedInput)
	}
	if env.Formats == nil {
		return nil, fmt.Errorf("%w: formats missing", ErrMalformedInput)
	}

	b := newBuckets()
	for i := range env.Formats {
		b.add(&env.Formats[i])
	}

	audioLowF, audioHighF := scalarPicks(b.audioLow)
	videoLowF, videoHighF := scalarPicks(b.videoLow)

	return &Output{
		AudioLowF:    normalizeAudio(audioLowF),
		AudioHighF:   normalizeAudio(audioHighF),
		VideoLowF:    normalizeVideo(videoLowF),
		VideoHighF:   normalizeVideo(videoHighF),
		AudioLowDRC:  projectAudioList(b.audioLowDRC, false),
		AudioHighDRC: projectAudioList(b.audioHighDRC, false),
		AudioLow:     projectAudioList(b.audioLow, true),
		AudioHigh:    projectAudioList(b.audioHigh, true),
		VideoLowHDR:  projectVideoList(b.videoLowHDR, false),
		VideoHighHDR: projectVideoList(b.videoHighHDR, false),
		VideoLow:     projectVideoList(b.videoLow, true),
		VideoHigh:    projectVideoList(b.videoHigh, true),
		ManifestLow:  projectManifestList(b.manifestLow),
		ManifestHigh: projectManifestList(b.manifestHigh),
		MetaData:     newMetaData(env),
	}, nil
}

// ClassifyJSON parses raw extractor output and classifies it.
func ClassifyJSON(data []byte) (*Output, error) {
	env, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Classify(env)
}
