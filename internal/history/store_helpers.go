package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// timeLayout is fixed width so resolved_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = `id, request_id, query, url, video_id, title, channel,
    duration_seconds, audio_pick, video_pick, format_count, resolved_at`

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry       Entry
		videoID     sql.NullString
		title       sql.NullString
		channel     sql.NullString
		duration    sql.NullFloat64
		audioPick   sql.NullString
		videoPick   sql.NullString
		resolvedRaw string
	)
	err := scanner.Scan(
		&entry.ID,
		&entry.RequestID,
		&entry.Query,
		&entry.URL,
		&videoID,
		&title,
		&channel,
		&duration,
		&audioPick,
		&videoPick,
		&entry.FormatCount,
		&resolvedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, fmt.Errorf("scan lookup: %w", err)
	}
	entry.VideoID = videoID.String
	entry.Title = title.String
	entry.Channel = channel.String
	entry.DurationSeconds = duration.Float64
	entry.AudioPick = audioPick.String
	entry.VideoPick = videoPick.String
	if resolved, err := parseTimeString(resolvedRaw); err == nil {
		entry.ResolvedAt = resolved
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
