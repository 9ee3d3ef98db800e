// Package presenter renders matching streams and the run summary.
package presenter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"stream_finder/internal/domain"
)

const ChannelURLPrefix = "https://twitch.tv/"

// Presenter writes one line per stream to w.
type Presenter struct {
	w io.Writer
}

func New(w io.Writer) *Presenter {
	return &Presenter{w: w}
}

// Present writes entry as a single result line.
func (p *Presenter) Present(entry domain.StreamEntry) error {
	_, err := io.WriteString(p.w, FormatEntry(entry))
	return err
}

// Summary writes the closing line of a search run.
func (p *Presenter) Summary(stats *domain.SearchStats) error {
	_, err := fmt.Fprintf(p.w, "Done! Found %d/%d streams in %s seconds.\n",
		stats.Found, stats.Total, formatSeconds(stats.Duration))
	return err
}

// FormatEntry renders entry as
// "[tags tags | ]lang | url | count viewers | duration | title\n".
func FormatEntry(entry domain.StreamEntry) string {
	var b strings.Builder
	if entry.Tags != "" {
		b.WriteString(FormatTags(entry.Tags))
		b.WriteString(" tags | ")
	}
	fmt.Fprintf(&b, "%s | %s%-14s | %4d viewers | %s | %s\n",
		entry.Language,
		ChannelURLPrefix, entry.DisplayName,
		entry.ViewerCount,
		entry.LiveDuration,
		entry.Title,
	)
	return b.String()
}

// FormatTags turns the raw tags text `["English","FPS"]` into "English, FPS".
func FormatTags(raw string) string {
	s := strings.Trim(raw, "[]")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.ReplaceAll(s, ",", ", ")
}

// formatSeconds renders d as whole seconds and zero-padded hundredths.
func formatSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := d / time.Second
	hundredths := (d % time.Second) / (10 * time.Millisecond)
	return fmt.Sprintf("%d.%02d", secs, hundredths)
}
