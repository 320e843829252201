// package formatter renders a top tracks list in the CLI output formats (plain text, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/toptracks/internal/models"
	"github.com/desertthunder/toptracks/internal/shared"
	"github.com/dustin/go-humanize"
)

// Format names accepted by [Export].
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

const title = "Spotify Top Tracks"

// Formats lists the accepted format names.
var Formats = []string{FormatText, FormatCSV, FormatMarkdown}

// Export renders tracks in the named format.
func Export(format string, tracks []models.Track) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText, "txt":
		return ExportToText(tracks)
	case FormatCSV:
		return ExportToCSV(tracks)
	case FormatMarkdown, "md":
		return ExportToMarkdown(tracks)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// ExportToCSV converts tracks to CSV with columns: Rank, ID, Title, Artists, Album, Duration, ISRC, URL
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "ID", "Title", "Artists", "Album", "Duration", "ISRC", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range tracks {
		record := []string{
			strconv.Itoa(i + 1),
			track.ID,
			track.Name,
			strings.Join(track.ArtistNames(), ", "),
			track.Album.Name,
			FormatDuration(track.DurationMS),
			track.ExternalIDs.ISRC,
			track.ExternalURL.Spotify,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts tracks to a Markdown list linking each title to Spotify
func ExportToMarkdown(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	for i, track := range tracks {
		name := track.Name
		if track.ExternalURL.Spotify != "" {
			name = fmt.Sprintf("[%s](%s)", track.Name, track.ExternalURL.Spotify)
		}
		albumPart := ""
		if track.Album.Name != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album.Name)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n",
			i+1, strings.Join(track.ArtistNames(), ", "), name, albumPart, FormatDuration(track.DurationMS)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts tracks to plain text ranked with ordinals ("1st", "2nd", ...)
func ExportToText(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s: %d\n\n", title, len(tracks)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%5s  %s - %s\n", humanize.Ordinal(i+1), track.Name, strings.Join(track.ArtistNames(), ", ")))
	}

	return buf.Bytes(), nil
}

// FormatDuration renders milliseconds as m:ss.
func FormatDuration(ms int) string {
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// WriteExport renders tracks in format and writes them to path.
func WriteExport(format string, tracks []models.Track, path string) error {
	data, err := Export(format, tracks)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
