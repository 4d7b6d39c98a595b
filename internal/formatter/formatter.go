// package formatter provides functions to export projected song lists to
// various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/ytmb/internal/projection"
)

// ExportToCSV converts projected rows to CSV with columns: VideoID, Title,
// Artists, Album, Duration, Playlists, Dupe
func ExportToCSV(title string, rows []projection.ViewRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"VideoID", "Title", "Artists", "Album", "Duration", "Playlists", "Dupe"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.VideoID,
			row.Title,
			row.ArtistsString,
			row.AlbumString,
			row.Duration,
			row.PlaylistsString,
			strconv.FormatBool(row.IsDupe),
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

// ExportToMarkdown converts projected rows to a Markdown track list.
func ExportToMarkdown(title string, rows []projection.ViewRow) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(rows)))

	buf.WriteString("## Songs\n\n")
	for i, row := range rows {
		albumPart := ""
		if row.AlbumString != "" {
			albumPart = fmt.Sprintf(" (%s)", row.AlbumString)
		}
		dupePart := ""
		if row.IsDupe {
			dupePart = " *(dupe)*"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]%s\n", i+1, row.ArtistsString, row.Title, albumPart, row.Duration, dupePart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts projected rows to plain text.
func ExportToText(title string, rows []projection.ViewRow) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", title))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(rows)))

	for i, row := range rows {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, row.ArtistsString, row.Title))
	}

	return buf.Bytes(), nil
}

// GroupsToMarkdown converts an album-grouped projection to Markdown, one
// section per group with its track listing.
func GroupsToMarkdown(title string, groups []projection.AlbumGroup) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Albums**: %d\n\n", len(groups)))

	for _, group := range groups {
		buf.WriteString(fmt.Sprintf("## %s\n\n", group.Title))
		if group.ArtistsString != "" {
			buf.WriteString(fmt.Sprintf("**Artists**: %s\n", group.ArtistsString))
		}
		buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", group.TrackCount))
		for i, child := range group.Children {
			buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, child.Title, child.Duration))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// Export renders rows in the named format: csv, markdown (md), or txt.
func Export(format, title string, rows []projection.ViewRow) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(title, rows)
	case "markdown", "md":
		return ExportToMarkdown(title, rows)
	case "txt", "text", "":
		return ExportToText(title, rows)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteExport renders rows and writes them to a file.
func WriteExport(format, title, path string, rows []projection.ViewRow) error {
	data, err := Export(format, title, rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
