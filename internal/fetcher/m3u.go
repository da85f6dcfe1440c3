package fetcher

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/voyagen/livechannels/internal/models"
)

// DefaultGroup is assigned to channels without a group-title.
const DefaultGroup = "Ungrouped"

var (
	reTvgName   = regexp.MustCompile(`tvg-name="([^"]*)"`)
	reTvgID     = regexp.MustCompile(`tvg-id="([^"]*)"`)
	reTvgLogo   = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	reGroup     = regexp.MustCompile(`group-title="([^"]*)"`)
	reCommaName = regexp.MustCompile(`,([^\n\r\t]*)$`)
)

// ParseM3U reads an M3U playlist from r and returns its channels in playlist order.
// Entries whose EXTINF yields no name are skipped. A playlist that is empty, or that has
// neither an #EXTM3U header nor a single channel, is a *ParseError.
func ParseM3U(r io.Reader) ([]models.Channel, error) {
	channels := []models.Channel{}
	scanner := bufio.NewScanner(r)
	// Some playlists carry very long EXTINF lines.
	const maxSize = 1024 * 1024
	scanner.Buffer(make([]byte, 0, 64*1024), maxSize)

	var extinfLine string
	sawHeader := false
	sawContent := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sawContent = true
		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, "#EXTM3U"):
			sawHeader = true
		case strings.HasPrefix(upper, "#EXTINF"):
			// A previous EXTINF without a URL line is dropped.
			extinfLine = line
		case strings.HasPrefix(line, "#"):
			// EXTVLCOPT, EXTGRP and comments carry nothing we keep.
		default:
			if extinfLine == "" {
				continue
			}
			name := channelName(extinfLine)
			if name == "" {
				extinfLine = ""
				continue
			}
			group := matchFirst(reGroup, extinfLine)
			if group == "" {
				group = DefaultGroup
			}
			channels = append(channels, models.Channel{
				ID:    "channel-" + strconv.Itoa(len(channels)),
				TvgID: matchFirst(reTvgID, extinfLine),
				Name:  name,
				Logo:  matchFirst(reTvgLogo, extinfLine),
				Group: group,
				URL:   line,
			})
			extinfLine = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, parseErrorf("read: %v", err)
	}
	if !sawContent {
		return nil, parseErrorf("empty playlist")
	}
	if !sawHeader && len(channels) == 0 {
		return nil, parseErrorf("not an M3U playlist")
	}
	return channels, nil
}

func matchFirst(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// channelName picks tvg-name, then the comma title, then tvg-id.
func channelName(extinf string) string {
	if n := matchFirst(reTvgName, extinf); n != "" {
		return n
	}
	if alt := matchFirst(reCommaName, titlePart(extinf)); alt != "" {
		return alt
	}
	return matchFirst(reTvgID, extinf)
}

// titlePart returns the EXTINF tail starting at the first comma outside a quoted attribute value.
func titlePart(extinf string) string {
	inQuotes := false
	for i, r := range extinf {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			return extinf[i:]
		}
	}
	return ""
}
