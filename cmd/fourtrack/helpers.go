package main

import (
	"fmt"
	"strconv"
	"strings"

	"fourtrack/internal/session"
)

func parseSessionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid session id %q", arg)
	}
	return id, nil
}

// resolveRegion locates a region by full id or unique id prefix.
func resolveRegion(sess *session.Session, arg string) (session.RegionRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return session.RegionRef{}, fmt.Errorf("region id is required")
	}
	if ti, ri, ok := sess.FindRegion(arg); ok {
		return session.RegionRef{Track: ti, Region: ri}, nil
	}

	var (
		match   session.RegionRef
		matches int
	)
	for ti, track := range sess.Tracks {
		for ri, region := range track.Regions {
			if strings.HasPrefix(region.ID, arg) {
				match = session.RegionRef{Track: ti, Region: ri}
				matches++
			}
		}
	}
	switch matches {
	case 0:
		return session.RegionRef{}, fmt.Errorf("no region matches %q", arg)
	case 1:
		return match, nil
	default:
		return session.RegionRef{}, fmt.Errorf("region id %q is ambiguous (%d matches)", arg, matches)
	}
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64) + "s"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
