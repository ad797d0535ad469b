package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// ParseIDList splits a comma-separated list and keeps the tokens that parse
// as positive integers, in their original order.
func ParseIDList(raw string) []uint {
	var ids []uint
	for _, token := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

var versionedPublicID = regexp.MustCompile(`/v\d+/(.+?)\.`)

// PublicIDFromURL extracts the hosting provider's object id from a versioned
// delivery URL such as https://host/image/upload/v1712/products/shoe.jpg.
func PublicIDFromURL(location string) (string, bool) {
	matches := versionedPublicID.FindStringSubmatch(location)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}
