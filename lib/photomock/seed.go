// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photomock

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"

	"github.com/lightbox-labs/lightbox/lib/photoapi"
)

// seedFile is the on-disk seed layout: a JSONC object with a "photos"
// array, the same shape a json-server database uses.
type seedFile struct {
	Photos []photoapi.Photo `json:"photos"`
}

// ParseSeed parses a JSONC seed document. Comments and trailing commas
// are allowed. Every photo must have an id.
func ParseSeed(data []byte) ([]photoapi.Photo, error) {
	var seed seedFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	for index, photo := range seed.Photos {
		if photo.ID == "" {
			return nil, fmt.Errorf("parsing seed: photos[%d] has no id", index)
		}
	}
	return seed.Photos, nil
}

// ReadSeed reads and parses a seed file.
func ReadSeed(path string) ([]photoapi.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}
	photos, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return photos, nil
}

var (
	seedSubjects = []string{
		"cat", "dog", "harbour", "mountain", "lighthouse", "market",
		"forest", "bridge", "tram", "garden", "desert", "glacier",
	}
	seedMoods = []string{
		"at dawn", "in the rain", "under snow", "at golden hour",
		"after the storm", "by night", "in fog",
	}
	seedOwners = []string{"12037949@N02", "44124372821@N01", "8734651@N05", "91620483@N00"}
)

// GenerateSeed returns count deterministic photos cycling through a
// fixed set of subjects, so every subject has several pages of search
// results once count is large enough.
func GenerateSeed(count int) []photoapi.Photo {
	photos := make([]photoapi.Photo, 0, count)
	for index := range count {
		id := strconv.Itoa(53000000000 + index)
		subject := seedSubjects[index%len(seedSubjects)]
		mood := seedMoods[(index/len(seedSubjects))%len(seedMoods)]
		digest := blake3.Sum256([]byte(id))
		photos = append(photos, photoapi.Photo{
			ID:     id,
			Owner:  seedOwners[index%len(seedOwners)],
			Secret: hex.EncodeToString(digest[:5]),
			Server: strconv.Itoa(65535 - index%16),
			Farm:   66,
			Title:  fmt.Sprintf("%s %s #%d", subject, mood, index/len(seedSubjects)+1),
		})
	}
	return photos
}
