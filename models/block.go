package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// Block types accepted on the contact page.
const (
	BlockTypeText  = "text"
	BlockTypeImage = "image"
	BlockTypeVideo = "video"
)

// Block is one ordered unit of contact-page content. Type selects the
// variant: text blocks carry Content, image and video blocks carry URL,
// Caption and InCarousel. Position is the caller-controlled sort key;
// callers replace the whole list and must set positions for every
// block, including ones they are not otherwise changing.
type Block struct {
	Type       string `json:"type"`
	Position   int    `json:"position"`
	Content    string `json:"content,omitempty"`
	URL        string `json:"url,omitempty"`
	Caption    string `json:"caption,omitempty"`
	InCarousel bool   `json:"in_carousel,omitempty"`
}

// rawBlock tolerates arbitrary position payloads (strings, floats,
// missing) so a sloppy client cannot fail the whole list.
type rawBlock struct {
	Type       string          `json:"type"`
	Position   json.RawMessage `json:"position"`
	Content    string          `json:"content"`
	URL        string          `json:"url"`
	Caption    string          `json:"caption"`
	InCarousel bool            `json:"in_carousel"`
}

func parsePosition(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var sn int
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &sn); err == nil {
			return sn
		}
	}
	return 0
}

// SanitizeBlocks validates a submitted block list: entries with an
// unrecognized type are dropped silently, missing fields default to
// zero values, and the result is re-sorted by position ascending
// (stable on ties). Text blocks keep only Content; media blocks keep
// URL, Caption and InCarousel.
func SanitizeBlocks(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		t := strings.ToLower(strings.TrimSpace(b.Type))
		item := Block{Type: t, Position: b.Position}
		switch t {
		case BlockTypeText:
			item.Content = b.Content
		case BlockTypeImage, BlockTypeVideo:
			item.URL = b.URL
			item.Caption = b.Caption
			item.InCarousel = b.InCarousel
		default:
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// EncodeBlocks serializes a block list for storage in
// ContactPage.VideosJSON. A nil list encodes as an empty array.
func EncodeBlocks(blocks []Block) (string, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeBlocks deserializes a stored block list. Any parse failure, or
// a payload that is not a JSON array, degrades to an empty list rather
// than an error: corrupt persisted data must never fail a read.
func DecodeBlocks(serialized string) []Block {
	if strings.TrimSpace(serialized) == "" {
		return []Block{}
	}
	var raws []rawBlock
	if err := json.Unmarshal([]byte(serialized), &raws); err != nil {
		return []Block{}
	}
	out := make([]Block, 0, len(raws))
	for _, r := range raws {
		out = append(out, Block{
			Type:       r.Type,
			Position:   parsePosition(r.Position),
			Content:    r.Content,
			URL:        r.URL,
			Caption:    r.Caption,
			InCarousel: r.InCarousel,
		})
	}
	return out
}
