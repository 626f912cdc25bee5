package media

import "sort"

// Entry is one image or video of a category, tagged with its kind, as
// emitted by the category detail endpoint. ImageURL/VideoURL duplicate
// URL for frontend compatibility; only the matching one is set.
type Entry struct {
	ID          uint    `json:"id"`
	Kind        string  `json:"type"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"image_url,omitempty"`
	VideoURL    string  `json:"video_url,omitempty"`
	Description *string `json:"description"`
	Position    int     `json:"position"`
	IsCarousel  bool    `json:"is_carousel"`
	SlideKey    *string `json:"slide_key"`
}

// Gallery is the merged, ordered view of a category's media.
type Gallery struct {
	Images   []Entry            // image entries, in merged order
	Videos   []Entry            // video entries, in merged order
	Timeline []Entry            // full merged sequence
	Slides   []Entry            // carousel entries, in merged order
	BySlide  map[string][]Entry // slide key -> non-carousel sub-entries
}

// BuildGallery computes the ordered view of a category's media. The
// merged sequence is sorted by (position, id) ascending; position is
// the primary key and id breaks ties so order stays deterministic when
// positions collide. Carousel entries form the slides list; non-carousel
// entries with a slide key are grouped into BySlide buckets, each bucket
// in the same (position, id) order. A key with no carousel entry still
// gets a bucket when sub-entries reference it.
func BuildGallery(entries []Entry) Gallery {
	merged := make([]Entry, len(entries))
	copy(merged, entries)
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Position != merged[j].Position {
			return merged[i].Position < merged[j].Position
		}
		return merged[i].ID < merged[j].ID
	})

	g := Gallery{
		Images:   []Entry{},
		Videos:   []Entry{},
		Timeline: merged,
		Slides:   []Entry{},
		BySlide:  map[string][]Entry{},
	}

	for _, e := range merged {
		switch e.Kind {
		case "image":
			g.Images = append(g.Images, e)
		case "video":
			g.Videos = append(g.Videos, e)
		}

		if e.IsCarousel {
			g.Slides = append(g.Slides, e)
			continue
		}
		if e.SlideKey != nil && *e.SlideKey != "" {
			g.BySlide[*e.SlideKey] = append(g.BySlide[*e.SlideKey], e)
		}
	}

	return g
}
