package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// MediaRow is one row of the merged image/video view of a category.
// Kind is "image" or "video" depending on the source table.
type MediaRow struct {
	ID          uint
	Kind        string
	URL         string
	Description *string
	Position    int
	IsCarousel  bool
	SlideKey    *string
}

// ListCategoryMedia returns the union of a category's images and videos
// in a single query, ordered by (position, id). Final ordering (stable
// tie-breaks across the two tables) is re-established by the caller.
func ListCategoryMedia(db *sql.DB, categoryID uint) ([]MediaRow, error) {
	imgSQL, imgArgs, err := psql.
		Select("id", "'image' AS kind", "image_url AS url", "description", "position", "is_carousel", "slide_key").
		From("project_images").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListCategoryMedia images: %w", err)
	}

	vidSQL, vidArgs, err := psql.
		Select("id", "'video' AS kind", "video_url AS url", "description", "position", "is_carousel", "slide_key").
		From("project_videos").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListCategoryMedia videos: %w", err)
	}

	sqlStr := fmt.Sprintf("%s UNION ALL %s ORDER BY position ASC, id ASC", imgSQL, vidSQL)
	args := append(imgArgs, vidArgs...)

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListCategoryMedia query: %w", err)
	}
	defer rows.Close()

	media := []MediaRow{}
	for rows.Next() {
		var m MediaRow
		if err := rows.Scan(&m.ID, &m.Kind, &m.URL, &m.Description, &m.Position, &m.IsCarousel, &m.SlideKey); err != nil {
			return nil, fmt.Errorf("error scanning media row: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return media, fmt.Errorf("error iterating media rows: %w", err)
	}
	return media, nil
}

// MaxMediaPosition returns the highest position value across both media
// tables of a category, or 0 when the category has no media.
func MaxMediaPosition(db *sql.DB, categoryID uint) (int, error) {
	imgSQL, imgArgs, err := psql.
		Select("COALESCE(MAX(position), 0) AS pos").
		From("project_images").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for MaxMediaPosition images: %w", err)
	}

	vidSQL, vidArgs, err := psql.
		Select("COALESCE(MAX(position), 0) AS pos").
		From("project_videos").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for MaxMediaPosition videos: %w", err)
	}

	sqlStr := fmt.Sprintf("SELECT MAX(pos) FROM (%s UNION ALL %s)", imgSQL, vidSQL)
	args := append(imgArgs, vidArgs...)

	var max int
	if err := db.QueryRow(sqlStr, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to execute MaxMediaPosition query: %w", err)
	}
	return max, nil
}
