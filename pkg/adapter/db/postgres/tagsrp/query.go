// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tagsrp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/model"
)

type gPostTag struct {
	PostID uuid.UUID `gorm:"column:post_id"`
	Name   string    `gorm:"column:name"`
}

// Names returns the tag names of pids posts, each list being sorted.
func Names[Q postgres.Queryer](
	ctx context.Context, q Q, pids ...uuid.UUID,
) (map[uuid.UUID][]string, error) {
	names := make(map[uuid.UUID][]string, len(pids))
	if len(pids) == 0 {
		return names, nil
	}
	var rows []gPostTag
	gdb := q.GORM(ctx).Raw(`SELECT pt.post_id, t.name
FROM post_tags pt JOIN tags t ON t.tid = pt.tag_id
WHERE pt.post_id IN ?
ORDER BY pt.post_id, t.name COLLATE "C"`, pids).Scan(&rows)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	for _, r := range rows {
		names[r.PostID] = append(names[r.PostID], r.Name)
	}
	return names, nil
}

// Set replaces the tags of pid post. Missing tags are created first;
// an existing tag (having the same slug) keeps its original name.
func Set(ctx context.Context, tx *postgres.Tx, pid uuid.UUID, tags []model.Tag) error {
	_, err := tx.Exec(ctx, `DELETE FROM post_tags WHERE post_id = ?`, pid)
	if err != nil {
		return fmt.Errorf("unlinking tags: %w", err)
	}
	for _, t := range tags {
		_, err = tx.Exec(ctx, `INSERT INTO tags (name, slug) VALUES (?, ?)
ON CONFLICT DO NOTHING`, t.Name, t.Slug)
		if err != nil {
			return fmt.Errorf("creating %q tag: %w", t.Name, err)
		}
		n, err := tx.Exec(ctx, `INSERT INTO post_tags (post_id, tag_id)
SELECT ?, tid FROM tags WHERE slug = ?`, pid, t.Slug)
		if err != nil {
			return fmt.Errorf("linking %q tag: %w", t.Name, err)
		}
		if n != 1 {
			return fmt.Errorf("linking %q tag: %d rows are inserted", t.Name, n)
		}
	}
	return nil
}
