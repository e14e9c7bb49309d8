// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package database

import (
	"context"
	"reflect"
	"testing"
)

func TestRebuildAggregates_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	insertAuthor(t, db, 1, "X")
	insertArticle(t, db, 1, "A", "a")
	insertLogs(t, db, "/article/a", "200 OK", "2016-07-01 08:00:00", 2)
	insertLogs(t, db, "/article/a", "404 NOT FOUND", "2016-07-01 09:00:00", 1)

	checkNoError(t, db.RebuildAggregates(ctx))

	articles, err := db.MostPopularArticles(ctx, 0)
	checkNoError(t, err)
	checkLen(t, "articles", len(articles), 1)
	checkStringEqual(t, "title", articles[0].Title, "A")
	checkStringEqual(t, "author", articles[0].Author, "X")
	checkStringEqual(t, "path", articles[0].Path, "/article/a")
	checkInt64Equal(t, "view_count", articles[0].ViewCount, 2)

	days, err := db.ErrorProneDays(ctx, DefaultErrorThreshold)
	checkNoError(t, err)
	checkLen(t, "days", len(days), 1)
	checkStringEqual(t, "date", days[0].Date.Format("2006-01-02"), "2016-07-01")
	checkInt64Equal(t, "total", days[0].Total, 3)
	checkFloatNear(t, "error_percentage", days[0].ErrorPercentage, 1.0/3.0)
}

func TestRebuildAggregates_Idempotent(t *testing.T) {
	db := setupTestDBWithData(t)
	ctx := context.Background()

	firstArticles, err := db.MostPopularArticles(ctx, 0)
	checkNoError(t, err)
	firstDays, err := db.ErrorProneDays(ctx, DefaultErrorThreshold)
	checkNoError(t, err)

	checkNoError(t, db.RebuildAggregates(ctx))

	secondArticles, err := db.MostPopularArticles(ctx, 0)
	checkNoError(t, err)
	secondDays, err := db.ErrorProneDays(ctx, DefaultErrorThreshold)
	checkNoError(t, err)

	if !reflect.DeepEqual(firstArticles, secondArticles) {
		t.Errorf("articles changed after second rebuild:\nfirst:  %+v\nsecond: %+v", firstArticles, secondArticles)
	}
	if len(firstDays) != len(secondDays) {
		t.Fatalf("error days changed after second rebuild: %d vs %d", len(firstDays), len(secondDays))
	}
	for i := range firstDays {
		if !firstDays[i].Date.Equal(secondDays[i].Date) || firstDays[i].ErrorPercentage != secondDays[i].ErrorPercentage {
			t.Errorf("error day %d changed: %+v vs %+v", i, firstDays[i], secondDays[i])
		}
	}
}

func TestRebuildAggregates_MissingBaseTables(t *testing.T) {
	db := setupTestDB(t)
	execSQL(t, db, `DROP TABLE articles`)

	err := db.RebuildAggregates(context.Background())
	checkErrorIs(t, err, ErrAggregateRebuild)
}

func TestRebuildAggregates_ViewsAreLive(t *testing.T) {
	db := setupTestDBWithData(t)
	ctx := context.Background()

	insertLogs(t, db, "/article/bears-love-berries", "200 OK", "2016-07-04 12:00:00", 10)

	articles, err := db.MostPopularArticles(ctx, 1)
	checkNoError(t, err)
	checkLen(t, "articles", len(articles), 1)
	checkStringEqual(t, "title", articles[0].Title, titleBears)
	checkInt64Equal(t, "view_count", articles[0].ViewCount, 13)
}

func TestAggregatesExist(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	exists, err := db.AggregatesExist(ctx)
	checkNoError(t, err)
	if exists {
		t.Error("expected no aggregate views before rebuild")
	}

	checkNoError(t, db.RebuildAggregates(ctx))

	exists, err = db.AggregatesExist(ctx)
	checkNoError(t, err)
	if !exists {
		t.Error("expected aggregate views after rebuild")
	}
}
