package model_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/quilicicf/js2ics/model"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func TestGeneration(t *testing.T) {
	// init db
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	bundb := bun.NewDB(db, sqlitedialect.New())

	if err := model.CreateSchema(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}

	generationModel := model.Generation{
		ID:        uuid.NewString(),
		Path:      "/tmp/calendar-event.ics",
		Events:    1,
		TimeZone:  "Europe/Paris",
		CreatedAt: time.Now().Unix(),
	}

	// case: insert and read back
	func() {
		if err := generationModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		generations, err := model.Recent(context.Background(), bundb, 10)
		if err != nil {
			t.Error(err)
		}
		if len(generations) != 1 {
			t.Fatal("expected one generation record, got", len(generations))
		}
		if generations[0].Path != generationModel.Path {
			t.Error("generation path mismatch", generations[0].Path)
		}
	}()

	// case: upsert with same id updates in place
	func() {
		generationModel.Events = 3
		if err := generationModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		generations, err := model.Recent(context.Background(), bundb, 10)
		if err != nil {
			t.Error(err)
		}
		if len(generations) != 1 {
			t.Fatal("upsert should not duplicate rows, got", len(generations))
		}
		if generations[0].Events != 3 {
			t.Error("upsert should update the event count", generations[0].Events)
		}
	}()

	// case: blank id rejected
	func() {
		blank := model.Generation{Path: "/tmp/x.ics", CreatedAt: time.Now().Unix()}
		if err := blank.Upsert(context.Background(), bundb); err == nil {
			t.Error("blank generation id should be rejected")
		}
	}()
}
