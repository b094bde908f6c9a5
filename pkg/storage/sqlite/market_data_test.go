package sqlite

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	// A named in-memory database keeps all pooled connections on the same
	// data while staying isolated per test.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	client, err := NewClient(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if err := client.AutoMigrateMarketData(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return client
}

func f(v float64) *float64 { return &v }

func TestMergeIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	batch := []MarketRecord{
		{Closing: f(1000), JalaliDate: "1403/01/01", MarketType: "Dollar"},
		{Closing: f(1010), JalaliDate: "1403/01/02", MarketType: "Dollar"},
		{Closing: nil, JalaliDate: "1403/01/03", MarketType: "Dollar"},
	}

	inserted, err := client.Merge(ctx, batch)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("expected 3 inserts, got %d", inserted)
	}

	inserted, err = client.Merge(ctx, batch)
	if err != nil {
		t.Fatalf("second merge failed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected idempotent re-merge, got %d inserts", inserted)
	}

	records, err := client.ListRecords(ctx, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(records))
	}
}

func TestMergeInsertsOnlyMissingRows(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	first := []MarketRecord{
		{Closing: f(500), JalaliDate: "1403/02/01", MarketType: "Coin"},
	}
	if _, err := client.Merge(ctx, first); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	second := append(first, MarketRecord{
		Closing: f(510), JalaliDate: "1403/02/02", MarketType: "Coin",
	})
	inserted, err := client.Merge(ctx, second)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected exactly the new row inserted, got %d", inserted)
	}
}

func TestCollapseDuplicatesKeepsHighestID(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	// Same (market, date) with a corrected closing value: whole-row merge
	// treats it as an additional row.
	if _, err := client.Merge(ctx, []MarketRecord{
		{Closing: f(100), JalaliDate: "1403/03/01", MarketType: "Bourse"},
	}); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if _, err := client.Merge(ctx, []MarketRecord{
		{Closing: f(105), JalaliDate: "1403/03/01", MarketType: "Bourse"},
	}); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if err := client.CollapseDuplicates(ctx); err != nil {
		t.Fatalf("collapse failed: %v", err)
	}

	records, err := client.ListRecords(ctx, []string{"Bourse"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 row after collapse, got %d", len(records))
	}
	if records[0].Closing == nil || *records[0].Closing != 105 {
		t.Errorf("expected the later row to win, got %+v", records[0])
	}

	// Collapse is itself idempotent.
	if err := client.CollapseDuplicates(ctx); err != nil {
		t.Fatalf("repeated collapse failed: %v", err)
	}
	records, _ = client.ListRecords(ctx, []string{"Bourse"})
	if len(records) != 1 {
		t.Fatalf("expected collapse to remain stable, got %d rows", len(records))
	}
}

func TestCollapseDuplicatesInvariant(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	var batch []MarketRecord
	for i := 0; i < 3; i++ {
		batch = append(batch,
			MarketRecord{Closing: f(float64(100 + i)), JalaliDate: "1403/04/01", MarketType: "Khodro"},
			MarketRecord{Closing: f(float64(200 + i)), JalaliDate: "1403/04/02", MarketType: "Khodro"},
		)
	}
	if _, err := client.Merge(ctx, batch); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if err := client.CollapseDuplicates(ctx); err != nil {
		t.Fatalf("collapse failed: %v", err)
	}

	records, err := client.ListRecords(ctx, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	seen := map[string]int{}
	for _, r := range records {
		seen[r.MarketType+"|"+r.JalaliDate]++
	}
	for key, n := range seen {
		if n != 1 {
			t.Errorf("pair %s has %d rows after collapse", key, n)
		}
	}
	if len(seen) != 2 {
		t.Errorf("expected 2 distinct pairs, got %d", len(seen))
	}
}

func TestMaintainRunsBothPhases(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Maintain(ctx, []MarketRecord{
		{Closing: f(50), JalaliDate: "1403/05/01", MarketType: "Silver"},
	}); err != nil {
		t.Fatalf("maintain failed: %v", err)
	}

	inserted, err := client.Maintain(ctx, []MarketRecord{
		{Closing: f(50), JalaliDate: "1403/05/01", MarketType: "Silver"},
		{Closing: f(51), JalaliDate: "1403/05/01", MarketType: "Silver"},
	})
	if err != nil {
		t.Fatalf("maintain failed: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 new row, got %d", inserted)
	}

	records, err := client.ListRecords(ctx, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected collapse within maintain, got %d rows", len(records))
	}
	if records[0].Closing == nil || *records[0].Closing != 51 {
		t.Errorf("expected corrected value to win, got %+v", records[0])
	}
}

func TestListRecordsFiltersByMarket(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Merge(ctx, []MarketRecord{
		{Closing: f(1), JalaliDate: "1403/06/01", MarketType: "Dollar"},
		{Closing: f(2), JalaliDate: "1403/06/01", MarketType: "Coin"},
		{Closing: f(3), JalaliDate: "1403/06/01", MarketType: "Bitcoin"},
	}); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	records, err := client.ListRecords(ctx, []string{"Dollar", "Coin"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 filtered rows, got %d", len(records))
	}
	for _, r := range records {
		if r.MarketType == "Bitcoin" {
			t.Error("filter leaked an excluded market")
		}
	}
}
