package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"estate-crm/config"
	"estate-crm/models"
	"estate-crm/utils"
)

// newTestRepo provisions a fresh workbook in a temp dir, drops a matching
// credentials.json next to it, and returns a Repository wired to both.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Resource:        "estate_crm_test",
		CredentialsFile: filepath.Join(dir, "credentials.json"),
		CredentialsEnv:  "CRM_TEST_CREDENTIALS_UNSET",
		MaxRetries:      1,
	}

	err := CreateWorkbook(filepath.Join(dir, cfg.Resource+".xlsx"), map[string][]string{
		models.ListingsSheet: models.ListingColumns,
		models.ClientsSheet:  models.ClientColumns,
		models.TasksSheet:    models.TaskColumns,
	})
	if err != nil {
		t.Fatalf("create workbook: %v", err)
	}

	creds, _ := json.Marshal(Credentials{WorkbookDir: dir})
	if err := os.WriteFile(cfg.CredentialsFile, creds, 0600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}

	repo := NewRepository(NewConnector(cfg, utils.NewLogger()), utils.NewLogger())
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func listingRow(title string) []any {
	return []any{"2026-03-14", title, "Apartment", "4250000", "Kadıköy", "145", "3+1", "ForSale", "", "41,0082", "28,9784"}
}

func TestAppendThenReadAllRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	row := listingRow("Deniz Manzaralı 3+1")
	if err := repo.Append(models.ListingsSheet, row); err != nil {
		t.Fatalf("append: %v", err)
	}

	got := repo.ReadAll(models.ListingsSheet)
	if len(got) != 1 {
		t.Fatalf("ReadAll returned %d rows; want 1", len(got))
	}
	for i, col := range models.ListingColumns {
		if got[0][col] != row[i].(string) {
			t.Errorf("column %s: got %q, want %q", col, got[0][col], row[i])
		}
	}
}

func TestDeleteByKeyRemovesExactlyOneRow(t *testing.T) {
	repo := newTestRepo(t)

	for _, title := range []string{"İlan A", "İlan B", "İlan C"} {
		if err := repo.Append(models.ListingsSheet, listingRow(title)); err != nil {
			t.Fatalf("append %s: %v", title, err)
		}
	}

	if err := repo.DeleteByKey(models.ListingsSheet, models.ListingTitleColumn, "İlan B"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	rows := repo.ReadAll(models.ListingsSheet)
	if len(rows) != 2 {
		t.Fatalf("got %d rows after delete; want 2", len(rows))
	}
	for _, row := range rows {
		if row["Title"] == "İlan B" {
			t.Error("deleted row still present")
		}
	}
}

func TestDeleteByKeyNotFoundLeavesTableUnchanged(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Append(models.ListingsSheet, listingRow("İlan A")); err != nil {
		t.Fatalf("append: %v", err)
	}
	before := repo.ReadAll(models.ListingsSheet)

	err := repo.DeleteByKey(models.ListingsSheet, models.ListingTitleColumn, "yok böyle ilan")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("got %v; want ErrKeyNotFound", err)
	}

	after := repo.ReadAll(models.ListingsSheet)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("table changed on failed delete:\nbefore %v\nafter  %v", before, after)
	}
}

func TestSequentialDeletesResolvePositionsFresh(t *testing.T) {
	repo := newTestRepo(t)

	titles := []string{"İlan A", "İlan B", "İlan C", "İlan D"}
	for _, title := range titles {
		if err := repo.Append(models.ListingsSheet, listingRow(title)); err != nil {
			t.Fatalf("append %s: %v", title, err)
		}
	}

	// Deleting A shifts every later row up by one. The second delete must
	// re-resolve C's position instead of using its original index.
	if err := repo.DeleteByKey(models.ListingsSheet, models.ListingTitleColumn, "İlan A"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := repo.DeleteByKey(models.ListingsSheet, models.ListingTitleColumn, "İlan C"); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	rows := repo.ReadAll(models.ListingsSheet)
	var got []string
	for _, row := range rows {
		got = append(got, row["Title"])
	}
	want := []string{"İlan B", "İlan D"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("remaining titles: got %v, want %v", got, want)
	}
}

func TestDeleteByKeyDuplicateRemovesFirstOccurrence(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Append(models.ListingsSheet, listingRow("Çift İlan")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append(models.ListingsSheet, listingRow("Ara İlan")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append(models.ListingsSheet, listingRow("Çift İlan")); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteByKey(models.ListingsSheet, models.ListingTitleColumn, "Çift İlan"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	rows := repo.ReadAll(models.ListingsSheet)
	var got []string
	for _, row := range rows {
		got = append(got, row["Title"])
	}
	want := []string{"Ara İlan", "Çift İlan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("remaining titles: got %v, want %v", got, want)
	}
}

func TestDeleteByKeyNormalizesWhitespace(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Append(models.ListingsSheet, listingRow("Deniz Manzaralı 3+1")); err != nil {
		t.Fatal(err)
	}

	err := repo.DeleteByKey(models.ListingsSheet, models.ListingTitleColumn, "  Deniz  Manzaralı 3+1 ")
	if err != nil {
		t.Fatalf("delete with sloppy key: %v", err)
	}
	if rows := repo.ReadAll(models.ListingsSheet); len(rows) != 0 {
		t.Errorf("got %d rows; want 0", len(rows))
	}
}

func TestReadAllUnavailableStoreReturnsEmpty(t *testing.T) {
	cfg := &config.Config{
		Resource:        "missing",
		CredentialsFile: filepath.Join(t.TempDir(), "no-such-credentials.json"),
		CredentialsEnv:  "CRM_TEST_CREDENTIALS_UNSET",
	}
	repo := NewRepository(NewConnector(cfg, utils.NewLogger()), utils.NewLogger())

	if rows := repo.ReadAll(models.ListingsSheet); len(rows) != 0 {
		t.Errorf("got %d rows from unavailable store; want 0", len(rows))
	}
	if err := repo.Append(models.ListingsSheet, listingRow("x")); !Unavailable(err) {
		t.Errorf("append: got %v; want ErrConnectionUnavailable", err)
	}
	if err := repo.DeleteByKey(models.ListingsSheet, models.ListingTitleColumn, "x"); !Unavailable(err) {
		t.Errorf("delete: got %v; want ErrConnectionUnavailable", err)
	}
}

func TestMissingWorksheetIsUnavailable(t *testing.T) {
	repo := newTestRepo(t)

	_, _, err := repo.conn.Connect("NoSuchSheet")
	if !Unavailable(err) {
		t.Errorf("got %v; want ErrConnectionUnavailable", err)
	}
}

func TestConnectorMemoizesTableHandles(t *testing.T) {
	repo := newTestRepo(t)

	_, first, err := repo.conn.Connect(models.ListingsSheet)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := repo.conn.Connect(models.ListingsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second Connect returned a different handle; want memoized")
	}
}
