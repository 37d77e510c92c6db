package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/groupbuy/internal/models"
)

// run executes the CLI with args against dsn and returns stdout.
func run(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dsn", dsn}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateListShow(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "groupbuy.db")

	out, err := run(t, dsn, "create", "Friday Tea")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		t.Fatal("create printed no id")
	}

	out, err = run(t, dsn, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Friday Tea") || !strings.Contains(out, id) {
		t.Errorf("list output missing group buy:\n%s", out)
	}

	out, err = run(t, dsn, "show", id)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Friday Tea (0 orders)") || !strings.Contains(out, "(0%)") {
		t.Errorf("show output:\n%s", out)
	}

	if _, err := run(t, dsn, "show", "missing"); err == nil {
		t.Error("expected error for unknown id")
	}
	if _, err := run(t, dsn, "create", "  "); err == nil {
		t.Error("expected error for blank title")
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	exportFile := filepath.Join(dir, "export.json")

	collection := models.Collection{
		{ID: "g1", Title: "Friday Tea", CreatedAt: 1709305200000, Orders: []models.Order{
			{ID: "o1", BuyerName: "Amy", ItemName: "Latte", Price: 50, Quantity: 2, IsPaid: true, CreatedAt: 1709305230000},
			{ID: "o2", BuyerName: "Ben", ItemName: "Tea", Price: 30, Quantity: 1, CreatedAt: 1709305260000},
		}},
	}
	raw, _ := json.Marshal(collection)
	if err := os.WriteFile(exportFile, raw, 0644); err != nil {
		t.Fatal(err)
	}

	source := filepath.Join(dir, "source.db")
	out, err := run(t, source, "import", "--file", exportFile)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "imported 1 group buys") {
		t.Errorf("import output: %s", out)
	}

	out, err = run(t, source, "show", "g1", "--query", "lat")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Latte") || strings.Contains(out, "Ben") || !strings.Contains(out, "(77%)") {
		t.Errorf("show output:\n%s", out)
	}

	out, err = run(t, source, "export")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var exported models.Collection
	if err := json.Unmarshal([]byte(out), &exported); err != nil {
		t.Fatalf("export is not JSON: %v\n%s", err, out)
	}
	if len(exported) != 1 || len(exported[0].Orders) != 2 || exported[0].Orders[0] != collection[0].Orders[0] {
		t.Errorf("exported = %+v", exported)
	}
}

func TestImportRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`[{"id":"g1","title":"A"},{"id":"g1","title":"B"}]`), 0644)

	if _, err := run(t, filepath.Join(dir, "x.db"), "import", "--file", bad); err == nil {
		t.Error("expected duplicate ids to be rejected")
	}
	if _, err := run(t, filepath.Join(dir, "x.db"), "import"); err == nil {
		t.Error("expected missing --file to be rejected")
	}
}

func TestOrderCommands(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "groupbuy.db")

	out, err := run(t, dsn, "create", "Friday Tea")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	gbID := strings.TrimSpace(out)

	out, err = run(t, dsn, "add", gbID, "--buyer", "Amy", "--item", "Latte", "--price", "50", "--qty", "2")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	orderID := strings.TrimSpace(out)
	if orderID == "" {
		t.Fatal("add printed no id")
	}

	if _, err := run(t, dsn, "add", gbID, "--buyer", "Ben", "--item", "Tea", "--price", "-3"); err == nil {
		t.Error("expected negative price to be rejected")
	}
	if _, err := run(t, dsn, "add", "missing", "--buyer", "Ben", "--item", "Tea", "--price", "3"); err == nil {
		t.Error("expected unknown group buy to be rejected")
	}

	out, err = run(t, dsn, "edit", gbID, orderID, "--item", "Mocha")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !strings.Contains(out, "Amy: Mocha x2 $100.00 no") {
		t.Errorf("edit output: %s", out)
	}

	out, err = run(t, dsn, "toggle", gbID, orderID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out, "Amy paid: yes") {
		t.Errorf("toggle output: %s", out)
	}

	out, err = run(t, dsn, "show", gbID)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Mocha") || !strings.Contains(out, "(100%)") {
		t.Errorf("show output:\n%s", out)
	}

	out, err = run(t, dsn, "delete", gbID, orderID)
	if err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if !strings.Contains(out, "deleted order Mocha ($100.00)") {
		t.Errorf("delete order output: %s", out)
	}
	if _, err := run(t, dsn, "toggle", gbID, orderID); err == nil {
		t.Error("expected toggle of a deleted order to fail")
	}

	out, err = run(t, dsn, "delete", gbID)
	if err != nil {
		t.Fatalf("delete group buy failed: %v", err)
	}
	if !strings.Contains(out, "deleted Friday Tea (0 orders, $0.00)") {
		t.Errorf("delete group buy output: %s", out)
	}

	out, _ = run(t, dsn, "list")
	if !strings.Contains(out, "no group buys") {
		t.Errorf("list after delete:\n%s", out)
	}
}
