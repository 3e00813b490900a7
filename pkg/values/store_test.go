package values

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/schema"
)

func storeTemplate() schema.Template {
	return schema.Template{
		ID:    "purchase_application",
		Label: "Purchase Application",
		Sections: []schema.Section{
			{
				Title: "Loan Details",
				Fields: []schema.Field{
					{Key: "loan_amount", Kind: schema.FieldKindNumber},
					{Key: "has_credit_issues", Kind: schema.FieldKindBoolean},
					{Key: "preferred_features", Kind: schema.FieldKindMultiselect, Options: []string{"Offset", "Redraw"}},
					{
						Key: "lvr_percent", Kind: schema.FieldKindCalculated,
						Formula: &schema.Formula{Kind: schema.FormulaKindRatio, NumeratorFields: []string{"loan_amount"}, DenominatorField: "property_value"},
					},
				},
			},
			{
				Title: "Liabilities",
				Fields: []schema.Field{
					{
						Key:  "existing_debts",
						Kind: schema.FieldKindRepeater,
						Max:  f64(3),
						Fields: []schema.Field{
							{Key: "type", Kind: schema.FieldKindSelect, Options: []string{"Credit Card", "Car Loan", "Personal Loan"}},
							{Key: "balance", Kind: schema.FieldKindNumber},
						},
					},
					{
						Key:  "dependants",
						Kind: schema.FieldKindRepeater,
						Fields: []schema.Field{
							{Key: "age", Kind: schema.FieldKindNumber},
						},
					},
				},
			},
		},
	}
}

func TestNewStore_KindDefaults(t *testing.T) {
	s := NewStore(storeTemplate())

	cases := []struct {
		key  string
		want any
	}{
		{"loan_amount", ""},
		{"has_credit_issues", false},
		{"lvr_percent", ""},
	}
	for _, tc := range cases {
		if got := s.Get(tc.key); got != tc.want {
			t.Fatalf("Get(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}

	if diff := cmp.Diff([]string{}, s.Get("preferred_features")); diff != "" {
		t.Fatalf("multiselect default mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Item{}, s.Get("existing_debts")); diff != "" {
		t.Fatalf("repeater default mismatch (-want +got):\n%s", diff)
	}
	if got := s.Get("unknown_key"); got != nil {
		t.Fatalf("Get(unknown) = %v, want nil", got)
	}
}

func TestStore_SetRejectsUnknownAndCalculated(t *testing.T) {
	s := NewStore(storeTemplate())

	if err := s.Set("loan_amount", "720000"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("unknown_key", "x"); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
	if err := s.Set("lvr_percent", "84.71"); err == nil {
		t.Fatal("expected calculated field edit to be rejected")
	}
}

func TestStore_AppendItemSeedsDefaultsAndEnforcesMax(t *testing.T) {
	s := NewStore(storeTemplate())

	idx, err := s.AppendItem("existing_debts")
	if err != nil {
		t.Fatalf("AppendItem: %v", err)
	}
	if idx != 0 {
		t.Fatalf("first item index = %d", idx)
	}

	want := Item{"type": "", "balance": ""}
	if diff := cmp.Diff(want, s.Items("existing_debts")[0]); diff != "" {
		t.Fatalf("item defaults mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < 2; i++ {
		if _, err := s.AppendItem("existing_debts"); err != nil {
			t.Fatalf("AppendItem: %v", err)
		}
	}
	if _, err := s.AppendItem("existing_debts"); err == nil {
		t.Fatal("expected append past max to fail")
	}
}

func TestStore_SetItemFieldLeavesSiblings(t *testing.T) {
	s := NewStore(storeTemplate())
	_, _ = s.AppendItem("dependants")
	_, _ = s.AppendItem("dependants")

	if err := s.SetItemField("dependants", 1, "age", "7"); err != nil {
		t.Fatalf("SetItemField: %v", err)
	}

	items := s.Items("dependants")
	if items[0]["age"] != "" {
		t.Fatalf("sibling item mutated: %v", items[0])
	}
	if items[1]["age"] != "7" {
		t.Fatalf("edited item = %v", items[1])
	}

	if err := s.SetItemField("dependants", 5, "age", "7"); err == nil {
		t.Fatal("expected out-of-range index to be rejected")
	}
	if err := s.SetItemField("loan_amount", 0, "age", "7"); err == nil {
		t.Fatal("expected non-repeater key to be rejected")
	}
}

func TestStore_TypedItemsAreUniquePerType(t *testing.T) {
	s := NewStore(storeTemplate())

	if err := s.AddTypedItem("existing_debts", "Credit Card"); err != nil {
		t.Fatalf("AddTypedItem: %v", err)
	}
	if err := s.AddTypedItem("existing_debts", "Car Loan"); err != nil {
		t.Fatalf("AddTypedItem: %v", err)
	}
	if err := s.AddTypedItem("existing_debts", "Credit Card"); err != nil {
		t.Fatalf("duplicate type must be a no-op, got %v", err)
	}
	if got := len(s.Items("existing_debts")); got != 2 {
		t.Fatalf("item count = %d, want 2", got)
	}

	item, ok := s.TypedItem("existing_debts", "Car Loan")
	if !ok || item["type"] != "Car Loan" {
		t.Fatalf("TypedItem = %v, %v", item, ok)
	}
}

func TestStore_RemoveTypedItemKeepsSiblingData(t *testing.T) {
	s := NewStore(storeTemplate())
	_ = s.AddTypedItem("existing_debts", "Credit Card")
	_ = s.AddTypedItem("existing_debts", "Car Loan")
	_ = s.SetItemField("existing_debts", 1, "balance", "18250")

	if err := s.RemoveTypedItem("existing_debts", "Credit Card"); err != nil {
		t.Fatalf("RemoveTypedItem: %v", err)
	}

	items := s.Items("existing_debts")
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1", len(items))
	}
	if items[0]["type"] != "Car Loan" || items[0]["balance"] != "18250" {
		t.Fatalf("surviving item = %v", items[0])
	}

	item, ok := s.TypedItem("existing_debts", "Car Loan")
	if !ok || item["balance"] != "18250" {
		t.Fatalf("typed index stale after removal: %v, %v", item, ok)
	}
	if err := s.RemoveTypedItem("existing_debts", "Credit Card"); err != nil {
		t.Fatalf("removing an absent type must be a no-op, got %v", err)
	}
}

func TestStore_AddTypedItemRequiresTypeSubField(t *testing.T) {
	s := NewStore(storeTemplate())
	if err := s.AddTypedItem("dependants", "whatever"); err == nil {
		t.Fatal("expected plain repeater to reject typed items")
	}
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	s := NewStore(storeTemplate())
	_ = s.Set("loan_amount", "720000")
	_ = s.AddTypedItem("existing_debts", "Credit Card")
	_ = s.SetItemField("existing_debts", 0, "balance", "4500")

	snap := s.Snapshot()
	snap["loan_amount"] = "tampered"
	snapItems := snap["existing_debts"].([]Item)
	snapItems[0]["balance"] = "tampered"

	if got := s.Get("loan_amount"); got != "720000" {
		t.Fatalf("store value changed through snapshot: %v", got)
	}
	if got := s.Items("existing_debts")[0]["balance"]; got != "4500" {
		t.Fatalf("repeater item changed through snapshot: %v", got)
	}
}

func f64(v float64) *float64 { return &v }
