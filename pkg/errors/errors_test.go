package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
	if got := MetadataFor(Code("UNKNOWN")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to 500, got %d", got)
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	base := New(CodeNotFound, "Producto no encontrado")
	wrapped := fmt.Errorf("lookup: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", typed.Code())
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(CodeValidation, "Stock insuficiente. Disponible: %d", 5)
	if err.Message() != "Stock insuficiente. Disponible: 5" {
		t.Fatalf("unexpected message: %s", err.Message())
	}
}

func TestWithDetailsAttachesPayload(t *testing.T) {
	err := New(CodeValidation, "validation failed").
		WithDetails(map[string]string{"quantity": "must be at least 1"})
	details, ok := err.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details type %T", err.Details())
	}
	if details["quantity"] != "must be at least 1" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDumpExtractsPGError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_cart_items_cart_product",
		TableName:      "cart_items",
	}
	err := Wrap(CodeConflict, pgErr, "insert item")

	d := Dump(err)
	if d.PGCode != "23505" {
		t.Fatalf("expected pg code 23505, got %s", d.PGCode)
	}
	if d.PGConstraint != "idx_cart_items_cart_product" {
		t.Fatalf("expected constraint name, got %s", d.PGConstraint)
	}
	if d.Code != CodeConflict {
		t.Fatalf("expected typed code in dump, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected chain with wrapper and cause, got %v", d.Chain)
	}
}
