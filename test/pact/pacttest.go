//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateCatalogSeeded = "catalog products and collections seeded"
	StateCartBaseline  = "cart service baseline"
	StateCartExists    = "cart pact-101 exists with one line"
	StateCartMissing   = "no cart with id pact-404"
)

const (
	ExistingCartID = "gid://pact/Cart/101"
	MissingCartID  = "gid://pact/Cart/404"

	SeededVariantID = "gid://pact/ProductVariant/11"
	SeededVariant2  = "gid://pact/ProductVariant/12"

	ProductHandle       = "ember-candle"
	MissingHandle       = "ghost-product"
	CollectionHandle    = "bestsellers"
	SeededVariantTitle  = "Ember Candle / 8oz"
	SeededVariant2Title = "Wax Melt Trio"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleLinePayload provides stable request data for cart interactions.
func ExampleLinePayload() map[string]any {
	return map[string]any{
		"merchandiseId": SeededVariantID,
		"quantity":      2,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
